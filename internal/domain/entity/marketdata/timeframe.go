package marketdata

import (
	"fmt"
	"time"
)

// Timeframe identifies the bucket duration candles are aggregated into.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	Timeframe1m:  time.Minute,
	Timeframe5m:  5 * time.Minute,
	Timeframe15m: 15 * time.Minute,
	Timeframe30m: 30 * time.Minute,
	Timeframe1h:  time.Hour,
	Timeframe4h:  4 * time.Hour,
	Timeframe1d:  24 * time.Hour,
}

func (tf Timeframe) String() string {
	return string(tf)
}

// Duration returns the bucket length, or zero for an unknown timeframe.
func (tf Timeframe) Duration() time.Duration {
	return timeframeDurations[tf]
}

func (tf Timeframe) IsValid() bool {
	_, ok := timeframeDurations[tf]
	return ok
}

// BucketStart aligns ts down to the start of the bucket containing it.
func (tf Timeframe) BucketStart(ts time.Time) time.Time {
	d := tf.Duration()
	if d <= 0 {
		return ts.UTC()
	}
	return ts.UTC().Truncate(d)
}

// ParseTimeframe validates a raw timeframe string.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(s)
	if !tf.IsValid() {
		return "", fmt.Errorf("invalid timeframe: %s", s)
	}
	return tf, nil
}
