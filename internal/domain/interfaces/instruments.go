package interfaces

import (
	instruments "main/internal/domain/entity/instruments"
)

// InstrumentCatalog exposes the static instrument reference data.
type InstrumentCatalog interface {
	Get(symbol string) (instruments.Instrument, error)
	List() []instruments.Instrument
}
