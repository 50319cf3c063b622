package instruments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	domain "main/internal/domain/entity/instruments"
	interfaces "main/internal/domain/interfaces"
)

// Repository holds the static instrument catalog in memory. The catalog
// is read-only after construction.
type Repository struct {
	bySymbol map[string]domain.Instrument
	ordered  []domain.Instrument
}

var _ interfaces.InstrumentCatalog = (*Repository)(nil)

// defaultInstruments covers the usual forex majors and crosses; used
// when no instruments file is configured.
var defaultInstruments = []domain.Instrument{
	{Symbol: "EURUSD", Name: "Euro / US Dollar", BasePrice: 1.0850, Spread: 0.0002, Currencies: []string{"EUR", "USD"}, Digits: 5},
	{Symbol: "GBPUSD", Name: "British Pound / US Dollar", BasePrice: 1.2650, Spread: 0.0003, Currencies: []string{"GBP", "USD"}, Digits: 5},
	{Symbol: "USDJPY", Name: "US Dollar / Japanese Yen", BasePrice: 149.50, Spread: 0.02, Currencies: []string{"USD", "JPY"}, Digits: 3},
	{Symbol: "AUDUSD", Name: "Australian Dollar / US Dollar", BasePrice: 0.6550, Spread: 0.0003, Currencies: []string{"AUD", "USD"}, Digits: 5},
	{Symbol: "USDCHF", Name: "US Dollar / Swiss Franc", BasePrice: 0.8850, Spread: 0.0003, Currencies: []string{"USD", "CHF"}, Digits: 5},
	{Symbol: "USDCAD", Name: "US Dollar / Canadian Dollar", BasePrice: 1.3550, Spread: 0.0003, Currencies: []string{"USD", "CAD"}, Digits: 5},
	{Symbol: "NZDUSD", Name: "New Zealand Dollar / US Dollar", BasePrice: 0.6050, Spread: 0.0004, Currencies: []string{"NZD", "USD"}, Digits: 5},
	{Symbol: "EURGBP", Name: "Euro / British Pound", BasePrice: 0.8580, Spread: 0.0003, Currencies: []string{"EUR", "GBP"}, Digits: 5},
}

// NewRepository builds the catalog from the given JSON file, or from the
// embedded defaults when path is empty.
func NewRepository(path string) (*Repository, error) {
	list := defaultInstruments
	if path != "" {
		loaded, err := readInstruments(path)
		if err != nil {
			return nil, err
		}
		list = loaded
	}
	return newRepository(list)
}

// NewStaticRepository builds the catalog directly from the given
// instruments; used by tests and embedded setups.
func NewStaticRepository(list []domain.Instrument) (*Repository, error) {
	return newRepository(list)
}

func newRepository(list []domain.Instrument) (*Repository, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("instrument catalog is empty")
	}
	bySymbol := make(map[string]domain.Instrument, len(list))
	ordered := make([]domain.Instrument, 0, len(list))
	for _, inst := range list {
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		symbol := strings.ToUpper(strings.TrimSpace(inst.Symbol))
		if _, exists := bySymbol[symbol]; exists {
			return nil, fmt.Errorf("duplicate instrument symbol: %s", symbol)
		}
		inst.Symbol = symbol
		bySymbol[symbol] = inst
		ordered = append(ordered, inst)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Symbol < ordered[j].Symbol })
	return &Repository{bySymbol: bySymbol, ordered: ordered}, nil
}

// Get looks an instrument up by symbol, case-insensitive.
func (r *Repository) Get(symbol string) (domain.Instrument, error) {
	inst, ok := r.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return domain.Instrument{}, fmt.Errorf("instrument %s not found", symbol)
	}
	return inst, nil
}

// List returns all instruments ordered by symbol.
func (r *Repository) List() []domain.Instrument {
	out := make([]domain.Instrument, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func readInstruments(path string) ([]domain.Instrument, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read instruments file: %w", err)
	}
	var payload struct {
		Instruments []domain.Instrument `json:"instruments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse instruments file: %w", err)
	}
	return payload.Instruments, nil
}
