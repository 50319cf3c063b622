package instruments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "main/internal/domain/entity/instruments"
)

func TestNewRepositoryDefaults(t *testing.T) {
	repo, err := NewRepository("")
	require.NoError(t, err)

	list := repo.List()
	assert.GreaterOrEqual(t, len(list), 8)

	inst, err := repo.Get("EURUSD")
	require.NoError(t, err)
	assert.Equal(t, 1.0850, inst.BasePrice)
	assert.ElementsMatch(t, []string{"EUR", "USD"}, inst.Currencies)
}

func TestNewRepositoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instruments.json")
	payload := `{"instruments":[
		{"symbol":"btcusd","name":"Bitcoin","base_price":65000,"spread":5,"currencies":["USD"],"digits":2}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	repo, err := NewRepository(path)
	require.NoError(t, err)

	// symbols are normalized to upper case
	inst, err := repo.Get("BTCUSD")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSD", inst.Symbol)
	assert.Equal(t, 65000.0, inst.BasePrice)
	assert.Len(t, repo.List(), 1)
}

func TestNewRepositoryRejectsBadInput(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewRepository(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid instrument", func(t *testing.T) {
		_, err := NewStaticRepository([]domain.Instrument{{Symbol: "EURUSD", BasePrice: -1}})
		assert.Error(t, err)
	})

	t.Run("duplicate symbol", func(t *testing.T) {
		_, err := NewStaticRepository([]domain.Instrument{
			{Symbol: "EURUSD", BasePrice: 1.08},
			{Symbol: "eurusd", BasePrice: 1.09},
		})
		assert.Error(t, err)
	})

	t.Run("empty catalog", func(t *testing.T) {
		_, err := NewStaticRepository(nil)
		assert.Error(t, err)
	})
}

func TestGetIsCaseInsensitive(t *testing.T) {
	repo, err := NewRepository("")
	require.NoError(t, err)

	inst, err := repo.Get(" usdjpy ")
	require.NoError(t, err)
	assert.Equal(t, "USDJPY", inst.Symbol)

	_, err = repo.Get("XXXYYY")
	assert.Error(t, err)
}

func TestListReturnsCopy(t *testing.T) {
	repo, err := NewRepository("")
	require.NoError(t, err)

	list := repo.List()
	list[0].BasePrice = -42

	again := repo.List()
	assert.Greater(t, again[0].BasePrice, 0.0)
}
