package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolrental-backend/internal/domain"
)

// memoryCache is a map-backed Cache for tests. It ignores TTLs but records
// them so key namespacing and expiry wiring can be asserted.
type memoryCache struct {
	entries map[string]string
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return value, nil
}

func (m *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.entries[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestToolCache(t *testing.T) {
	ctx := context.Background()
	chainsaw := &domain.Tool{
		Brand: domain.ToolBrandStihl,
		Code:  domain.ToolCodeCHNS,
		Type:  domain.ToolTypeChainsaw,
	}

	t.Run("Round trips a tool under a namespaced key", func(t *testing.T) {
		backing := newMemoryCache()
		tools := NewToolCache(backing, 5*time.Minute)

		require.NoError(t, tools.Store(ctx, chainsaw))
		assert.Contains(t, backing.entries, "tool-CHNS")
		assert.Equal(t, 5*time.Minute, backing.ttls["tool-CHNS"])

		got, err := tools.Get(ctx, domain.ToolCodeCHNS)
		require.NoError(t, err)
		assert.Equal(t, chainsaw, got)
	})

	t.Run("Returns miss for an absent code", func(t *testing.T) {
		tools := NewToolCache(newMemoryCache(), 5*time.Minute)

		_, err := tools.Get(ctx, domain.ToolCodeJAKR)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Treats a corrupt entry as a miss", func(t *testing.T) {
		backing := newMemoryCache()
		backing.entries["tool-CHNS"] = "{not json"
		tools := NewToolCache(backing, 5*time.Minute)

		_, err := tools.Get(ctx, domain.ToolCodeCHNS)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestRentalPriceCache(t *testing.T) {
	ctx := context.Background()
	ladder := &domain.RentalPrice{
		Type:          domain.ToolTypeLadder,
		DailyCharge:   decimal.RequireFromString("1.99"),
		WeekdayCharge: true,
		WeekendCharge: true,
		HolidayCharge: false,
	}

	t.Run("Round trips a price under a namespaced key", func(t *testing.T) {
		backing := newMemoryCache()
		prices := NewRentalPriceCache(backing, 5*time.Minute)

		require.NoError(t, prices.Store(ctx, ladder))
		assert.Contains(t, backing.entries, "rentalPrice-Ladder")

		got, err := prices.Get(ctx, domain.ToolTypeLadder)
		require.NoError(t, err)
		assert.Equal(t, ladder.Type, got.Type)
		assert.True(t, ladder.DailyCharge.Equal(got.DailyCharge))
		assert.Equal(t, ladder.WeekdayCharge, got.WeekdayCharge)
		assert.Equal(t, ladder.WeekendCharge, got.WeekendCharge)
		assert.Equal(t, ladder.HolidayCharge, got.HolidayCharge)
	})

	t.Run("Treats a corrupt entry as a miss", func(t *testing.T) {
		backing := newMemoryCache()
		backing.entries["rentalPrice-Ladder"] = "]["
		prices := NewRentalPriceCache(backing, 5*time.Minute)

		_, err := prices.Get(ctx, domain.ToolTypeLadder)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestHolidayCache(t *testing.T) {
	ctx := context.Background()
	observed := []domain.Holiday{
		{Name: "Independence Day", ObservedOn: time.Date(2015, time.July, 3, 0, 0, 0, 0, time.UTC)},
		{Name: "Labour Day", ObservedOn: time.Date(2015, time.September, 7, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("Round trips a year of holidays under a namespaced key", func(t *testing.T) {
		backing := newMemoryCache()
		holidays := NewHolidayCache(backing, 5*time.Minute)

		require.NoError(t, holidays.Store(ctx, 2015, observed))
		assert.Contains(t, backing.entries, "holidays-2015")

		got, err := holidays.Get(ctx, 2015)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Independence Day", got[0].Name)
		assert.True(t, got[0].ObservedOn.Equal(observed[0].ObservedOn))
		assert.Equal(t, "Labour Day", got[1].Name)
		assert.True(t, got[1].ObservedOn.Equal(observed[1].ObservedOn))
	})

	t.Run("Stores an empty year distinctly from a miss", func(t *testing.T) {
		backing := newMemoryCache()
		holidays := NewHolidayCache(backing, 5*time.Minute)

		require.NoError(t, holidays.Store(ctx, 2016, []domain.Holiday{}))
		got, err := holidays.Get(ctx, 2016)
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = holidays.Get(ctx, 2017)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Treats a corrupt entry as a miss", func(t *testing.T) {
		backing := newMemoryCache()
		backing.entries["holidays-2015"] = "nope"
		holidays := NewHolidayCache(backing, 5*time.Minute)

		_, err := holidays.Get(ctx, 2015)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
