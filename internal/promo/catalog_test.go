package promo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/minimart-pos/internal/ledger"
	"github.com/noah-isme/minimart-pos/internal/promo"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureCatalog(now time.Time) *promo.Catalog {
	stocks := ledger.New()
	stocks.Put("콜라", ledger.Entry{
		Default: ledger.Pool{Price: 1000, Quantity: 10},
		Promo:   &ledger.PromoPool{Pool: ledger.Pool{Price: 1000, Quantity: 10}, Promotion: "탄산2+1"},
	})
	stocks.Put("탄산수", ledger.Entry{
		Default: ledger.Pool{Price: 1200, Quantity: 0},
		Promo:   &ledger.PromoPool{Pool: ledger.Pool{Price: 1200, Quantity: 2}, Promotion: "탄산2+1"},
	})
	stocks.Put("감자칩", ledger.Entry{
		Default: ledger.Pool{Price: 1500, Quantity: 5},
		Promo:   &ledger.PromoPool{Pool: ledger.Pool{Price: 1500, Quantity: 5}, Promotion: "반짝할인"},
	})
	stocks.Put("물", ledger.Entry{Default: ledger.Pool{Price: 500, Quantity: 10}})

	defs := map[string]promo.Definition{
		"탄산2+1": {Buy: 2, Get: 1, Start: date(2024, 1, 1), End: date(2024, 12, 31)},
		"반짝할인":  {Buy: 1, Get: 1, Start: date(2024, 11, 1), End: date(2024, 11, 30)},
	}

	return &promo.Catalog{Defs: defs, Stocks: stocks, Now: func() time.Time { return now }}
}

func TestDefinitionsExposeLoadedTable(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	defs := c.Definitions()
	require.Len(t, defs, 2)
	require.Equal(t, int64(3), defs["탄산2+1"].Bundle())
}

func TestPromotableItem(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	name, ok := c.PromotableItem(ledger.Line{Name: "콜라", Quantity: 2})
	require.True(t, ok)
	require.Equal(t, "콜라", name)
}

func TestPromotableItemQuantityBeyondPool(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	_, ok := c.PromotableItem(ledger.Line{Name: "콜라", Quantity: 11})
	require.False(t, ok)
}

func TestPromotableItemPartialBundle(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	_, ok := c.PromotableItem(ledger.Line{Name: "콜라", Quantity: 3})
	require.False(t, ok)
}

func TestPromotableItemWithoutPromotion(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	_, ok := c.PromotableItem(ledger.Line{Name: "물", Quantity: 2})
	require.False(t, ok)
}

func TestPromotableItemIsIdempotent(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))
	line := ledger.Line{Name: "콜라", Quantity: 2}

	first, ok1 := c.PromotableItem(line)
	second, ok2 := c.PromotableItem(line)
	require.Equal(t, first, second)
	require.Equal(t, ok1, ok2)
}

func TestNonPromotionalItemShortfall(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	// Promotional stock 10, bundle 3: 10 % 3 = 1 stranded in the pool,
	// plus 15 - 10 = 5 beyond it.
	short, ok := c.NonPromotionalItem(ledger.Line{Name: "콜라", Quantity: 15})
	require.True(t, ok)
	require.Equal(t, ledger.Line{Name: "콜라", Quantity: 6}, short)
}

func TestNonPromotionalItemPoolSufficient(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	_, ok := c.NonPromotionalItem(ledger.Line{Name: "콜라", Quantity: 9})
	require.False(t, ok)
}

func TestNonPromotionalItemShortfallBounds(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	for qty := int64(10); qty <= 20; qty++ {
		short, ok := c.NonPromotionalItem(ledger.Line{Name: "콜라", Quantity: qty})
		require.True(t, ok)
		require.GreaterOrEqual(t, short.Quantity, int64(0))
		require.LessOrEqual(t, short.Quantity, qty)
	}
}

func TestBonusCappedByStock(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	// 13 units form 4 complete bundles but the pool of 10 supplies only 3.
	grant, ok := c.Bonus(ledger.Line{Name: "콜라", Quantity: 13})
	require.True(t, ok)
	require.Equal(t, ledger.Line{Name: "콜라", Quantity: 3}, grant)
}

func TestBonusCappedByPurchase(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	grant, ok := c.Bonus(ledger.Line{Name: "콜라", Quantity: 7})
	require.True(t, ok)
	require.Equal(t, int64(2), grant.Quantity)
}

func TestBonusNeedsFullBundleInStock(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))

	// 탄산수 pool holds 2, one bundle needs 3.
	_, ok := c.Bonus(ledger.Line{Name: "탄산수", Quantity: 3})
	require.False(t, ok)
}

func TestWindowBoundaries(t *testing.T) {
	line := ledger.Line{Name: "감자칩", Quantity: 1}

	_, ok := fixtureCatalog(date(2024, 10, 31)).PromotableItem(line)
	require.False(t, ok, "before start")

	_, ok = fixtureCatalog(date(2024, 11, 1)).PromotableItem(line)
	require.True(t, ok, "start date is inclusive")

	_, ok = fixtureCatalog(date(2024, 11, 29)).PromotableItem(line)
	require.True(t, ok, "last day before end")

	_, ok = fixtureCatalog(date(2024, 11, 30)).PromotableItem(line)
	require.False(t, ok, "end date is exclusive")
}

func TestWindowIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 11, 1, 23, 59, 59, 0, time.Local)

	_, ok := fixtureCatalog(late).PromotableItem(ledger.Line{Name: "감자칩", Quantity: 1})
	require.True(t, ok)
}

func TestPluralHelpers(t *testing.T) {
	c := fixtureCatalog(date(2024, 6, 1))
	lines := []ledger.Line{
		{Name: "콜라", Quantity: 2},
		{Name: "물", Quantity: 5},
		{Name: "콜라", Quantity: 15},
	}

	require.Equal(t, []string{"콜라"}, c.PromotableItems(lines))
	require.Equal(t, []ledger.Line{{Name: "콜라", Quantity: 6}}, c.NonPromotionalItems(lines))
}
