package receipt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/minimart-pos/internal/ledger"
	"github.com/noah-isme/minimart-pos/internal/pricing"
	"github.com/noah-isme/minimart-pos/internal/promo"
	"github.com/noah-isme/minimart-pos/internal/receipt"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureBuilder(now time.Time) *receipt.Builder {
	stocks := ledger.New()
	stocks.Put("콜라", ledger.Entry{
		Default: ledger.Pool{Price: 1000, Quantity: 10},
		Promo:   &ledger.PromoPool{Pool: ledger.Pool{Price: 1000, Quantity: 10}, Promotion: "탄산2+1"},
	})
	stocks.Put("물", ledger.Entry{Default: ledger.Pool{Price: 500, Quantity: 10}})
	stocks.Put("정식도시락", ledger.Entry{Default: ledger.Pool{Price: 6400, Quantity: 8}})

	defs := map[string]promo.Definition{
		"탄산2+1": {Buy: 2, Get: 1, Start: date(2024, 1, 1), End: date(2024, 12, 31)},
	}
	promos := &promo.Catalog{Defs: defs, Stocks: stocks, Now: func() time.Time { return now }}

	return &receipt.Builder{
		Stocks:    stocks,
		Promos:    promos,
		MemberBps: 3000,
		MemberCap: 8000,
		Now:       func() time.Time { return now },
	}
}

func TestBuildWithPromotionAndMembership(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))

	r := b.Build([]ledger.Line{
		{Name: "콜라", Quantity: 3},
		{Name: "물", Quantity: 5},
	}, true)

	require.Equal(t, int64(8), r.TotalQty)
	require.Equal(t, pricing.Money(5500), r.Subtotal)
	require.Equal(t, pricing.Money(1000), r.PromoDiscount)
	require.Equal(t, pricing.Money(1350), r.MemberDiscount)
	require.Equal(t, pricing.Money(3150), r.AmountDue)
	require.Equal(t, []ledger.Line{{Name: "콜라", Quantity: 1}}, r.BonusLines)
	require.NotEqual(t, uuid.Nil, r.ID)
	require.Equal(t, date(2024, 6, 1), r.IssuedAt)
}

func TestBuildPricesLinesAtDefaultPrice(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))

	r := b.Build([]ledger.Line{{Name: "콜라", Quantity: 3}}, false)

	require.Equal(t, []pricing.Item{{Name: "콜라", Qty: 3, UnitPrice: 1000}}, r.Lines)
	require.Equal(t, pricing.Money(3000), r.Subtotal)
}

func TestBuildWithoutMembership(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))

	r := b.Build([]ledger.Line{{Name: "물", Quantity: 2}}, false)

	require.Equal(t, pricing.Money(0), r.MemberDiscount)
	require.Equal(t, pricing.Money(1000), r.AmountDue)
}

func TestBuildMembershipCap(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))

	r := b.Build([]ledger.Line{{Name: "정식도시락", Quantity: 8}}, true)

	require.Equal(t, pricing.Money(8000), r.MemberDiscount)
}

func TestBuildOutsidePromotionWindow(t *testing.T) {
	b := fixtureBuilder(date(2025, 1, 1))

	r := b.Build([]ledger.Line{{Name: "콜라", Quantity: 3}}, false)

	require.Empty(t, r.BonusLines)
	require.Equal(t, pricing.Money(0), r.PromoDiscount)
	require.Equal(t, pricing.Money(3000), r.AmountDue)
}

func TestBuildUsesInjectedID(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))
	id := uuid.MustParse("0d4f4a1e-2c3b-4e5f-8a9b-1c2d3e4f5a6b")
	b.NewID = func() uuid.UUID { return id }

	r := b.Build([]ledger.Line{{Name: "물", Quantity: 1}}, false)

	require.Equal(t, id, r.ID)
}

func TestBuildPanicsOnUnknownProduct(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))

	require.Panics(t, func() {
		b.Build([]ledger.Line{{Name: "커피", Quantity: 1}}, false)
	})
}

func TestBuildAmountDueIdentity(t *testing.T) {
	b := fixtureBuilder(date(2024, 6, 1))

	r := b.Build([]ledger.Line{
		{Name: "콜라", Quantity: 9},
		{Name: "물", Quantity: 1},
	}, true)

	require.Equal(t, r.Subtotal-r.PromoDiscount-r.MemberDiscount, r.AmountDue)
}
