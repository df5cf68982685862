package receipt

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/minimart-pos/internal/ledger"
	"github.com/noah-isme/minimart-pos/internal/pricing"
	"github.com/noah-isme/minimart-pos/internal/promo"
)

// Receipt is the priced result of one checkout. It is built fresh per
// checkout and never mutated afterward.
type Receipt struct {
	ID             uuid.UUID
	IssuedAt       time.Time
	Lines          []pricing.Item
	BonusLines     []ledger.Line
	TotalQty       int64
	Subtotal       pricing.Money
	PromoDiscount  pricing.Money
	MemberDiscount pricing.Money
	AmountDue      pricing.Money
}

// Builder composes ledger prices and promotion bonuses into receipts.
type Builder struct {
	Stocks    *ledger.Ledger
	Promos    *promo.Catalog
	MemberBps int
	MemberCap pricing.Money
	Now       func() time.Time
	NewID     func() uuid.UUID
}

// Build prices the finalized purchase lines. Every unit, bonus units
// included, is charged at the default pool price; the promotion benefit is
// netted out as a separate discount rather than repricing the paid units.
// Inputs are assumed validated against current stock; a line naming an
// unregistered product is a caller bug and panics.
func (b *Builder) Build(lines []ledger.Line, member bool) Receipt {
	items := make([]pricing.Item, 0, len(lines))
	var bonus []ledger.Line
	var promoDiscount pricing.Money
	for _, line := range lines {
		e, ok := b.Stocks.Entry(line.Name)
		if !ok {
			panic(fmt.Sprintf("receipt: no ledger entry for product %q", line.Name))
		}
		items = append(items, pricing.Item{Name: line.Name, Qty: line.Quantity, UnitPrice: e.Default.Price})
		if b.Promos == nil {
			continue
		}
		if grant, ok := b.Promos.Bonus(line); ok {
			bonus = append(bonus, grant)
			promoDiscount += grant.Quantity * e.Default.Price
		}
	}
	summary := pricing.Compute(items, promoDiscount, b.MemberBps, b.MemberCap, member)
	return Receipt{
		ID:             b.newID(),
		IssuedAt:       b.now(),
		Lines:          items,
		BonusLines:     bonus,
		TotalQty:       summary.TotalQty,
		Subtotal:       summary.Subtotal,
		PromoDiscount:  summary.PromoDiscount,
		MemberDiscount: summary.MemberDiscount,
		AmountDue:      summary.Total,
	}
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) newID() uuid.UUID {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.New()
}
