package promo

import (
	"time"

	"github.com/noah-isme/minimart-pos/internal/ledger"
)

// Definition is one buy-N-get-M promotion with its validity window.
// Start is inclusive, End exclusive, both compared by calendar date.
type Definition struct {
	Buy   int64
	Get   int64
	Start time.Time
	End   time.Time
}

// Bundle is the number of units one qualifying group spans: the paid units
// plus the free ones.
func (d Definition) Bundle() int64 {
	return d.Buy + d.Get
}

// Catalog evaluates purchase lines against the promotions their products
// carry. All queries are pure reads; the clock is injectable so window
// checks stay deterministic in tests.
type Catalog struct {
	Defs   map[string]Definition
	Stocks *ledger.Ledger
	Now    func() time.Time
}

// Definitions returns the loaded promotion table.
func (c *Catalog) Definitions() map[string]Definition {
	return c.Defs
}

// PromotableItem reports the product name when the customer could take one
// more unit free: the quantity exactly fills whole bundles and the
// promotional pool holds more than was asked for.
func (c *Catalog) PromotableItem(l ledger.Line) (string, bool) {
	def, pool, ok := c.lookup(l.Name)
	if !ok {
		return "", false
	}
	if l.Quantity%def.Buy == 0 && l.Quantity < pool.Quantity {
		return l.Name, true
	}
	return "", false
}

// NonPromotionalItem reports how many units of the line fall outside the
// promotional pool and must be paid at full price: the pool's remainder
// that cannot form a complete bundle plus the demand beyond the pool.
func (c *Catalog) NonPromotionalItem(l ledger.Line) (ledger.Line, bool) {
	def, pool, ok := c.lookup(l.Name)
	if !ok {
		return ledger.Line{}, false
	}
	if l.Quantity < pool.Quantity {
		return ledger.Line{}, false
	}
	shortfall := pool.Quantity%def.Bundle() + (l.Quantity - pool.Quantity)
	return ledger.Line{Name: l.Name, Quantity: shortfall}, true
}

// Bonus reports the free units granted for the line: the complete bundles
// the purchase forms, capped by the complete bundles the promotional pool
// can supply. The pool must hold at least one full bundle.
func (c *Catalog) Bonus(l ledger.Line) (ledger.Line, bool) {
	def, pool, ok := c.lookup(l.Name)
	if !ok {
		return ledger.Line{}, false
	}
	bundle := def.Bundle()
	if pool.Quantity < bundle {
		return ledger.Line{}, false
	}
	granted := l.Quantity / bundle
	if byStock := pool.Quantity / bundle; byStock < granted {
		granted = byStock
	}
	return ledger.Line{Name: l.Name, Quantity: granted}, true
}

// PromotableItems evaluates PromotableItem over each line, keeping matches.
func (c *Catalog) PromotableItems(lines []ledger.Line) []string {
	var out []string
	for _, l := range lines {
		if name, ok := c.PromotableItem(l); ok {
			out = append(out, name)
		}
	}
	return out
}

// NonPromotionalItems evaluates NonPromotionalItem over each line.
func (c *Catalog) NonPromotionalItems(lines []ledger.Line) []ledger.Line {
	var out []ledger.Line
	for _, l := range lines {
		if short, ok := c.NonPromotionalItem(l); ok {
			out = append(out, short)
		}
	}
	return out
}

// lookup resolves the line's product to an open promotion and its pool.
func (c *Catalog) lookup(name string) (Definition, *ledger.PromoPool, bool) {
	if c == nil || c.Stocks == nil {
		return Definition{}, nil, false
	}
	e, ok := c.Stocks.Entry(name)
	if !ok || e.Promo == nil {
		return Definition{}, nil, false
	}
	def, ok := c.Defs[e.Promo.Promotion]
	if !ok || !c.activeOn(def) {
		return Definition{}, nil, false
	}
	return def, e.Promo, true
}

func (c *Catalog) activeOn(def Definition) bool {
	today := dateOnly(c.today())
	return !today.Before(dateOnly(def.Start)) && today.Before(dateOnly(def.End))
}

func (c *Catalog) today() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// dateOnly drops the time of day so window checks compare calendar dates.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
