package ledger

import "fmt"

// Line is one purchased product and quantity.
type Line struct {
	Name     string
	Quantity int64
}

// Pool tracks the price and remaining units of one stock pool.
type Pool struct {
	Price    int64
	Quantity int64
}

// PromoPool is a product's promotional pool, tied to a promotion by name.
type PromoPool struct {
	Pool
	Promotion string
}

// Entry is the full stock record for one product. Promo is nil for
// products sold only at the listed price.
type Entry struct {
	Default Pool
	Promo   *PromoPool
}

// Ledger owns per-product inventory for a single checkout session. It
// preserves catalog row order so the mutated stock can be written back in
// the shape it was loaded from.
type Ledger struct {
	entries map[string]*Entry
	names   []string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{entries: make(map[string]*Entry)}
}

// Put registers or replaces a product entry, keeping first-seen order.
func (l *Ledger) Put(name string, e Entry) {
	if _, ok := l.entries[name]; !ok {
		l.names = append(l.names, name)
	}
	stored := e
	if e.Promo != nil {
		promo := *e.Promo
		stored.Promo = &promo
	}
	l.entries[name] = &stored
}

// Entry returns the live stock record for a product.
func (l *Ledger) Entry(name string) (*Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// Names lists products in catalog order.
func (l *Ledger) Names() []string {
	names := make([]string, len(l.names))
	copy(names, l.names)
	return names
}

// Snapshot returns a deep copy of the current stock state.
func (l *Ledger) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(l.entries))
	for name, e := range l.entries {
		copied := *e
		if e.Promo != nil {
			promo := *e.Promo
			copied.Promo = &promo
		}
		out[name] = copied
	}
	return out
}

// Available reports the combined default and promotional stock for a
// product. Unknown products report zero.
func (l *Ledger) Available(name string) int64 {
	e, ok := l.entries[name]
	if !ok {
		return 0
	}
	total := e.Default.Quantity
	if e.Promo != nil {
		total += e.Promo.Quantity
	}
	return total
}

// Update applies the post-sale decrement for each purchased line.
// Promotional stock is consumed first; whatever the promotional pool could
// not cover is taken from the default pool and the promotional quantity is
// clamped to zero. Products without a promotional pool decrement the
// default pool directly. Callers must have validated each line against the
// ledger; an unknown product name is a caller bug and panics.
func (l *Ledger) Update(lines []Line) {
	for _, line := range lines {
		e, ok := l.entries[line.Name]
		if !ok {
			panic(fmt.Sprintf("ledger: update for unknown product %q", line.Name))
		}
		if e.Promo == nil {
			e.Default.Quantity -= line.Quantity
			continue
		}
		e.Promo.Quantity -= line.Quantity
		if e.Promo.Quantity < 0 {
			e.Default.Quantity += e.Promo.Quantity
			e.Promo.Quantity = 0
		}
	}
}
