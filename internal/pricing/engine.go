package pricing

// Money represents a monetary value stored in whole currency units.
type Money = int64

// Item describes a receipt line used for totals calculation.
type Item struct {
	Name      string
	Qty       int64
	UnitPrice Money
}

// Summary aggregates computed totals for one checkout.
type Summary struct {
	TotalQty       int64
	Subtotal       Money
	PromoDiscount  Money
	MemberDiscount Money
	Total          Money
}

// Compute calculates receipt totals given the priced lines and discounts.
// The promotion discount is clamped to the subtotal. The membership
// discount applies to the post-promotion subtotal at the given basis-point
// rate and never exceeds cap.
func Compute(items []Item, promoDiscount Money, memberBps int, memberCap Money, member bool) Summary {
	var subtotal Money
	var totalQty int64
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		totalQty += it.Qty
		subtotal += it.Qty * it.UnitPrice
	}
	if promoDiscount < 0 {
		promoDiscount = 0
	}
	if promoDiscount > subtotal {
		promoDiscount = subtotal
	}
	var memberDiscount Money
	if member {
		memberDiscount = ((subtotal - promoDiscount) * Money(memberBps)) / 10000
		if memberDiscount > memberCap {
			memberDiscount = memberCap
		}
	}
	return Summary{
		TotalQty:       totalQty,
		Subtotal:       subtotal,
		PromoDiscount:  promoDiscount,
		MemberDiscount: memberDiscount,
		Total:          subtotal - promoDiscount - memberDiscount,
	}
}
