package loyalty

import "github.com/shopspring/decimal"

// PriceBreakdown is the result of a pricing-time discount computation
type PriceBreakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	FlatDiscount   decimal.Decimal `json:"flat_discount"`
	CouponDiscount decimal.Decimal `json:"coupon_discount"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

// ComputePrice derives the charged amount from a subtotal, a flat discount
// already set on the order, and an optionally applied coupon. The coupon's
// percent value is always recomputed against the subtotal passed in, so a
// changing cart re-derives the percentage while a flat amount stays as-is.
// The final amount is floored at zero.
func ComputePrice(subtotal, flatDiscount decimal.Decimal, coupon *Coupon) PriceBreakdown {
	if flatDiscount.IsNegative() {
		flatDiscount = decimal.Zero
	}

	couponDiscount := decimal.Zero
	if coupon != nil && coupon.IsActive {
		couponDiscount = coupon.DiscountOn(subtotal)
	}

	totalDiscount := flatDiscount.Add(couponDiscount)
	final := subtotal.Sub(totalDiscount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return PriceBreakdown{
		Subtotal:       subtotal,
		FlatDiscount:   flatDiscount,
		CouponDiscount: couponDiscount,
		TotalDiscount:  totalDiscount,
		FinalAmount:    final,
	}
}
