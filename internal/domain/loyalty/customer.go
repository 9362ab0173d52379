package loyalty

import (
	"strings"
	"time"

	"github.com/floorops/backend/internal/domain/shared"
)

// Tier is a customer loyalty rank derived purely from accumulated points
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Silver"
	TierGold   Tier = "Gold"
)

// Point thresholds for tier promotion
const (
	SilverThreshold int64 = 100_000
	GoldThreshold   int64 = 500_000
)

// TierForPoints is the pure tier function. It is recomputed after every
// point mutation; tier is never stored independently of points.
func TierForPoints(points int64) Tier {
	switch {
	case points >= GoldThreshold:
		return TierGold
	case points >= SilverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}

// Customer is the aggregate root for loyalty accounting. Points are only
// ever mutated through the loyalty engine and never go negative.
type Customer struct {
	shared.BaseAggregateRoot
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Points       int64    `json:"points"`
	Tier         Tier     `json:"tier"`
	VisitCount   int      `json:"visit_count"`
	OwnedCoupons []string `json:"owned_coupons,omitempty"`
}

// NewCustomer creates a new loyalty customer at Bronze with zero points
func NewCustomer(name, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Points:            0,
		Tier:              TierBronze,
		VisitCount:        0,
		OwnedCoupons:      make([]string, 0),
	}, nil
}

// ApplyLoyalty applies a sale's loyalty outcome: points earned minus points
// redeemed, floored at zero, with the tier recomputed. The visit count is
// incremented only when requested (completed sales do, manual awards don't).
func (c *Customer) ApplyLoyalty(pointsEarned, pointsRedeemed int64, incrementVisit bool) {
	c.Points = maxInt64(0, c.Points+pointsEarned-pointsRedeemed)
	c.Tier = TierForPoints(c.Points)
	if incrementVisit {
		c.VisitCount++
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewPointsChangedEvent(c, pointsEarned-pointsRedeemed))
}

// ReverseLoyalty undoes a previously applied sale on void: earned points are
// subtracted, redeemed points restored, both floored at zero, and the visit
// count decremented (floored at zero) when requested.
func (c *Customer) ReverseLoyalty(pointsEarned, pointsRedeemed int64, decrementVisit bool) {
	c.Points = maxInt64(0, c.Points-pointsEarned+pointsRedeemed)
	c.Tier = TierForPoints(c.Points)
	if decrementVisit && c.VisitCount > 0 {
		c.VisitCount--
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewPointsChangedEvent(c, pointsRedeemed-pointsEarned))
}

// RedeemPoints debits the point cost of a coupon. Declined, with no state
// change, when the balance is insufficient.
func (c *Customer) RedeemPoints(cost int64) error {
	if cost < 0 {
		return shared.NewDomainError("INVALID_COST", "Point cost cannot be negative")
	}
	if c.Points < cost {
		return shared.ErrInsufficientPoints
	}
	c.Points -= cost
	c.Tier = TierForPoints(c.Points)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewPointsChangedEvent(c, -cost))

	return nil
}

// AddOwnedCoupon appends a redeemed coupon code to the customer's list
func (c *Customer) AddOwnedCoupon(code string) {
	c.OwnedCoupons = append(c.OwnedCoupons, strings.ToUpper(code))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// OwnsCoupon reports whether the customer holds the coupon code
func (c *Customer) OwnsCoupon(code string) bool {
	code = strings.ToUpper(code)
	for _, owned := range c.OwnedCoupons {
		if owned == code {
			return true
		}
	}
	return false
}

// Update changes the customer's contact details
func (c *Customer) Update(name, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
