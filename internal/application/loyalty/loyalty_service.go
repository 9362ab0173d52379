package loyalty

import (
	"context"
	"strings"

	"github.com/floorops/backend/internal/domain/loyalty"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoyaltyService manages customers, coupons, loyalty accrual and the pricing
// breakdown applied at checkout.
type LoyaltyService struct {
	customerRepo   loyalty.CustomerRepository
	couponRepo     loyalty.CouponRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger

	// pointsPerUnit converts a paid currency amount into earned points
	pointsPerUnit int64
}

// NewLoyaltyService creates a new LoyaltyService
func NewLoyaltyService(
	customerRepo loyalty.CustomerRepository,
	couponRepo loyalty.CouponRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
	pointsPerUnit int64,
) *LoyaltyService {
	return &LoyaltyService{
		customerRepo:   customerRepo,
		couponRepo:     couponRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
		pointsPerUnit:  pointsPerUnit,
	}
}

// CreateCustomer registers a new loyalty customer. Phone numbers are unique.
func (s *LoyaltyService) CreateCustomer(ctx context.Context, name, phone string) (*loyalty.Customer, error) {
	if phone != "" {
		existing, err := s.customerRepo.FindByPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
	}

	customer, err := loyalty.NewCustomer(name, phone)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer by id, or (nil, nil) when unknown
func (s *LoyaltyService) GetCustomer(ctx context.Context, id uuid.UUID) (*loyalty.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// FindCustomerByPhone returns a customer by phone, or (nil, nil) when unknown
func (s *LoyaltyService) FindCustomerByPhone(ctx context.Context, phone string) (*loyalty.Customer, error) {
	return s.customerRepo.FindByPhone(ctx, phone)
}

// ListCustomers returns every customer
func (s *LoyaltyService) ListCustomers(ctx context.Context) ([]loyalty.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

// UpdateCustomer changes a customer's name and phone
func (s *LoyaltyService) UpdateCustomer(ctx context.Context, id uuid.UUID, name, phone string) (*loyalty.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if err := customer.Update(name, phone); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// PointsForAmount converts a paid amount into earned loyalty points,
// truncating fractional units
func (s *LoyaltyService) PointsForAmount(amount decimal.Decimal) int64 {
	if amount.IsNegative() {
		return 0
	}
	return amount.Mul(decimal.NewFromInt(s.pointsPerUnit)).IntPart()
}

// AwardAndRecord applies a checkout's loyalty outcome to the customer:
// points earned on the paid total, points redeemed against it, and one visit.
// Unknown customers are a no-op returning (nil, nil).
func (s *LoyaltyService) AwardAndRecord(ctx context.Context, customerID uuid.UUID, earned, redeemed int64) (*loyalty.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}

	customer.ApplyLoyalty(earned, redeemed, true)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &customer.BaseAggregateRoot)
	return customer, nil
}

// ReverseOnVoid undoes a completed order's loyalty outcome after a void:
// earned points come back off, redeemed points are returned, and the visit
// is decremented. Balances and visit counts floor at zero.
func (s *LoyaltyService) ReverseOnVoid(ctx context.Context, customerID uuid.UUID, earned, redeemed int64) (*loyalty.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}

	customer.ReverseLoyalty(earned, redeemed, true)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &customer.BaseAggregateRoot)
	return customer, nil
}

// RedeemResult reports the outcome of a coupon redemption attempt. A declined
// redemption is a result, not an error.
type RedeemResult struct {
	Approved bool              `json:"approved"`
	Reason   string            `json:"reason,omitempty"`
	Customer *loyalty.Customer `json:"customer,omitempty"`
	Coupon   *loyalty.Coupon   `json:"coupon,omitempty"`
}

// RedeemCoupon exchanges a customer's points for a coupon. Declines when the
// coupon is unknown or inactive or the customer lacks the points.
func (s *LoyaltyService) RedeemCoupon(ctx context.Context, customerID, couponID uuid.UUID) (*RedeemResult, error) {
	coupon, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return &RedeemResult{Approved: false, Reason: "coupon not found"}, nil
	}
	if !coupon.IsActive {
		return &RedeemResult{Approved: false, Reason: "coupon is not active"}, nil
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return &RedeemResult{Approved: false, Reason: "customer not found"}, nil
	}

	if err := customer.RedeemPoints(coupon.PointCost); err != nil {
		return &RedeemResult{Approved: false, Reason: "insufficient points", Customer: customer}, nil
	}
	customer.AddOwnedCoupon(coupon.Code)
	customer.AddDomainEvent(loyalty.NewCouponRedeemedEvent(customer, coupon))

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &customer.BaseAggregateRoot)

	return &RedeemResult{Approved: true, Customer: customer, Coupon: coupon}, nil
}

// PriceQuote computes the checkout breakdown for a subtotal: an optional
// flat discount plus an optional coupon, with the final amount floored at
// zero. Unknown or inactive coupon codes price as if no coupon was given.
func (s *LoyaltyService) PriceQuote(ctx context.Context, subtotal, flatDiscount decimal.Decimal, couponCode string) (loyalty.PriceBreakdown, error) {
	var coupon *loyalty.Coupon
	if code := strings.TrimSpace(couponCode); code != "" {
		found, err := s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return loyalty.PriceBreakdown{}, err
		}
		if found != nil && found.IsActive {
			coupon = found
		}
	}
	return loyalty.ComputePrice(subtotal, flatDiscount, coupon), nil
}

// CreateCoupon registers a new coupon template with a unique code
func (s *LoyaltyService) CreateCoupon(ctx context.Context, code string, couponType loyalty.CouponType, value decimal.Decimal, pointCost int64) (*loyalty.Coupon, error) {
	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Coupon with this code already exists")
	}

	coupon, err := loyalty.NewCoupon(code, couponType, value, pointCost)
	if err != nil {
		return nil, err
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// ListCoupons returns every coupon
func (s *LoyaltyService) ListCoupons(ctx context.Context) ([]loyalty.Coupon, error) {
	return s.couponRepo.FindAll(ctx)
}

// SetCouponActive toggles whether a coupon can be redeemed or applied.
// Unknown ids are a no-op returning (nil, nil).
func (s *LoyaltyService) SetCouponActive(ctx context.Context, id uuid.UUID, active bool) (*loyalty.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, nil
	}
	if active {
		coupon.Activate()
	} else {
		coupon.Deactivate()
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *LoyaltyService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish loyalty events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
