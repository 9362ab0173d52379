package memstore

import (
	"context"

	"github.com/floorops/backend/internal/domain/loyalty"
	"github.com/google/uuid"
)

// CustomerRepository is the in-memory loyalty customer store
type CustomerRepository struct {
	store *store[loyalty.Customer]
}

// NewCustomerRepository creates a new in-memory customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{store: newStore(cloneCustomer)}
}

func cloneCustomer(c *loyalty.Customer) *loyalty.Customer {
	copied := *c
	copied.OwnedCoupons = append(make([]string, 0, len(c.OwnedCoupons)), c.OwnedCoupons...)
	copied.ClearDomainEvents()
	return &copied
}

// FindByID returns the customer with the given id, or (nil, nil) when unknown
func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*loyalty.Customer, error) {
	return r.store.get(id), nil
}

// FindAll returns every customer
func (r *CustomerRepository) FindAll(ctx context.Context) ([]loyalty.Customer, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the customer
func (r *CustomerRepository) Save(ctx context.Context, c *loyalty.Customer) error {
	r.store.put(c.ID, c)
	return nil
}

// Delete removes a customer
func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByPhone returns the customer with the given phone, or (nil, nil)
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*loyalty.Customer, error) {
	return r.store.find(func(c *loyalty.Customer) bool {
		return c.Phone == phone
	}), nil
}

var _ loyalty.CustomerRepository = (*CustomerRepository)(nil)

// CouponRepository is the in-memory coupon store
type CouponRepository struct {
	store *store[loyalty.Coupon]
}

// NewCouponRepository creates a new in-memory coupon repository
func NewCouponRepository() *CouponRepository {
	return &CouponRepository{store: newStore(cloneCoupon)}
}

func cloneCoupon(c *loyalty.Coupon) *loyalty.Coupon {
	copied := *c
	copied.ClearDomainEvents()
	return &copied
}

// FindByID returns the coupon with the given id, or (nil, nil) when unknown
func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*loyalty.Coupon, error) {
	return r.store.get(id), nil
}

// FindAll returns every coupon
func (r *CouponRepository) FindAll(ctx context.Context) ([]loyalty.Coupon, error) {
	return r.store.list(nil), nil
}

// Save stores a deep copy of the coupon
func (r *CouponRepository) Save(ctx context.Context, c *loyalty.Coupon) error {
	r.store.put(c.ID, c)
	return nil
}

// Delete removes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.delete(id)
	return nil
}

// FindByCode matches a coupon code case-insensitively
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*loyalty.Coupon, error) {
	return r.store.find(func(c *loyalty.Coupon) bool {
		return c.Matches(code)
	}), nil
}

var _ loyalty.CouponRepository = (*CouponRepository)(nil)
