package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ecommerce_api/internal/cache"
	"ecommerce_api/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const allProductsKey = "products:all"

func productKey(id uint) string { return "products:" + strconv.FormatUint(uint64(id), 10) }

// ProductInput holds the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("Name is required")
	}
	if in.Price.IsNegative() {
		return invalid("Price must not be negative")
	}
	if in.Stock < 0 {
		return invalid("Stock must not be negative")
	}
	return nil
}

// Catalog manages products. Reads go through the cache; writes invalidate it.
type Catalog struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewCatalog returns a Catalog. c may be nil to disable caching.
func NewCatalog(db *gorm.DB, c *cache.Cache) *Catalog {
	return &Catalog{db: db, cache: c}
}

// List returns every product ordered by id.
func (s *Catalog) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if found, err := s.cache.Get(ctx, allProductsKey, &products); err == nil && found {
		return products, nil
	}
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.remember(ctx, allProductsKey, products)
	return products, nil
}

// Get returns one product.
func (s *Catalog) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if found, err := s.cache.Get(ctx, productKey(id), &product); err == nil && found {
		return &product, nil
	}
	err := s.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	s.remember(ctx, productKey(id), product)
	return &product, nil
}

// Create stores a new product.
func (s *Catalog) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	product := domain.Product{Name: strings.TrimSpace(in.Name), Description: in.Description, Price: in.Price, Stock: in.Stock}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.forget(ctx, allProductsKey)
	return &product, nil
}

// Update overwrites a product's fields.
func (s *Catalog) Update(ctx context.Context, id uint, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var product domain.Product
	err := db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	changes := domain.Product{Name: strings.TrimSpace(in.Name), Description: in.Description, Price: in.Price, Stock: in.Stock}
	// Select so that zero stock or an empty description are written too
	err = db.Model(&product).Select("name", "description", "price", "stock").Updates(changes).Error
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	product.Name, product.Description, product.Price, product.Stock = changes.Name, changes.Description, changes.Price, changes.Stock
	s.forget(ctx, allProductsKey, productKey(id))
	return &product, nil
}

// Delete removes a product.
func (s *Catalog) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("Product", id)
	}
	s.forget(ctx, allProductsKey, productKey(id))
	return nil
}

// remember and forget treat cache faults as misses: the store stays the source of truth.
func (s *Catalog) remember(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

func (s *Catalog) forget(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
