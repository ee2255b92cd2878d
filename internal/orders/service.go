package orders

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/storeops/storefront-backend/internal/cart"
	"github.com/storeops/storefront-backend/internal/catalog"
	"github.com/storeops/storefront-backend/pkg/db/models"
	"github.com/storeops/storefront-backend/pkg/enums"
	pkgerrors "github.com/storeops/storefront-backend/pkg/errors"
	"github.com/storeops/storefront-backend/pkg/logger"
	"github.com/storeops/storefront-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes checkout orchestration and order management.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	CheckoutFromCart(ctx context.Context, sessionID string, input CheckoutInput) (*CheckoutResult, error)
	Create(ctx context.Context, input CheckoutInput) (*CheckoutResult, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, params pagination.Params) (*OrderPage, error)
	Update(ctx context.Context, id int64, input UpdateOrderInput) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	tx       txRunner
	repo     Repository
	cartRepo cart.CartRepository
	products catalog.ProductRepository
	logg     *logger.Logger
}

// NewService builds the orders service.
func NewService(
	tx txRunner,
	repo Repository,
	cartRepo cart.CartRepository,
	products catalog.ProductRepository,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		tx:       tx,
		repo:     repo,
		cartRepo: cartRepo,
		products: products,
		logg:     logg,
	}, nil
}

// Checkout commits an ad-hoc order. Items without a unit price are priced
// from the catalog inside the transaction, discount applied; a missing
// product rolls the whole order back and names the offending product.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if input.Name == "" {
		input.Name = fmt.Sprintf("Order - %s", now.Format("Jan 2, 2006"))
	}
	if input.Description == "" {
		input.Description = fmt.Sprintf("Order placed on %s", now.Format("Jan 2, 2006 3:04 PM"))
	}
	return s.commit(ctx, input, now)
}

// CheckoutFromCart converts the session's cart into an order using the
// cart's snapshot prices, then clears the cart. The clear happens after
// commit; a failure there leaves a stale cart but never a lost order.
func (s *service) CheckoutFromCart(ctx context.Context, sessionID string, input CheckoutInput) (*CheckoutResult, error) {
	record, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.Items(ctx, record.CartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	input.Items = make([]CheckoutItem, len(items))
	for i, item := range items {
		price := item.UnitPrice
		input.Items[i] = CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: &price,
		}
	}
	if input.Name == "" {
		input.Name = "Order from Cart"
	}
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}

	result, err := s.commit(ctx, input, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if clearErr := s.cartRepo.ClearCart(ctx, record.CartID); clearErr != nil && s.logg != nil {
		cctx := s.logg.WithFields(ctx, map[string]any{
			"cart_id":  record.CartID,
			"order_id": result.Order.OrderID,
		})
		s.logg.Error(cctx, "clear cart after checkout", clearErr)
	}
	return result, nil
}

// Create inserts an order with caller-supplied prices on every line.
func (s *service) Create(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validateCheckoutInput(input); err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		if item.UnitPrice == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unit price required for product %d", item.ProductID))
		}
	}
	return s.commit(ctx, input, time.Now().UTC())
}

func (s *service) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params) (*OrderPage, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: rows, NextCursor: next}, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.BranchID != nil {
		if *input.BranchID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branchId must be positive")
		}
		order.BranchID = *input.BranchID
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		order.Name = *input.Name
	}
	if input.Description != nil {
		order.Description = *input.Description
	}
	if input.Status != nil {
		status := enums.OrderStatus(*input.Status)
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *input.Status))
		}
		order.Status = status
	}

	return s.repo.Update(ctx, order)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// commit runs the shared transactional core: order header first, then
// detail rows in input order, resolving any unset price from the catalog.
func (s *service) commit(ctx context.Context, input CheckoutInput, now time.Time) (*CheckoutResult, error) {
	var result *CheckoutResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		products := s.products.WithTx(tx)

		order := &models.Order{
			BranchID:    input.BranchID,
			OrderDate:   now,
			Name:        input.Name,
			Description: input.Description,
			Status:      enums.OrderStatusPending,
		}
		created, err := repo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		productCache := map[int64]*models.Product{}
		details := make([]models.OrderDetail, len(input.Items))
		for i, item := range input.Items {
			product, err := s.loadProduct(ctx, products, item.ProductID, productCache)
			if err != nil {
				return err
			}
			price := catalog.FinalPrice(product)
			if item.UnitPrice != nil {
				price = *item.UnitPrice
			}
			details[i] = models.OrderDetail{
				OrderID:   created.OrderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: price,
				Notes:     item.Notes,
			}
		}
		if err := repo.CreateDetails(ctx, details); err != nil {
			return err
		}

		result = &CheckoutResult{Order: created, Details: details}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) loadProduct(ctx context.Context, products catalog.ProductRepository, productID int64, cache map[int64]*models.Product) (*models.Product, error) {
	if product, ok := cache[productID]; ok {
		return product, nil
	}
	product, err := products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	cache[productID] = product
	return product, nil
}

func validateCheckoutInput(input CheckoutInput) error {
	if input.BranchID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "branchId must be positive")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for _, item := range input.Items {
		if item.ProductID <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "productId must be positive")
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be greater than zero for product %d", item.ProductID))
		}
	}
	return nil
}
