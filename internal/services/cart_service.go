package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/sirupsen/logrus"
)

// MaxCartItemQuantity bounds the quantity of one cart line.
const MaxCartItemQuantity = 32767

// CartProduct is the product summary shown in a cart line.
type CartProduct struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartItemView is one line of a cart.
type CartItemView struct {
	ID         uint        `json:"id"`
	Product    CartProduct `json:"product"`
	Quantity   uint16      `json:"quantity"`
	TotalPrice float64     `json:"total_price"`
}

// CartView is a cart with its line and grand totals.
type CartView struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	Items      []CartItemView `json:"items"`
	TotalPrice float64        `json:"total_price"`
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewCartItemView builds the representation of item.
func NewCartItemView(item *models.CartItem) CartItemView {
	return CartItemView{
		ID:         item.ID,
		Product:    CartProduct{ID: item.Product.ID, Name: item.Product.Name, Price: item.Product.Price},
		Quantity:   item.Quantity,
		TotalPrice: roundPrice(float64(item.Quantity) * item.Product.Price),
	}
}

// NewCartView builds the representation of cart.
func NewCartView(cart *models.Cart) CartView {
	view := CartView{ID: cart.ID, CreatedAt: cart.CreatedAt, Items: make([]CartItemView, 0, len(cart.Items))}
	var total float64
	for i := range cart.Items {
		item := NewCartItemView(&cart.Items[i])
		total += item.TotalPrice
		view.Items = append(view.Items, item)
	}
	view.TotalPrice = roundPrice(total)
	return view
}

// CartService handles business logic related to carts.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	logger      logrus.FieldLogger
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, logger logrus.FieldLogger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// CreateCart creates an empty cart.
func (s *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart, err := s.cartRepo.Create(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("cart_id", cart.ID).Debug("cart created")
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	return s.cartRepo.GetByID(ctx, id)
}

func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	return s.cartRepo.Delete(ctx, id)
}

func checkQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxCartItemQuantity {
		return apperrors.FieldError("quantity", fmt.Sprintf("Ensure this value is between 1 and %d.", MaxCartItemQuantity))
	}
	return nil
}

// AddItem puts quantity units of a product in the cart. A product already
// in the cart gets its quantity increased.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil, apperrors.FieldError("product_id", "No product with the given ID was found.")
		}
		return nil, err
	}
	for _, item := range cart.Items {
		if item.ProductID == productID && int(item.Quantity)+quantity > MaxCartItemQuantity {
			return nil, checkQuantity(int(item.Quantity) + quantity)
		}
	}
	return s.cartRepo.AddItem(ctx, cartID, productID, uint16(quantity))
}

// UpdateItem sets the quantity of a cart line.
func (s *CartService) UpdateItem(ctx context.Context, cartID string, itemID uint, quantity int) (*models.CartItem, error) {
	if err := checkQuantity(quantity); err != nil {
		return nil, err
	}
	return s.cartRepo.UpdateItemQuantity(ctx, cartID, itemID, uint16(quantity))
}

func (s *CartService) RemoveItem(ctx context.Context, cartID string, itemID uint) error {
	return s.cartRepo.DeleteItem(ctx, cartID, itemID)
}
