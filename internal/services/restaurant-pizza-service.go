package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-restaurant-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceRange is the inclusive range a restaurant pizza price must fall in
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the range
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// RestaurantPizzaService adds pizzas to restaurants
type RestaurantPizzaService interface {
	// CreateRestaurantPizza validates the request and persists a new offering in one transaction.
	// It returns models.ValidationError for bad input and models.ConstraintError when the
	// referenced pizza or restaurant does not exist; nothing is persisted in either case.
	CreateRestaurantPizza(ctx context.Context, req models.CreateRestaurantPizzaRequest) (models.RestaurantPizza, error)
}

type restaurantPizzaService struct {
	db     *gorm.DB
	prices PriceRange
}

// NewRestaurantPizzaService creates a new instance of RestaurantPizzaService
func NewRestaurantPizzaService(db *gorm.DB, prices PriceRange) RestaurantPizzaService {
	return &restaurantPizzaService{db: db, prices: prices}
}

func (s *restaurantPizzaService) CreateRestaurantPizza(ctx context.Context, req models.CreateRestaurantPizzaRequest) (models.RestaurantPizza, error) {
	if err := s.validate(req); err != nil {
		return models.RestaurantPizza{}, err
	}

	rp := models.RestaurantPizza{
		Price:        *req.Price,
		PizzaID:      uint(*req.PizzaID),
		RestaurantID: uint(*req.RestaurantID),
	}

	var created models.RestaurantPizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rp).Error; err != nil {
			if isConstraintViolation(err) {
				return models.ConstraintError{Err: err}
			}
			return fmt.Errorf("failed to create restaurant pizza: %w", err)
		}

		if err := tx.Preload("Pizza").Preload("Restaurant").First(&created, rp.ID).Error; err != nil {
			return fmt.Errorf("failed to load restaurant pizza %d: %w", rp.ID, err)
		}
		if created.Pizza.ID == 0 || created.Restaurant.ID == 0 {
			return models.ConstraintError{
				Err: fmt.Errorf("pizza %d or restaurant %d does not exist", rp.PizzaID, rp.RestaurantID),
			}
		}
		return nil
	})
	if err != nil {
		return models.RestaurantPizza{}, err
	}
	return created, nil
}

// validate checks every field in one pass before the store is touched
func (s *restaurantPizzaService) validate(req models.CreateRestaurantPizzaRequest) error {
	if req.Price == nil || req.PizzaID == nil || req.RestaurantID == nil {
		return models.NewValidationError(models.MsgMissingRequiredFields)
	}

	var messages []string
	if !s.prices.Contains(*req.Price) {
		messages = append(messages, fmt.Sprintf("Price must be between %g and %g", s.prices.Min, s.prices.Max))
	}
	if *req.PizzaID <= 0 {
		messages = append(messages, "pizza_id must be a positive integer")
	}
	if *req.RestaurantID <= 0 {
		messages = append(messages, "restaurant_id must be a positive integer")
	}
	if len(messages) > 0 {
		return models.NewValidationError(messages...)
	}
	return nil
}

func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated)
}
