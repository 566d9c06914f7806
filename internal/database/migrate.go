package database

import (
	"context"
	"fmt"

	"github.com/franciscosanchezn/gin-restaurant-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the restaurants, pizzas and restaurant_pizzas tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Pizza{},
		&models.RestaurantPizza{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database schema migrated")
	return nil
}

var seedRestaurants = []models.Restaurant{
	{Name: "Karen's Pizza Shack", Address: "address1"},
	{Name: "Sanjay's Pizza", Address: "address2"},
	{Name: "Kiki's Pizza", Address: "address3"},
}

var seedPizzas = []models.Pizza{
	{Name: "Emma", Ingredients: "Dough, Tomato Sauce, Cheese"},
	{Name: "Geri", Ingredients: "Dough, Tomato Sauce, Cheese, Pepperoni"},
	{Name: "Melanie", Ingredients: "Dough, Sauce, Ricotta, Red peppers, Mustard"},
}

// seedPrices pairs seedRestaurants[i] with seedPizzas[i]
var seedPrices = []float64{1, 4, 5}

// Seed inserts the initial restaurants, pizzas and offerings in a single transaction
func Seed(ctx context.Context, db *gorm.DB) error {
	log.Info("Seeding database with initial data")
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		restaurants := make([]models.Restaurant, len(seedRestaurants))
		copy(restaurants, seedRestaurants)
		if err := tx.Create(&restaurants).Error; err != nil {
			return fmt.Errorf("failed to seed restaurants: %w", err)
		}

		pizzas := make([]models.Pizza, len(seedPizzas))
		copy(pizzas, seedPizzas)
		if err := tx.Create(&pizzas).Error; err != nil {
			return fmt.Errorf("failed to seed pizzas: %w", err)
		}

		offerings := make([]models.RestaurantPizza, 0, len(seedPrices))
		for i, price := range seedPrices {
			offerings = append(offerings, models.RestaurantPizza{
				Price:        price,
				RestaurantID: restaurants[i].ID,
				PizzaID:      pizzas[i].ID,
			})
		}
		if err := tx.Omit("Restaurant", "Pizza").Create(&offerings).Error; err != nil {
			return fmt.Errorf("failed to seed restaurant pizzas: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"restaurants":       len(seedRestaurants),
		"pizzas":            len(seedPizzas),
		"restaurant_pizzas": len(seedPrices),
	}).Info("Database seeded successfully")
	return nil
}

// SeedIfEmpty seeds the database only when no restaurant and no pizza exists yet.
// It reports whether seeding happened.
func SeedIfEmpty(ctx context.Context, db *gorm.DB) (bool, error) {
	var restaurants, pizzas int64
	if err := db.WithContext(ctx).Model(&models.Restaurant{}).Count(&restaurants).Error; err != nil {
		return false, fmt.Errorf("failed to count restaurants: %w", err)
	}
	if err := db.WithContext(ctx).Model(&models.Pizza{}).Count(&pizzas).Error; err != nil {
		return false, fmt.Errorf("failed to count pizzas: %w", err)
	}
	if restaurants > 0 || pizzas > 0 {
		log.Info("Database already seeded with initial data")
		return false, nil
	}

	log.Info("Database is empty, seeding initial data")
	if err := Seed(ctx, db); err != nil {
		return false, err
	}
	return true, nil
}

// Reset removes every row from the three tables, offerings first
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.RestaurantPizza{}, &models.Restaurant{}, &models.Pizza{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to reset table: %w", err)
			}
		}
		log.Warn("All restaurants, pizzas and restaurant pizzas deleted")
		return nil
	})
}
