package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-restaurant-api/internal/models"
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers exposed by the API
type Controllers struct {
	Restaurants      RestaurantController
	Pizzas           PizzaController
	RestaurantPizzas RestaurantPizzaController
}

// RegisterRoutes defines the API routes on the router
func RegisterRoutes(router gin.IRouter, c Controllers) {
	router.GET("/restaurants", c.Restaurants.GetAllRestaurants)
	router.GET("/restaurants/:id", c.Restaurants.GetRestaurantByID)
	router.DELETE("/restaurants/:id", c.Restaurants.DeleteRestaurant)

	router.GET("/pizzas", c.Pizzas.GetAllPizzas)

	router.POST("/restaurant_pizzas", c.RestaurantPizzas.CreateRestaurantPizza)
}

// NotFound answers unknown routes with a JSON body instead of gin's plain text
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
}
