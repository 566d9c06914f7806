package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/gin-restaurant-api/internal/database"
	"github.com/franciscosanchezn/gin-restaurant-api/internal/middleware"
	"github.com/franciscosanchezn/gin-restaurant-api/internal/models"
	"github.com/franciscosanchezn/gin-restaurant-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:     "sqlite",
		Path:       filepath.Join(t.TempDir(), "controllers.db"),
		MaxRetries: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.NoRoute(NotFound)
	router.GET("/health", HealthCheck(db))
	RegisterRoutes(router, Controllers{
		Restaurants:      NewRestaurantController(services.NewRestaurantService(db)),
		Pizzas:           NewPizzaController(services.NewPizzaService(db)),
		RestaurantPizzas: NewRestaurantPizzaController(services.NewRestaurantPizzaService(db, services.PriceRange{Min: 1, Max: 30})),
	})
	return router
}

// seedLuigis creates Restaurant 1 (Luigi's) and Pizza 1 (Cheese)
func seedLuigis(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Restaurant{Name: "Luigi's", Address: "123 Main St"}).Error)
	require.NoError(t, db.Create(&models.Pizza{Name: "Cheese", Ingredients: "Cheese, Tomato"}).Error)
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func countRestaurantPizzas(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.RestaurantPizza{}).Count(&count).Error)
	return count
}

func TestCreateRestaurantPizzaEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedLuigis(t, db)
	router := setupRouter(db)

	w := performRequest(router, http.MethodPost, "/restaurant_pizzas", `{"price": 5, "pizza_id": 1, "restaurant_id": 1}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id": 1,
		"price": 5,
		"pizza_id": 1,
		"restaurant_id": 1,
		"pizza": {"id": 1, "name": "Cheese", "ingredients": "Cheese, Tomato"},
		"restaurant": {"id": 1, "name": "Luigi's", "address": "123 Main St"}
	}`, w.Body.String())
	assert.Equal(t, int64(1), countRestaurantPizzas(t, db))
}

func TestCreateRestaurantPizzaEndpointFailures(t *testing.T) {
	db := setupTestDB(t)
	seedLuigis(t, db)
	router := setupRouter(db)

	testCases := []struct {
		name     string
		body     string
		expected []string
	}{
		{"missing price", `{"pizza_id": 1, "restaurant_id": 1}`, []string{models.MsgMissingRequiredFields}},
		{"missing pizza_id", `{"price": 5, "restaurant_id": 1}`, []string{models.MsgMissingRequiredFields}},
		{"missing restaurant_id", `{"price": 5, "pizza_id": 1}`, []string{models.MsgMissingRequiredFields}},
		{"null price", `{"price": null, "pizza_id": 1, "restaurant_id": 1}`, []string{models.MsgMissingRequiredFields}},
		{"empty object", `{}`, []string{models.MsgMissingRequiredFields}},
		{"empty body", ``, []string{models.MsgMissingRequiredFields}},
		{"non-numeric price", `{"price": "cheap", "pizza_id": 1, "restaurant_id": 1}`, []string{"price must be a number"}},
		{"non-numeric pizza id", `{"price": 5, "pizza_id": "one", "restaurant_id": 1}`, []string{"pizza_id must be a number"}},
		{"malformed json", `{"price": 5,`, []string{models.MsgValidationErrors}},
		{"zero price", `{"price": 0, "pizza_id": 1, "restaurant_id": 1}`, []string{"Price must be between 1 and 30"}},
		{"price too high", `{"price": 31, "pizza_id": 1, "restaurant_id": 1}`, []string{"Price must be between 1 and 30"}},
		{"zero pizza id", `{"price": 5, "pizza_id": 0, "restaurant_id": 1}`, []string{"pizza_id must be a positive integer"}},
		{"negative restaurant id", `{"price": 5, "pizza_id": 1, "restaurant_id": -3}`, []string{"restaurant_id must be a positive integer"}},
		{"every value invalid", `{"price": 100, "pizza_id": 0, "restaurant_id": -1}`, []string{
			"Price must be between 1 and 30",
			"pizza_id must be a positive integer",
			"restaurant_id must be a positive integer",
		}},
		{"unknown pizza", `{"price": 5, "pizza_id": 999, "restaurant_id": 1}`, []string{models.MsgValidationErrors}},
		{"unknown restaurant", `{"price": 5, "pizza_id": 1, "restaurant_id": 999}`, []string{models.MsgValidationErrors}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/restaurant_pizzas", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			var body models.ErrorsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expected, body.Errors)
			assert.Zero(t, countRestaurantPizzas(t, db), "failed requests must not persist anything")
		})
	}
}

func TestGetRestaurantsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedLuigis(t, db)
	router := setupRouter(db)

	w := performRequest(router, http.MethodPost, "/restaurant_pizzas", `{"price": 5, "pizza_id": 1, "restaurant_id": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodGet, "/restaurants", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id": 1, "name": "Luigi's", "address": "123 Main St"}]`, w.Body.String())
}

func TestGetRestaurantsEndpointEmpty(t *testing.T) {
	router := setupRouter(setupTestDB(t))

	w := performRequest(router, http.MethodGet, "/restaurants", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetRestaurantByIDEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedLuigis(t, db)
	router := setupRouter(db)

	w := performRequest(router, http.MethodPost, "/restaurant_pizzas", `{"price": 12.5, "pizza_id": 1, "restaurant_id": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodGet, "/restaurants/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Luigi's",
		"address": "123 Main St",
		"restaurant_pizzas": [
			{
				"id": 1,
				"price": 12.5,
				"pizza_id": 1,
				"restaurant_id": 1,
				"pizza": {"id": 1, "name": "Cheese", "ingredients": "Cheese, Tomato"}
			}
		]
	}`, w.Body.String())
}

func TestGetRestaurantByIDNotFound(t *testing.T) {
	router := setupRouter(setupTestDB(t))

	for _, path := range []string{"/restaurants/999", "/restaurants/abc", "/restaurants/0", "/restaurants/-1"} {
		w := performRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error": "Restaurant not found"}`, w.Body.String(), path)
	}
}

func TestDeleteRestaurantEndpoint(t *testing.T) {
	db := setupTestDB(t)
	seedLuigis(t, db)
	router := setupRouter(db)

	for i := 0; i < 2; i++ {
		w := performRequest(router, http.MethodPost, "/restaurant_pizzas", `{"price": 5, "pizza_id": 1, "restaurant_id": 1}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Equal(t, int64(2), countRestaurantPizzas(t, db))

	w := performRequest(router, http.MethodDelete, "/restaurants/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Zero(t, countRestaurantPizzas(t, db))

	w = performRequest(router, http.MethodGet, "/restaurants/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodDelete, "/restaurants/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Restaurant not found"}`, w.Body.String())
}

func TestGetPizzasEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	pizzas := []models.Pizza{
		{Name: "Emma", Ingredients: "Dough, Tomato Sauce, Cheese"},
		{Name: "Geri", Ingredients: "Dough, Tomato Sauce, Cheese, Pepperoni"},
		{Name: "Melanie", Ingredients: "Dough, Sauce, Ricotta, Red peppers, Mustard"},
	}
	require.NoError(t, db.Create(&pizzas).Error)
	require.NoError(t, db.Create(&models.Restaurant{Name: "Kiki's Pizza", Address: "address3"}).Error)

	w := performRequest(router, http.MethodPost, "/restaurant_pizzas", `{"price": 3, "pizza_id": 2, "restaurant_id": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodGet, "/pizzas", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.PizzaSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, len(pizzas))
	for i := range pizzas {
		assert.Equal(t, pizzas[i].Summary(), got[i])
	}
}

func TestUnknownRoute(t *testing.T) {
	router := setupRouter(setupTestDB(t))

	w := performRequest(router, http.MethodGet, "/menus", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Not found"}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	db := setupTestDB(t)
	router := setupRouter(db)

	w := performRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	require.NoError(t, database.Close(db))
	w = performRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRespondWithErrorMapsUnknownErrorsTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/boom", func(c *gin.Context) {
		respondWithError(c, errors.New("disk on fire"))
	})

	w := performRequest(router, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, w.Body.String())
}
