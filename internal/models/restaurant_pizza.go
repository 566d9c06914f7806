package models

// RestaurantPizza is a pizza offered by a restaurant at a given price
type RestaurantPizza struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Price        float64 `gorm:"not null" json:"price"`
	RestaurantID uint    `gorm:"not null;index" json:"restaurant_id"`
	PizzaID      uint    `gorm:"not null;index" json:"pizza_id"`

	Restaurant Restaurant `json:"-"`
	Pizza      Pizza      `json:"-"`
}

func (RestaurantPizza) TableName() string {
	return "restaurant_pizzas"
}

// CreateRestaurantPizzaRequest is the payload accepted when adding a pizza to a restaurant.
// Fields are pointers so that a missing key can be told apart from a zero value.
// Binding only checks presence; value rules are checked together by the service.
type CreateRestaurantPizzaRequest struct {
	Price        *float64 `json:"price" binding:"required"`
	PizzaID      *int64   `json:"pizza_id" binding:"required"`
	RestaurantID *int64   `json:"restaurant_id" binding:"required"`
}

// RestaurantPizzaDetail is a restaurant offering with its pizza embedded
type RestaurantPizzaDetail struct {
	ID           uint         `json:"id"`
	Price        float64      `json:"price"`
	PizzaID      uint         `json:"pizza_id"`
	RestaurantID uint         `json:"restaurant_id"`
	Pizza        PizzaSummary `json:"pizza"`
}

// RestaurantPizzaResponse is returned after an offering is created
type RestaurantPizzaResponse struct {
	ID           uint              `json:"id"`
	Price        float64           `json:"price"`
	PizzaID      uint              `json:"pizza_id"`
	RestaurantID uint              `json:"restaurant_id"`
	Pizza        PizzaSummary      `json:"pizza"`
	Restaurant   RestaurantSummary `json:"restaurant"`
}

// Response projects the offering with both related entities. Pizza and Restaurant
// must already be loaded.
func (rp RestaurantPizza) Response() RestaurantPizzaResponse {
	return RestaurantPizzaResponse{
		ID:           rp.ID,
		Price:        rp.Price,
		PizzaID:      rp.PizzaID,
		RestaurantID: rp.RestaurantID,
		Pizza:        rp.Pizza.Summary(),
		Restaurant:   rp.Restaurant.Summary(),
	}
}
