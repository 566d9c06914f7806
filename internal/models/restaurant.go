package models

// Restaurant represents a restaurant and the pizzas it offers.
// Deleting a restaurant removes its RestaurantPizza rows.
type Restaurant struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Address string `gorm:"not null" json:"address"`

	RestaurantPizzas []RestaurantPizza `gorm:"constraint:OnDelete:CASCADE" json:"restaurant_pizzas,omitempty"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// RestaurantSummary is the public projection used in listings and embedded records
type RestaurantSummary struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RestaurantDetail is a restaurant together with every pizza offering it owns
type RestaurantDetail struct {
	ID               uint                    `json:"id"`
	Name             string                  `json:"name"`
	Address          string                  `json:"address"`
	RestaurantPizzas []RestaurantPizzaDetail `json:"restaurant_pizzas"`
}

// Summary projects the restaurant to its public fields
func (r Restaurant) Summary() RestaurantSummary {
	return RestaurantSummary{ID: r.ID, Name: r.Name, Address: r.Address}
}

// Detail projects the restaurant with its offerings. RestaurantPizzas must be preloaded
// with their Pizza for the embedded summaries to be populated.
func (r Restaurant) Detail() RestaurantDetail {
	offerings := make([]RestaurantPizzaDetail, 0, len(r.RestaurantPizzas))
	for _, rp := range r.RestaurantPizzas {
		offerings = append(offerings, RestaurantPizzaDetail{
			ID:           rp.ID,
			Price:        rp.Price,
			PizzaID:      rp.PizzaID,
			RestaurantID: rp.RestaurantID,
			Pizza:        rp.Pizza.Summary(),
		})
	}
	return RestaurantDetail{
		ID:               r.ID,
		Name:             r.Name,
		Address:          r.Address,
		RestaurantPizzas: offerings,
	}
}
