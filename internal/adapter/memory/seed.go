package memory

import "github.com/Atash03/maestro-delivery-app-sub002/internal/domain"

func floatPtr(v float64) *float64 { return &v }

// SeedDemoCatalog loads a small fixture catalog for in-memory mode.
func SeedDemoCatalog(c *Catalog) {
	restaurants := []*domain.Restaurant{
		{
			ID:           "rest-bella",
			Name:         "Bella Italia",
			CuisineType:  "Italian",
			Rating:       4.6,
			DeliveryTime: "25-35 min",
			DeliveryFee:  floatPtr(3.99),
			Address:      "12 Harbor St",
		},
		{
			ID:           "rest-sakura",
			Name:         "Sakura Sushi",
			CuisineType:  "Japanese",
			Rating:       4.8,
			DeliveryTime: "30-40 min",
			DeliveryFee:  floatPtr(0), // free delivery, not the minimum fallback
			Address:      "88 Cherry Ave",
		},
		{
			ID:           "rest-taco",
			Name:         "Taco Verde",
			CuisineType:  "Mexican",
			Rating:       4.3,
			DeliveryTime: "20-30 min",
			Address:      "5 Mercado Plaza", // no published fee
		},
	}

	items := []*domain.MenuItem{
		{
			ID: "item-margherita", RestaurantID: "rest-bella", Name: "Margherita",
			Description: "Tomato, mozzarella, basil", Price: 12.99, Category: "Pizza", IsAvailable: true,
			Customizations: []domain.Customization{
				{
					ID: "size", Name: "Size", Required: true, MaxChoices: 1,
					Options: []domain.CustomizationOption{
						{ID: "small", Name: "Small", Price: 0},
						{ID: "medium", Name: "Medium", Price: 2.00},
						{ID: "large", Name: "Large", Price: 4.00},
					},
				},
				{
					ID: "toppings", Name: "Extra Toppings", MaxChoices: 3,
					Options: []domain.CustomizationOption{
						{ID: "olives", Name: "Olives", Price: 0.75},
						{ID: "mushrooms", Name: "Mushrooms", Price: 1.00},
						{ID: "prosciutto", Name: "Prosciutto", Price: 2.50},
					},
				},
			},
		},
		{
			ID: "item-carbonara", RestaurantID: "rest-bella", Name: "Spaghetti Carbonara",
			Description: "Guanciale, pecorino, egg", Price: 14.50, Category: "Pasta", IsAvailable: true,
		},
		{
			ID: "item-tiramisu", RestaurantID: "rest-bella", Name: "Tiramisu",
			Description: "Classic", Price: 6.99, Category: "Dessert", IsAvailable: false,
		},
		{
			ID: "item-dragon-roll", RestaurantID: "rest-sakura", Name: "Dragon Roll",
			Description: "Eel, avocado, cucumber", Price: 15.99, Category: "Rolls", IsAvailable: true,
			Customizations: []domain.Customization{
				{
					ID: "pieces", Name: "Pieces", Required: true, MaxChoices: 1,
					Options: []domain.CustomizationOption{
						{ID: "six", Name: "6 pieces", Price: 0},
						{ID: "twelve", Name: "12 pieces", Price: 12.00},
					},
				},
			},
		},
		{
			ID: "item-miso", RestaurantID: "rest-sakura", Name: "Miso Soup",
			Price: 3.50, Category: "Soup", IsAvailable: true,
		},
		{
			ID: "item-al-pastor", RestaurantID: "rest-taco", Name: "Tacos al Pastor",
			Description: "Three tacos, pineapple, cilantro", Price: 9.75, Category: "Tacos", IsAvailable: true,
			Customizations: []domain.Customization{
				{
					ID: "salsa", Name: "Salsa", MaxChoices: 2,
					Options: []domain.CustomizationOption{
						{ID: "verde", Name: "Verde", Price: 0},
						{ID: "roja", Name: "Roja", Price: 0},
						{ID: "habanero", Name: "Habanero", Price: 0.50},
					},
				},
			},
		},
	}

	c.Seed(restaurants, items)
}
