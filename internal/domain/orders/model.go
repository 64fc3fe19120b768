package orders

import "time"

// Item es la ración calculada para un gato dentro del pedido.
type Item struct {
	ID      string
	OrderID string
	CatID   string
	CatName string

	DailyCalories      int
	DailyGrams         float64
	MenuRotation       []string
	AddOns             []string
	FeedingTimesPerDay int
	PortionSizeGrams   float64

	CreatedAt time.Time
}

type NutritionSummary struct {
	TotalDailyCalories int
	TotalDailyGrams    float64
	CatCount           int
}

// Order: snapshot de entrega y precio al momento del checkout.
type Order struct {
	ID             string
	UserID         string
	PlanID         string
	PlanName       string
	SubscriptionID string
	Renewal        bool

	Status   Status
	Total    float64
	Currency string

	CustomerName string
	Phone        string
	City         string
	Address      string
	Notes        string

	Summary NutritionSummary
	Items   []Item

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusChange es una entrada del historial (append-only) del pedido.
type StatusChange struct {
	ID         string
	OrderID    string
	From       Status // vacío en la creación
	To         Status
	Actor      Actor
	Note       string
	OccurredAt time.Time
}
