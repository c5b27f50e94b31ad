package models

// CartLine is a frozen copy of the product at the time it was added, plus the quantity.
type CartLine struct {
	Product
	Quantity int `json:"quantity" validate:"gte=1"`
}

type CartState struct {
	Items []CartLine `json:"items" validate:"dive"`
}

// CartView is what the presentation layer renders.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
	Count int        `json:"count"`
}
