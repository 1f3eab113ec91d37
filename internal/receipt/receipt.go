package receipt

import "time"

// Receipt represents a submitted purchase receipt
type Receipt struct {
	Retailer     string `json:"retailer"`
	PurchaseDate string `json:"purchaseDate"` // YYYY-MM-DD
	PurchaseTime string `json:"purchaseTime"` // HH:MM, 24-hour
	Total        string `json:"total"`        // Decimal amount with exactly two fraction digits
	Items        []Item `json:"items"`
}

// Item represents a single line item on a receipt
type Item struct {
	ShortDescription string `json:"shortDescription"`
	Price            string `json:"price"`
}

// ScoreRecord is the points awarded to a processed receipt
type ScoreRecord struct {
	ID        string    `json:"id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}
