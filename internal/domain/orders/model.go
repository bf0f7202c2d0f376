package orders

import "time"

const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type Item struct {
	ProductSlug string `json:"product_slug"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type Order struct {
	ID     uint   `json:"id"`
	Number string `json:"number"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Total         string `json:"total"`

	Items []Item `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
