package transport

type OrderItemInput struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	ImageURL  string  `json:"imageUrl"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	Email                string           `json:"email"`
	FirstName            string           `json:"firstName"`
	LastName             string           `json:"lastName"`
	Address              string           `json:"address"`
	Apartment            string           `json:"apartment"`
	City                 string           `json:"city"`
	PostalCode           string           `json:"postalCode"`
	Country              string           `json:"country"`
	PaymentMethod        string           `json:"paymentMethod"`
	NameOnCard           string           `json:"nameOnCard"`
	CardNumber           string           `json:"cardNumber"`
	Expiry               string           `json:"expiry"`
	CVC                  string           `json:"cvc"`
	RememberMe           bool             `json:"rememberMe"`
	UseShippingAsBilling bool             `json:"useShippingAsBilling"`
	// Pointers so an absent amount is distinguishable from an explicit 0.
	ShippingPrice *float64         `json:"shippingPrice"`
	Subtotal      *float64         `json:"subtotal"`
	Total         *float64         `json:"total"`
	Items         []OrderItemInput `json:"items"`
}

type DeleteOrderRequest struct {
	OrderID uint `json:"orderId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateCommentRequest struct {
	ProductID int    `json:"productId"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
}

// OrderView is the listing shape the order history screens consume.
type OrderView struct {
	ID          string          `json:"id"`
	DBID        uint            `json:"dbId"`
	Date        string          `json:"date"`
	Total       float64         `json:"total"`
	Status      string          `json:"status"`
	ShippedAt   *string         `json:"shippedAt"`
	DeliveredAt *string         `json:"deliveredAt"`
	CancelledAt *string         `json:"cancelledAt"`
	Items       []OrderItemView `json:"items"`
}

type OrderItemView struct {
	Title    string  `json:"title"`
	ImageURL string  `json:"imageUrl"`
	Quantity uint    `json:"quantity"`
	Price    float64 `json:"price"`
}
