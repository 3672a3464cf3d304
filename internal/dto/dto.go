package dto

type CartItem struct {
	PriceID  string `json:"price_id"`
	Quantity int64  `json:"quantity"`
}

type CheckoutRequest struct {
	Items []CartItem `json:"items"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type ImportRequest struct {
	Limit int64 `json:"limit"`
	Force bool  `json:"force"`
}

type SubscribeRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Source    string `json:"source"`
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
