package domain

import "time"

type QuoteStatus string

const (
	QuoteStatusPending    QuoteStatus = "pending"
	QuoteStatusProcessing QuoteStatus = "processing"
	QuoteStatusQuoted     QuoteStatus = "quoted"
	QuoteStatusAccepted   QuoteStatus = "accepted"
	QuoteStatusRejected   QuoteStatus = "rejected"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusPending:    {QuoteStatusProcessing, QuoteStatusRejected},
	QuoteStatusProcessing: {QuoteStatusQuoted, QuoteStatusRejected},
	QuoteStatusQuoted:     {QuoteStatusAccepted, QuoteStatusRejected},
}

func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusAccepted || s == QuoteStatusRejected
}

func (s QuoteStatus) String() string {
	return string(s)
}

func CanTransitionTo(from, to QuoteStatus) bool {
	for _, next := range quoteTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country"`
}

type Requirements struct {
	DeliveryDate        *time.Time `json:"delivery_date,omitempty"`
	ShippingAddress     string     `json:"shipping_address"`
	SpecialRequirements string     `json:"special_requirements,omitempty"`
	PaymentTerms        string     `json:"payment_terms,omitempty"`
}

// QuoteRequest holds a copy of the cart items taken at submission time.
type QuoteRequest struct {
	ID             string       `json:"id"`
	CartItems      []CartItem   `json:"cart_items"`
	CustomerInfo   CustomerInfo `json:"customer_info"`
	Requirements   Requirements `json:"requirements"`
	EstimatedTotal float64      `json:"estimated_total"`
	Currency       string       `json:"currency"`
	Status         QuoteStatus  `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
