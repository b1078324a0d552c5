package models

// PurchasedLine is one entry of a purchase trigger: buying Quantity of the
// ticket type identified by TicketID. ID is assigned by console storage and
// is not part of the discount's logical identity.
type PurchasedLine struct {
	ID       string `json:"_id,omitempty"`
	TicketID string `json:"ticketId"`
	Quantity int    `json:"quantity"`
}

// DiscountTrigger describes when a discount code becomes redeemable.
type DiscountTrigger struct {
	ID        string          `json:"_id,omitempty"`
	Type      string          `json:"type"`
	Purchased []PurchasedLine `json:"purchased"`
}

// AutoDiscount is a discount record in the console's wire format, used both
// for records fetched from an event and for records we push back.
type AutoDiscount struct {
	ID                 string          `json:"_id,omitempty"`
	Code               string          `json:"code"`
	Quantity           int             `json:"quantity"`
	Trigger            DiscountTrigger `json:"trigger"`
	Discount           int             `json:"discount"`
	DiscountType       string          `json:"discountType"`
	AppliesTo          []string        `json:"appliesTo"`
	MaximumUsePerOrder int             `json:"maximumUsePerOrder"`
	Enabled            bool            `json:"enabled"`
}
