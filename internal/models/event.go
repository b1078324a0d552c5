package models

// TicketType is a ticket type as it appears on a console event snapshot.
// The console assigns the id; the name is what organizers see and what the
// VIP filter matches against.
type TicketType struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Event is a single event snapshot from the console search API. EndDate is
// the raw ISO-8601 timestamp string as returned by the console. Despite its
// name, AutoDiscounts carries every discount stored on the event, including
// operator-authored ones.
type Event struct {
	EventID       string         `json:"eventId"`
	Name          string         `json:"name"`
	EndDate       string         `json:"endDate"`
	TicketTypes   []TicketType   `json:"ticketTypes"`
	AutoDiscounts []AutoDiscount `json:"autoDiscounts"`
}

type EventSearchResponse struct {
	Events []Event `json:"events"`
}
