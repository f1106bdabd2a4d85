package domain

// Registration is the event-ticket sign-up shape consumed by the email
// templates. Its CRUD lives with the registrations collaborator; this backend
// only renders receipts from it.
type Registration struct {
	RegistrationID      string  `json:"registrationId"`
	CompanyName         string  `json:"companyName"`
	CompanyEmail        string  `json:"companyEmail"`
	PrimaryContactName  string  `json:"primaryContactName"`
	PrimaryContactEmail string  `json:"primaryContactEmail"`
	EventTitle          string  `json:"eventTitle"`
	EventDate           string  `json:"eventDate"`
	EventLocation       string  `json:"eventLocation"`
	TicketType          string  `json:"ticketType"`
	TotalCost           float64 `json:"totalCost"`
	PaymentStatus       string  `json:"paymentStatus"`
	Season              string  `json:"season,omitempty"`
	EventSlug           string  `json:"eventSlug,omitempty"`
}
