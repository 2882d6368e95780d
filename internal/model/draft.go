package model

// Draft is one composed outreach email, ready for delivery.
type Draft struct {
	Company string `json:"company"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
