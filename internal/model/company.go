package model

// Company is one extracted company record. Every field is always present;
// a missing value is the empty string, never a partial or redacted one.
type Company struct {
	Name     string `json:"name"`
	Services string `json:"services/products"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// HasEmail reports whether the record carries a resolved email.
func (c Company) HasEmail() bool {
	return c.Email != ""
}

// Qualified reports whether the record is complete enough to persist and to
// count toward the discovery target. Name and email must both be present;
// the same predicate governs both so the running counter can never outpace
// the rows actually written.
func (c Company) Qualified() bool {
	return c.Name != "" && c.Email != ""
}

// Contact is a best-effort contact pair for a single named company.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
