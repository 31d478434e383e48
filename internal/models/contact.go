package models

// Contact is an address book entry.
type Contact struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}
