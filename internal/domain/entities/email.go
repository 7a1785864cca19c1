package entities

// TestEmailInput is an operator request for a test email
type TestEmailInput struct {
	To      string
	Subject string
	HTML    string
}

// TestEmailResult echoes the provider reply for a test email
type TestEmailResult struct {
	Status         int         `json:"status"`
	To             string      `json:"to"`
	OverrideToUsed bool        `json:"overrideToUsed"`
	Resend         interface{} `json:"resend"`
}
