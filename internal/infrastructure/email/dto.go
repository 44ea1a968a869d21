package email

// ContactMessage is a validated contact form submission ready to relay.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}
