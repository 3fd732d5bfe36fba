package mail

// Attachment is a binary file attached to an outbound email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one rendered email ready for the SMTP transport.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
