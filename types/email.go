package types

// EmailAttachment is a decoded binary attachment for an outbound email.
type EmailAttachment struct {
	Filename string
	Content  []byte
}

// EmailMessage is a fully rendered notification, ready for dispatch. ReplyTo
// is empty for anonymous submissions.
type EmailMessage struct {
	From        string
	To          string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []EmailAttachment
}
