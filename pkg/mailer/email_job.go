package mailer

// Template names understood by the email worker.
const (
	TemplateVerifyEmail = "verify_email"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text is the plain-text body; HTML is optional. Template selects a canned
// subject/body rendered by the worker from Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
