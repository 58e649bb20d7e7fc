// Package email defines the email record used throughout the agent and its
// validation rules.
package email

// Message represents an outgoing email assembled from an email file or a
// direct tool payload. Attachments hold filesystem paths, not file contents;
// providers read them at send time.
type Message struct {
	To          []string `json:"to"`
	Cc          []string `json:"cc"`
	Bcc         []string `json:"bcc"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
}
