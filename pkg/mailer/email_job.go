package mailer

// EmailJob is the JSON payload queued for the email worker. A job either
// names a Template with its Data or carries a ready body in Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Resolved reports whether the job already carries a body and needs no template.
func (j EmailJob) Resolved() bool {
	return j.Template == "" && (j.Text != "" || j.HTML != "")
}

// Message turns a resolved job into something a sender can deliver.
func (j EmailJob) Message(subject, text, html string) Message {
	tag := j.Template
	if tag == "" {
		tag = "adhoc"
	}
	return Message{To: j.To, Subject: subject, Text: text, HTML: html, Tag: tag}
}
