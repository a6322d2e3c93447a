package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Message is one rendered email. Tag groups it in Mailgun analytics.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Tag     string
}

// Mailgun sends through one long-lived client.
type Mailgun struct {
	client  *mg.MailgunImpl
	sender  string
	timeout time.Duration
}

// NewMailgun targets the US region unless apiBase is set (e.g. mg.APIBaseEU).
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	c := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		c.SetAPIBase(apiBase)
	}
	return &Mailgun{client: c, sender: sender, timeout: 10 * time.Second}
}

func (m *Mailgun) Send(ctx context.Context, msg Message) error {
	if msg.Text == "" && msg.HTML == "" {
		return errors.New("mailer: empty message body")
	}
	out := m.client.NewMessage(m.sender, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	if msg.Tag != "" {
		if err := out.AddTag(msg.Tag); err != nil {
			return err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	_, _, err := m.client.Send(ctx, out)
	return err
}
