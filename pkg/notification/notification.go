// Package notification fans one message out over named channels. The order
// lifecycle uses two: "mail" for customer email and "slack" for the ops
// channel watching incoming orders.
//
//	type OrderPaid struct{ Order models.Order }
//	func (n *OrderPaid) Via() []string { return []string{"mail", "slack"} }
//	func (n *OrderPaid) ToMail() notification.MailData { ... }
//	func (n *OrderPaid) ToSlack() notification.SlackData { ... }
//
//	notification.Send(customer.Email, &OrderPaid{Order: order})
package notification

import (
	"fmt"
	"time"

	httpclient "github.com/thanhvudev/furnimart/pkg/http"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/mail"
)

// MailData carries the content of an email notification.
type MailData struct {
	To      string // overrides the notifiable address when set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback when Body is empty
}

// SlackData carries a Slack incoming-webhook payload.
type SlackData struct {
	WebhookURL  string // overrides the default webhook when set
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is a single Slack message attachment block.
type SlackAttachment struct {
	Color  string `json:"color,omitempty"` // "good" | "warning" | "danger"
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// Notification names the channels a message travels on.
type Notification interface {
	// Via returns channel names, currently "mail" and "slack".
	Via() []string
}

// Mailable supplies the mail channel content.
type Mailable interface {
	ToMail() MailData
}

// Slackable supplies the Slack channel content.
type Slackable interface {
	ToSlack() SlackData
}

var defaultSlackWebhook string

// SetSlackWebhook sets the default Slack incoming webhook URL. An empty URL
// leaves the Slack channel disabled.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// Send dispatches the notification on every channel Via names. address is
// the recipient for the mail channel. A failed channel is logged and
// collected; the others still run.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches in a background goroutine; failures only get logged.
func SendAsync(address string, n Notification) {
	go Send(address, n) //nolint:errcheck
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "slack":
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return sendSlack(s.ToSlack())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	msg := mail.To(to).Subject(d.Subject)
	if d.Body != "" {
		msg.Body(d.Body)
	} else {
		msg.Text(d.Text)
	}
	return msg.Send()
}

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func sendSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook URL not configured")
	}

	resp, err := httpclient.Post(url).
		Body(slackPayload{Text: d.Text, Attachments: d.Attachments}).
		Timeout(5 * time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("notification: slack returned HTTP %d", resp.StatusCode)
	}
	return nil
}
