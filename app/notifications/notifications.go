// Package notifications defines the customer- and ops-facing notifications
// sent around the order lifecycle.
package notifications

import (
	"fmt"

	"github.com/thanhvudev/furnimart/pkg/notification"
)

// statusLines is the customer-facing wording per order status.
var statusLines = map[string]string{
	"approved":   "Your order has been approved and is being prepared.",
	"rejected":   "Unfortunately your order was rejected. You have not been charged.",
	"delivering": "Your order is on its way.",
	"delivered":  "Your order has been delivered. Enjoy!",
	"cancelled":  "Your order has been cancelled as requested.",
}

// OrderStatusNotification tells the customer their order moved.
type OrderStatusNotification struct {
	OrderID      uint
	Status       string
	CustomerName string
}

func (n *OrderStatusNotification) Via() []string { return []string{"mail"} }

func (n *OrderStatusNotification) ToMail() notification.MailData {
	line, ok := statusLines[n.Status]
	if !ok {
		line = fmt.Sprintf("Your order is now %s.", n.Status)
	}
	return notification.MailData{
		Subject: fmt.Sprintf("Furnimart order #%d: %s", n.OrderID, n.Status),
		Text:    fmt.Sprintf("Hi %s,\n\n%s\n\nOrder reference: #%d.", n.CustomerName, line, n.OrderID),
	}
}

// NewOrderOpsNotification pings the ops channel when an order lands, so the
// back office can approve it promptly.
type NewOrderOpsNotification struct {
	OrderID uint
	Email   string
	Total   float64
}

func (n *NewOrderOpsNotification) Via() []string { return []string{"slack"} }

func (n *NewOrderOpsNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("New order #%d awaiting approval", n.OrderID),
		Attachments: []notification.SlackAttachment{{
			Color: "good",
			Title: fmt.Sprintf("Order #%d", n.OrderID),
			Text:  fmt.Sprintf("Customer: %s\nTotal: %.0f VND", n.Email, n.Total),
		}},
	}
}
