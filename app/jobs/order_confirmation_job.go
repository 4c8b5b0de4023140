// Package jobs holds the background jobs dispatched onto the queue. Every
// job type is registered in RegisterAll so workers can deserialize it.
package jobs

import (
	"fmt"

	"github.com/thanhvudev/furnimart/pkg/mail"
	"github.com/thanhvudev/furnimart/pkg/queue"
)

// OrderConfirmationJob mails the customer after their order is placed.
type OrderConfirmationJob struct {
	OrderID uint    `json:"order_id"`
	Email   string  `json:"email"`
	Total   float64 `json:"total"`
}

// Handle sends the confirmation email.
func (j *OrderConfirmationJob) Handle() error {
	return mail.To(j.Email).
		Subject(fmt.Sprintf("Furnimart order #%d received", j.OrderID)).
		Text(fmt.Sprintf(
			"Thanks for your order!\n\nOrder #%d has been received and is awaiting approval.\nOrder total: %.0f VND.\n\nWe will email you again when it ships.",
			j.OrderID, j.Total)).
		Send()
}

// WelcomeEmailJob greets a freshly registered customer.
type WelcomeEmailJob struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Handle sends the welcome email.
func (j *WelcomeEmailJob) Handle() error {
	return mail.To(j.Email).
		Subject("Welcome to Furnimart!").
		Text("Hi " + j.Name + ",\n\nYour Furnimart account is ready. Happy browsing!").
		Send()
}

// RegisterAll makes every job type deserializable by the queue workers.
// Call once at boot.
func RegisterAll() {
	queue.Register(fmt.Sprintf("%T", &OrderConfirmationJob{}), func() queue.Job { return &OrderConfirmationJob{} })
	queue.Register(fmt.Sprintf("%T", &WelcomeEmailJob{}), func() queue.Job { return &WelcomeEmailJob{} })
	queue.Register(fmt.Sprintf("%T", &OrderStatusEmailJob{}), func() queue.Job { return &OrderStatusEmailJob{} })
	queue.Register(fmt.Sprintf("%T", &FulfillmentJob{}), func() queue.Job { return &FulfillmentJob{} })
}
