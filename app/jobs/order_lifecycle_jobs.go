package jobs

import (
	"fmt"
	"time"

	"github.com/thanhvudev/furnimart/app/notifications"
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/config"
	httpclient "github.com/thanhvudev/furnimart/pkg/http"
	"github.com/thanhvudev/furnimart/pkg/notification"
)

// OrderStatusEmailJob notifies the customer that their order changed status.
// The order is reloaded inside the worker so the email always reflects the
// committed state, not the payload that was queued.
type OrderStatusEmailJob struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// Handle loads the order's customer and sends the status notification.
func (j *OrderStatusEmailJob) Handle() error {
	order, err := repositories.NewOrderRepository().Find(j.OrderID)
	if err != nil {
		return err
	}
	if order.Customer == nil {
		return fmt.Errorf("order %d has no customer loaded", j.OrderID)
	}

	errs := notification.Send(order.Customer.Email, &notifications.OrderStatusNotification{
		OrderID:      j.OrderID,
		Status:       j.Status,
		CustomerName: order.Customer.Name,
	})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// FulfillmentJob hands an approved order to the fulfillment partner's API.
// A no-op when FULFILLMENT_WEBHOOK_URL is not configured.
type FulfillmentJob struct {
	OrderID uint `json:"order_id"`
}

// Handle posts the order payload to the fulfillment endpoint, retrying with
// backoff so a blip at the partner does not lose the handoff.
func (j *FulfillmentJob) Handle() error {
	url := config.Get("FULFILLMENT_WEBHOOK_URL", "")
	if url == "" {
		return nil
	}

	order, err := repositories.NewOrderRepository().Find(j.OrderID)
	if err != nil {
		return err
	}

	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]interface{}{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"price":      item.Price,
		})
	}

	payload := map[string]interface{}{
		"order_id":   order.OrderID,
		"total_cost": order.TotalCost,
		"items":      items,
	}
	if order.DeliveryInfo != nil {
		payload["delivery"] = order.DeliveryInfo
	}

	resp, err := httpclient.Post(url).
		Header("X-Api-Key", config.Get("FULFILLMENT_API_KEY", "")).
		Body(payload).
		Timeout(10 * time.Second).
		Retry(3, time.Second).
		Send()
	if err != nil {
		return err
	}
	return resp.Throw()
}
