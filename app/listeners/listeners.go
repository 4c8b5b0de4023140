// Package listeners connects domain events to their side effects: emails via
// the queue, the admin websocket feed, and Prometheus counters. Registered
// once at boot; every handler is fire-and-forget from the workflow's view.
package listeners

import (
	"encoding/json"

	"github.com/thanhvudev/furnimart/app/events"
	"github.com/thanhvudev/furnimart/app/jobs"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/notifications"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/pkg/cache"
	"github.com/thanhvudev/furnimart/pkg/event"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/metrics"
	"github.com/thanhvudev/furnimart/pkg/notification"
	"github.com/thanhvudev/furnimart/pkg/queue"
	"github.com/thanhvudev/furnimart/pkg/ws"
)

var (
	ordersPlaced = metrics.NewCounter("furnimart", "orders_placed_total",
		"Orders committed by the checkout workflow.", nil)
	statusChanges = metrics.NewCounter("furnimart", "order_status_changes_total",
		"Accepted order status transitions.", []string{"status"})
)

// Register wires every event to its listeners. hub carries order activity to
// connected admin dashboards; pass nil to skip the websocket feed.
func Register(hub *ws.Hub) {
	event.Listen(events.OrderPlaced, func(payload interface{}) {
		p, ok := payload.(events.OrderPlacedPayload)
		if !ok {
			return
		}

		ordersPlaced.WithLabelValues().Inc()
		cache.Del(services.StatsCacheKey) //nolint:errcheck

		if err := queue.Dispatch(&jobs.OrderConfirmationJob{
			OrderID: p.OrderID,
			Email:   p.Email,
			Total:   p.Total,
		}); err != nil {
			logger.Error("order confirmation dispatch failed", "order_id", p.OrderID, "error", err)
		}

		if config.Get("SLACK_WEBHOOK_URL", "") != "" {
			notification.SendAsync("", &notifications.NewOrderOpsNotification{
				OrderID: p.OrderID,
				Email:   p.Email,
				Total:   p.Total,
			})
		}

		broadcast(hub, "order.placed", p)
	})

	event.Listen(events.OrderStatusChanged, func(payload interface{}) {
		m, ok := payload.(map[string]interface{})
		if !ok {
			return
		}

		status, _ := m["status"].(string)
		if status != "" {
			statusChanges.WithLabelValues(status).Inc()
		}

		if orderID, ok := m["order_id"].(uint); ok && status != "" {
			if err := queue.Dispatch(&jobs.OrderStatusEmailJob{OrderID: orderID, Status: status}); err != nil {
				logger.Error("status email dispatch failed", "order_id", orderID, "error", err)
			}
			if status == models.StatusApproved {
				if err := queue.Dispatch(&jobs.FulfillmentJob{OrderID: orderID}); err != nil {
					logger.Error("fulfillment dispatch failed", "order_id", orderID, "error", err)
				}
			}
		}

		broadcast(hub, "order.status_changed", payload)
	})

	event.Listen(events.UserRegistered, func(payload interface{}) {
		p, ok := payload.(events.UserRegisteredPayload)
		if !ok {
			return
		}

		if err := queue.Dispatch(&jobs.WelcomeEmailJob{Name: p.Name, Email: p.Email}); err != nil {
			logger.Error("welcome email dispatch failed", "user_id", p.UserID, "error", err)
		}
	})
}

func broadcast(hub *ws.Hub, kind string, payload interface{}) {
	if hub == nil {
		return
	}

	msg, err := json.Marshal(map[string]interface{}{"event": kind, "data": payload})
	if err != nil {
		return
	}
	hub.Broadcast <- msg
}
