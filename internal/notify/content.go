package notify

import "github.com/Skotchmaster/scent_shop/internal/models"

// Content is the customer-facing copy for one order status.
type Content struct {
	Subject string
	Heading string
	Message string
	Color   string
	Icon    string
}

var statusContent = map[models.OrderStatus]Content{
	models.StatusPending: {
		Subject: "We received your order",
		Heading: "Order received",
		Message: "Thank you for your order. We will review it shortly and let you know once it is approved.",
		Color:   "#f0ad4e",
		Icon:    "🕒",
	},
	models.StatusApproved: {
		Subject: "Your order has been approved",
		Heading: "Order approved",
		Message: "Good news! Your order has been approved and will move into production soon.",
		Color:   "#5cb85c",
		Icon:    "✅",
	},
	models.StatusCrafting: {
		Subject: "Your order is being crafted",
		Heading: "Crafting in progress",
		Message: "Our artisans are hand-pouring your fragrances right now.",
		Color:   "#8e44ad",
		Icon:    "🕯️",
	},
	models.StatusPreparing: {
		Subject: "Your order is being prepared",
		Heading: "Preparing your order",
		Message: "Your items are curing and being checked before packing.",
		Color:   "#5bc0de",
		Icon:    "🧪",
	},
	models.StatusPackaging: {
		Subject: "Your order is being packaged",
		Heading: "Packaging",
		Message: "Your order is being carefully wrapped and will ship soon.",
		Color:   "#337ab7",
		Icon:    "📦",
	},
	models.StatusShipped: {
		Subject: "Your order has shipped",
		Heading: "On its way",
		Message: "Your order has left our studio and is on its way to you.",
		Color:   "#0275d8",
		Icon:    "🚚",
	},
	models.StatusDelivered: {
		Subject: "Your order has been delivered",
		Heading: "Delivered",
		Message: "Your order has arrived. We hope you love it!",
		Color:   "#2e7d32",
		Icon:    "🏠",
	},
	models.StatusCompleted: {
		Subject: "Your order is complete",
		Heading: "Order complete",
		Message: "Your order is complete. Thank you for shopping with us.",
		Color:   "#1b5e20",
		Icon:    "🎉",
	},
	models.StatusCancelled: {
		Subject: "Your order has been cancelled",
		Heading: "Order cancelled",
		Message: "Your order has been cancelled. If you did not expect this, please contact us.",
		Color:   "#d9534f",
		Icon:    "✖️",
	},
	models.StatusRejected: {
		Subject: "Your order could not be accepted",
		Heading: "Order rejected",
		Message: "Unfortunately we could not accept your order. Please contact us for details.",
		Color:   "#c9302c",
		Icon:    "⚠️",
	},
}

// StatusContent returns the copy for status; unknown statuses fall back to a
// generic update message.
func StatusContent(status models.OrderStatus) (Content, bool) {
	c, ok := statusContent[status]
	if !ok {
		return Content{
			Subject: "Your order has been updated",
			Heading: "Order update",
			Message: "The status of your order is now " + string(status) + ".",
			Color:   "#777777",
			Icon:    "ℹ️",
		}, false
	}
	return c, true
}
