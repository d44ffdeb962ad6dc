package notify

import (
	"context"
	"time"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderPlaced        EventType = "order_placed"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventEnquiryReceived    EventType = "enquiry_received"
)

type ItemSummary struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Event describes something that happened to an order or a contact enquiry.
// Recipient is always the customer's address; sinks decide who actually gets
// told.
type Event struct {
	Type         EventType          `json:"type"`
	OrderID      uuid.UUID          `json:"orderId"`
	Status       models.OrderStatus `json:"status"`
	Recipient    string             `json:"recipient"`
	CustomerName string             `json:"customerName"`
	Total        decimal.Decimal    `json:"total"`
	Items        []ItemSummary      `json:"items,omitempty"`
	TrackingID   string             `json:"trackingId,omitempty"`
	TrackingURL  string             `json:"trackingUrl,omitempty"`
	EnquiryID    uuid.UUID          `json:"enquiryId,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	Message      string             `json:"message,omitempty"`
	OccurredAt   time.Time          `json:"occurredAt"`
}

// Key partitions events by the entity they concern.
func (e Event) Key() string {
	if e.Type == EventEnquiryReceived {
		return e.EnquiryID.String()
	}
	return e.OrderID.String()
}

// ShortID is the human-facing order reference used in mail subjects.
func (e Event) ShortID() string {
	s := e.OrderID.String()
	return s[len(s)-8:]
}

// Publisher accepts events for delivery; it never blocks the caller and never
// reports delivery failures.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Sink delivers one event to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, ev Event) error
}

// NewOrderPlaced builds the operator notification for a freshly created order.
func NewOrderPlaced(o models.Order, names map[uuid.UUID]string, at time.Time) Event {
	items := make([]ItemSummary, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemSummary{
			ProductID: it.ProductID,
			Name:      names[it.ProductID],
			Quantity:  it.Quantity,
			Price:     it.PriceAtPurchase,
		})
	}
	return Event{
		Type:         EventOrderPlaced,
		OrderID:      o.ID,
		Status:       o.Status,
		Recipient:    o.CustomerEmail,
		CustomerName: o.CustomerName,
		Total:        o.TotalAmount,
		Items:        items,
		OccurredAt:   at,
	}
}

func NewStatusChanged(o models.Order, at time.Time) Event {
	ev := Event{
		Type:         EventOrderStatusChanged,
		OrderID:      o.ID,
		Status:       o.Status,
		Recipient:    o.CustomerEmail,
		CustomerName: o.CustomerName,
		Total:        o.TotalAmount,
		OccurredAt:   at,
	}
	if o.TrackingID != nil {
		ev.TrackingID = *o.TrackingID
	}
	if o.TrackingURL != nil {
		ev.TrackingURL = *o.TrackingURL
	}
	return ev
}

// NewEnquiryReceived tells the operator a visitor used the contact form.
func NewEnquiryReceived(q models.Enquiry, at time.Time) Event {
	return Event{
		Type:         EventEnquiryReceived,
		EnquiryID:    q.ID,
		Recipient:    q.Email,
		CustomerName: q.FullName(),
		Phone:        q.Phone,
		Message:      q.Message,
		OccurredAt:   at,
	}
}
