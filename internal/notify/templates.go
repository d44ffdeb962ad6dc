package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Skotchmaster/scent_shop/internal/models"
)

var customerTmpl = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;background:#faf7f2;padding:24px">
<div style="max-width:560px;margin:0 auto;background:#fff;border-radius:8px;overflow:hidden">
  <div style="background:{{.Content.Color}};color:#fff;padding:20px;text-align:center">
    <div style="font-size:32px">{{.Content.Icon}}</div>
    <h1 style="margin:8px 0 0">{{.Content.Heading}}</h1>
  </div>
  <div style="padding:20px">
    <p>Hi {{.Event.CustomerName}},</p>
    <p>{{.Content.Message}}</p>
    <p>Order <strong>#{{.Event.ShortID}}</strong> &middot; status <strong>{{.Event.Status}}</strong></p>
    {{- if .ShowTracking}}
    <p>Tracking number: <strong>{{.Event.TrackingID}}</strong></p>
    {{- if .Event.TrackingURL}}
    <p><a href="{{.Event.TrackingURL}}">Track your package</a></p>
    {{- end}}
    {{- end}}
    <p>Total: {{.Event.Total.StringFixed 2}}</p>
  </div>
</div>
</body></html>
`))

var operatorTmpl = template.Must(template.New("operator").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif">
<h2>New order #{{.ShortID}}</h2>
<p>Customer: {{.CustomerName}} &lt;{{.Recipient}}&gt;</p>
<table cellpadding="6" style="border-collapse:collapse">
  <tr><th align="left">Product</th><th>Qty</th><th align="right">Price</th></tr>
  {{- range .Items}}
  <tr><td>{{.Name}}</td><td align="center">{{.Quantity}}</td><td align="right">{{.Price.StringFixed 2}}</td></tr>
  {{- end}}
</table>
<p><strong>Total: {{.Total.StringFixed 2}}</strong></p>
</body></html>
`))

var enquiryTmpl = template.Must(template.New("enquiry").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif">
<h2>New enquiry</h2>
<p>From: {{.CustomerName}} &lt;{{.Recipient}}&gt;</p>
{{- if .Phone}}
<p>Phone: {{.Phone}}</p>
{{- end}}
<blockquote style="border-left:3px solid #ccc;margin:0;padding-left:12px">{{.Message}}</blockquote>
</body></html>
`))

type Message struct {
	Subject string
	HTML    string
}

// RenderCustomer builds the status mail sent to the buyer. Tracking details
// appear only for shipped orders that carry a tracking id.
func RenderCustomer(ev Event) (Message, error) {
	content, _ := StatusContent(ev.Status)

	var buf bytes.Buffer
	err := customerTmpl.Execute(&buf, struct {
		Event        Event
		Content      Content
		ShowTracking bool
	}{
		Event:        ev,
		Content:      content,
		ShowTracking: ev.Status == models.StatusShipped && ev.TrackingID != "",
	})
	if err != nil {
		return Message{}, fmt.Errorf("render customer mail: %w", err)
	}
	return Message{Subject: fmt.Sprintf("%s (#%s)", content.Subject, ev.ShortID()), HTML: buf.String()}, nil
}

func RenderOperator(ev Event) (Message, error) {
	var buf bytes.Buffer
	if err := operatorTmpl.Execute(&buf, ev); err != nil {
		return Message{}, fmt.Errorf("render operator mail: %w", err)
	}
	return Message{Subject: fmt.Sprintf("New order #%s from %s", ev.ShortID(), ev.CustomerName), HTML: buf.String()}, nil
}

func RenderEnquiry(ev Event) (Message, error) {
	var buf bytes.Buffer
	if err := enquiryTmpl.Execute(&buf, ev); err != nil {
		return Message{}, fmt.Errorf("render enquiry mail: %w", err)
	}
	return Message{Subject: "New enquiry from " + ev.CustomerName, HTML: buf.String()}, nil
}
