package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Mailer sends one HTML mail.
type Mailer interface {
	Send(ctx context.Context, to []string, msg Message) error
}

type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Send delivers msg over one SMTP session. The whole exchange is bounded by
// ctx: its deadline becomes the connection deadline and cancellation aborts
// any pending read or write.
func (m *SMTPMailer) Send(ctx context.Context, to []string, msg Message) error {
	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(dl); err != nil {
			return fmt.Errorf("smtp deadline: %w", err)
		}
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	c, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.User != "" {
		if err := c.Auth(smtp.PlainAuth("", m.User, m.Password, m.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(m.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMIME(m.From, to, msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data end: %w", err)
	}
	return c.Quit()
}

// headerValue flattens CR and LF so user-supplied text cannot start a new
// header line.
func headerValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

func buildMIME(from string, to []string, msg Message) []byte {
	rcpts := make([]string, 0, len(to))
	for _, addr := range to {
		rcpts = append(rcpts, headerValue(addr))
	}

	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + strings.Join(rcpts, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// EmailSink mails the operator about new orders and enquiries, and the
// customer about status changes.
type EmailSink struct {
	Mailer     Mailer
	AdminEmail string
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Deliver(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventOrderPlaced:
		if s.AdminEmail == "" {
			return nil
		}
		msg, err := RenderOperator(ev)
		if err != nil {
			return err
		}
		return s.Mailer.Send(ctx, []string{s.AdminEmail}, msg)
	case EventOrderStatusChanged:
		if ev.Recipient == "" {
			return fmt.Errorf("order %s has no customer email", ev.OrderID)
		}
		msg, err := RenderCustomer(ev)
		if err != nil {
			return err
		}
		return s.Mailer.Send(ctx, []string{ev.Recipient}, msg)
	case EventEnquiryReceived:
		if s.AdminEmail == "" {
			return nil
		}
		msg, err := RenderEnquiry(ev)
		if err != nil {
			return err
		}
		return s.Mailer.Send(ctx, []string{s.AdminEmail}, msg)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}

// EventProducer is the part of the kafka producer the sink needs.
type EventProducer interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type KafkaSink struct {
	Producer EventProducer
	Topic    string
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Deliver(ctx context.Context, ev Event) error {
	return s.Producer.PublishEvent(ctx, s.Topic, ev.Key(), ev)
}

// LogSink records every event; used when no other sink is configured.
type LogSink struct {
	Log *slog.Logger
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(ctx context.Context, ev Event) error {
	subject := ""
	if ev.Type == EventOrderStatusChanged {
		c, _ := StatusContent(ev.Status)
		subject = c.Subject
	}
	if ev.Type == EventEnquiryReceived {
		s.Log.InfoContext(ctx, "enquiry_notification", "enquiry_id", ev.EnquiryID, "from", ev.Recipient)
		return nil
	}
	s.Log.InfoContext(ctx, "order_notification",
		"type", ev.Type,
		"order_id", ev.OrderID,
		"status", ev.Status,
		"recipient", ev.Recipient,
		"subject", subject,
	)
	return nil
}
