package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// DeliveredEvent carries the delivery confirmation payload.
type DeliveredEvent struct {
	Reference string
	Address   string
	Total     float64
}

// Notifier sends customer-facing notifications. Delivery is best-effort,
// callers must never treat a send failure as their own failure.
type Notifier interface {
	NotifyDelivered(ctx context.Context, recipient string, event DeliveredEvent) error
	NotifyVerification(ctx context.Context, recipient, token string) error
}

// SMTPNotifier sends notifications over plain SMTP.
type SMTPNotifier struct {
	addr string
	auth smtp.Auth
	from string
}

// SMTPConfig is SMTP transport settings
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// NewSMTP creates a Notifier over the given SMTP server.
func NewSMTP(cfg SMTPConfig) *SMTPNotifier {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr: cfg.Host + ":" + cfg.Port,
		auth: auth,
		from: cfg.From,
	}
}

// NotifyDelivered sends the order delivered confirmation.
func (n *SMTPNotifier) NotifyDelivered(_ context.Context, recipient string, event DeliveredEvent) error {
	subject := fmt.Sprintf("Your order %s has been delivered", event.Reference)
	body := fmt.Sprintf("Order %s was delivered to %s.\r\nOrder total: %.2f\r\n",
		event.Reference, event.Address, event.Total)

	return n.send(recipient, subject, body)
}

// NotifyVerification sends the email verification link token.
func (n *SMTPNotifier) NotifyVerification(_ context.Context, recipient, token string) error {
	subject := "Verify your email address"
	body := fmt.Sprintf("Your verification token: %s\r\nThe token expires in 24 hours.\r\n", token)

	return n.send(recipient, subject, body)
}

func (n *SMTPNotifier) send(recipient, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.from, recipient, subject, body)

	return smtp.SendMail(n.addr, n.auth, n.from, []string{recipient}, []byte(msg))
}

// LogNotifier writes notifications to the log instead of sending them.
// Used when no SMTP server is configured.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLog creates a log-only Notifier.
func NewLog(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyDelivered(_ context.Context, recipient string, event DeliveredEvent) error {
	n.logger.Info("delivery confirmation",
		zap.String("recipient", recipient),
		zap.String("reference", event.Reference),
		zap.String("address", event.Address),
		zap.Float64("total", event.Total))
	return nil
}

func (n *LogNotifier) NotifyVerification(_ context.Context, recipient, token string) error {
	n.logger.Info("verification email",
		zap.String("recipient", recipient),
		zap.String("token", token))
	return nil
}
