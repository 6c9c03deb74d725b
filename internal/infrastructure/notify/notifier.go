// Package notify tells the business about received deposits.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/usecase/interfaces"
)

// LogNotifier only logs; it is used when SMTP is not configured.
type LogNotifier struct {
	logger *zap.Logger
}

var _ interfaces.IFulfillmentNotifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyDepositReceived(_ context.Context, rec entities.PaymentIntentRecord) error {
	n.logger.Info("[notify] deposit received",
		zap.String("payment_intent_id", rec.ID),
		zap.String("amount", pricing.FormatAmount(pricing.FromMinorUnits(rec.Amount))),
		zap.String("currency", rec.Currency),
		zap.String("service", rec.Metadata["service"]))
	return nil
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// SMTPNotifier e-mails the office for every succeeded deposit.
type SMTPNotifier struct {
	cfg    SMTPConfig
	send   func(ctx context.Context, msg *mail.Msg) error
	logger *zap.Logger
}

var _ interfaces.IFulfillmentNotifier = (*SMTPNotifier)(nil)

func NewSMTPNotifier(cfg SMTPConfig, logger *zap.Logger) (*SMTPNotifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPNotifier{
		cfg:    cfg,
		send:   func(ctx context.Context, msg *mail.Msg) error { return client.DialAndSendWithContext(ctx, msg) },
		logger: logger,
	}, nil
}

func (n *SMTPNotifier) NotifyDepositReceived(ctx context.Context, rec entities.PaymentIntentRecord) error {
	msg, err := BuildDepositMessage(n.cfg.From, n.cfg.To, rec)
	if err != nil {
		return err
	}
	if err := n.send(ctx, msg); err != nil {
		n.logger.Warn("[notify] smtp send failed", zap.String("payment_intent_id", rec.ID), zap.Error(err))
		return fmt.Errorf("send deposit notification: %w", err)
	}
	n.logger.Info("[notify] deposit notification sent", zap.String("payment_intent_id", rec.ID))
	return nil
}

// BuildDepositMessage renders the office notification for a succeeded payment intent.
func BuildDepositMessage(from, to string, rec entities.PaymentIntentRecord) (*mail.Msg, error) {
	amount := pricing.FormatAmount(pricing.FromMinorUnits(rec.Amount))
	service := rec.Metadata["service"]
	if service == "" {
		service = "Deposit"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	if rec.ReceiptEmail != "" {
		if err := msg.ReplyTo(rec.ReceiptEmail); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	msg.Subject(fmt.Sprintf("Deposit received - %s - %s", service, entities.CompanyName))

	var b strings.Builder
	fmt.Fprintf(&b, "A deposit of %s %s was received.\n\n", amount, strings.ToUpper(rec.Currency))
	fmt.Fprintf(&b, "Payment intent: %s\n", rec.ID)
	fmt.Fprintf(&b, "Service: %s\n", service)
	if rec.ReceiptEmail != "" {
		fmt.Fprintf(&b, "Customer: %s\n", rec.ReceiptEmail)
	}
	if rec.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", rec.Description)
	}
	msg.SetBodyString(mail.TypeTextPlain, b.String())
	return msg, nil
}
