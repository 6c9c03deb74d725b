package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wneessen/go-mail"

	"greenpro_billing/internal/domain/entities"
)

var succeeded = entities.PaymentIntentRecord{
	ID:           "pi_1",
	Amount:       140125,
	Currency:     "cad",
	ReceiptEmail: "jane@example.com",
	Metadata:     map[string]string{"service": "Interior Demolition"},
}

func TestBuildDepositMessage(t *testing.T) {
	msg, err := BuildDepositMessage("office@greenprogroup.com", "owner@greenprogroup.com", succeeded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Deposit received",
		"1401.25 CAD",
		"Payment intent: pi_1",
		"jane@example.com",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("message missing %q:\n%s", want, out)
		}
	}
}

func TestBuildDepositMessage_InvalidAddress(t *testing.T) {
	if _, err := BuildDepositMessage("not an address", "owner@greenprogroup.com", succeeded); err == nil {
		t.Fatalf("expected invalid from address error")
	}
}

func TestSMTPNotifier_NotifyDepositReceived(t *testing.T) {
	n, err := NewSMTPNotifier(SMTPConfig{Host: "localhost", Port: 2525, From: "office@greenprogroup.com", To: "owner@greenprogroup.com"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sent int
	n.send = func(context.Context, *mail.Msg) error {
		sent++
		return nil
	}
	if err := n.NotifyDepositReceived(context.Background(), succeeded); err != nil || sent != 1 {
		t.Fatalf("expected one message sent, got %d %v", sent, err)
	}

	n.send = func(context.Context, *mail.Msg) error { return errors.New("connection refused") }
	if err := n.NotifyDepositReceived(context.Background(), succeeded); err == nil {
		t.Fatalf("expected send error")
	}
}

func TestLogNotifier(t *testing.T) {
	if err := NewLogNotifier(nil).NotifyDepositReceived(context.Background(), succeeded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
