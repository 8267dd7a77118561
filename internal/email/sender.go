// Package email renders and delivers transactional email.
package email

import (
	"context"

	"homely_backend/platform/config"
)

// LeadAlert is the agent inbox notification for a new lead.
type LeadAlert struct {
	Kind         string
	Name         string
	Email        string
	Phone        string
	Message      string
	ListingTitle string
	ListingURL   string
	VisitDate    string
	VisitTime    string
}

// Visit describes a requested property visit for consumer-facing mail.
type Visit struct {
	ConsumerName string
	ListingTitle string
	ListingURL   string
	Date         string
	Time         string
}

// Sender delivers the messages the notification module sends.
type Sender interface {
	SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error
	SendVisitConfirmation(ctx context.Context, toEmail string, visit Visit) error
	SendVisitReminder(ctx context.Context, toEmail string, visit Visit) error
	SendAlertWelcome(ctx context.Context, toEmail, consumerName string) error
}

// NoopSender drops every message. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendLeadAlert(context.Context, string, LeadAlert) error     { return nil }
func (NoopSender) SendVisitConfirmation(context.Context, string, Visit) error { return nil }
func (NoopSender) SendVisitReminder(context.Context, string, Visit) error     { return nil }
func (NoopSender) SendAlertWelcome(context.Context, string, string) error     { return nil }

// NewSender returns the SMTP sender, or a NoopSender when SMTP is not configured.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.IsEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
