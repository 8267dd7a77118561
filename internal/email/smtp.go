package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

var _ Sender = (*SMTPSender)(nil)

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15 * time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error {
	subject, content, err := renderLeadAlert(alert)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendVisitConfirmation(ctx context.Context, toEmail string, visit Visit) error {
	content, err := renderEmailTemplate("visit_confirmation.html", visitEmailData{
		baseEmailData: baseEmailData{
			Title:    "Visit requested",
			Heading:  "Appointment Requested!",
			CTALabel: "View property",
			CTAURL:   visit.ListingURL,
		},
		Visit: visit,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectVisitConfirmation, content)
}

func (s *SMTPSender) SendVisitReminder(ctx context.Context, toEmail string, visit Visit) error {
	content, err := renderEmailTemplate("visit_reminder.html", visitEmailData{
		baseEmailData: baseEmailData{
			Title:    "Visit reminder",
			Heading:  "Your visit is tomorrow",
			CTALabel: "View property",
			CTAURL:   visit.ListingURL,
		},
		Visit: visit,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectVisitReminderFmt, visit.ListingTitle), content)
}

func (s *SMTPSender) SendAlertWelcome(ctx context.Context, toEmail, consumerName string) error {
	content, err := renderEmailTemplate("alert_welcome.html", alertWelcomeEmailData{
		baseEmailData: baseEmailData{
			Title:   "You're All Set!",
			Heading: "You're All Set!",
		},
		ConsumerName: consumerName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectAlertWelcome, content)
}

func renderLeadAlert(alert LeadAlert) (subject, content string, err error) {
	label := leadKindLabel(alert.Kind)
	content, err = renderEmailTemplate("lead_alert.html", leadAlertEmailData{
		baseEmailData: baseEmailData{
			Title:      "New lead",
			Heading:    fmt.Sprintf("New %s", label),
			Subheading: alert.ListingTitle,
			CTALabel:   "Open listing",
			CTAURL:     alert.ListingURL,
		},
		LeadAlert: alert,
		KindLabel: label,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf(subjectLeadAlertFmt, label, alert.Name), content, nil
}
