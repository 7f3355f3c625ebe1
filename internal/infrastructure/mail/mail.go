package mail

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Config captures the SMTP settings for outgoing mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// Sender delivers transactional mail over SMTP. A fresh connection is dialed
// per message; the flows send rarely enough that pooling is not worth it.
type Sender struct {
	cfg Config
}

func NewSender(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &Sender{cfg: cfg}, nil
}

// SendOTP mails the registration verification code.
func (s *Sender) SendOTP(ctx context.Context, to, code string) error {
	subject := "Your Greenpact verification code"
	body := fmt.Sprintf(
		"Hello,\n\nYour verification code is: %s\n\nThe code is valid for 5 minutes. If you did not request it, you can ignore this message.\n\nGreenpact Consulting",
		code,
	)
	return s.send(ctx, to, subject, body)
}

// SendInterviewInvitation mails an applicant who moved to Contacted.
func (s *Sender) SendInterviewInvitation(ctx context.Context, to, applicantName, jobTitle string) error {
	subject := fmt.Sprintf("Interview invitation - %s", jobTitle)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for your application for the %s position. We would like to invite you for an interview. We will reach out shortly to schedule a date.\n\nKind regards,\nGreenpact Consulting",
		applicantName, jobTitle,
	)
	return s.send(ctx, to, subject, body)
}

func (s *Sender) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS on 465, STARTTLS elsewhere.
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
