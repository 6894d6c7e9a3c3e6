package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/logging"
	"github.com/chef-fest/backend/internal/types"
)

const (
	contactSubjectPrefix = "Chef Fest Contact: "
	smtpDialTimeout      = 10 * time.Second
)

var ErrEmailUnavailable = errors.New("email delivery unavailable")

// Message is one outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

// Mailer delivers a message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EmailService formats contact form submissions and hands them to a Mailer
// behind a circuit breaker, so a dead SMTP relay fails fast.
type EmailService struct {
	mailer  Mailer
	to      string
	breaker *gobreaker.CircuitBreaker[struct{}]
	caser   cases.Caser
}

// NewEmailService delivers over SMTP when configured and otherwise only logs
// the messages.
func NewEmailService(cfg *config.Config) *EmailService {
	var mailer Mailer = logMailer{}
	if cfg.SMTPEnabled() {
		mailer = &SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		}
	}
	to := cfg.ContactEmail
	if to == "" {
		to = cfg.EmailFrom
	}
	return NewEmailServiceWithMailer(mailer, to)
}

func NewEmailServiceWithMailer(mailer Mailer, to string) *EmailService {
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
	return &EmailService{
		mailer:  mailer,
		to:      to,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
		caser:   cases.Title(language.English),
	}
}

// SendContact validates a contact form submission and emails it to the
// site's contact address.
func (s *EmailService) SendContact(ctx context.Context, req *types.ContactRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	msg := Message{
		To:      s.to,
		Subject: contactSubjectPrefix + s.caser.String(singleLine(req.Name)),
		HTML:    contactBody(req),
		ReplyTo: singleLine(req.Email),
	}

	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.mailer.Send(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailUnavailable, err)
	}
	return nil
}

func contactBody(req *types.ContactRequest) string {
	message := strings.ReplaceAll(html.EscapeString(req.Message), "\r\n", "\n")
	message = strings.ReplaceAll(message, "\n", "<br>")

	var b strings.Builder
	b.WriteString("<h2>New contact form submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(req.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(req.Email))
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>", message)
	return b.String()
}

func singleLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

// SMTPMailer sends mail through an SMTP relay, upgrading to TLS when the
// server offers STARTTLS.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(m.Host, m.Port)
	dialer := net.Dialer{Timeout: smtpDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(nil); err != nil {
			return fmt.Errorf("failed to start tls: %w", err)
		}
	}
	if m.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", m.Username, m.Password, m.Host)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}
	if err := client.Mail(m.From); err != nil {
		return err
	}
	if err := client.Rcpt(msg.To); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(m.compose(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (m *SMTPMailer) compose(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "From: Chef Fest <%s>\r\n", m.From)
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// logMailer is used when SMTP is not configured.
type logMailer struct{}

func (logMailer) Send(ctx context.Context, msg Message) error {
	logging.Ctx(ctx).Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("SMTP not configured, email not delivered")
	return nil
}
