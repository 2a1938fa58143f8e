package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-hub/internal/config"
	"github.com/spec-kit/campus-hub/internal/observability"
)

// Message is a single outbound email with both HTML and plain-text bodies.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Sender dispatches messages synchronously. Implementations must return an
// error only when every channel has failed.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends via a primary SMTP host, retrying once against a fallback
// host before giving up. Both clients carry a bounded dial/send timeout.
type SMTPMailer struct {
	from     string
	primary  *gomail.Client
	fallback *gomail.Client
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewSMTPMailer builds a mailer from configuration. The fallback client is
// optional and only constructed when a fallback host is configured.
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger, metrics *observability.Metrics) (*SMTPMailer, error) {
	primary, err := newClient(cfg.PrimaryHost, cfg.PrimaryPort, cfg.PrimaryUsername, cfg.PrimaryPassword, cfg)
	if err != nil {
		return nil, fmt.Errorf("primary smtp client: %w", err)
	}

	var fallback *gomail.Client
	if cfg.FallbackHost != "" {
		fallback, err = newClient(cfg.FallbackHost, cfg.FallbackPort, cfg.FallbackUsername, cfg.FallbackPassword, cfg)
		if err != nil {
			return nil, fmt.Errorf("fallback smtp client: %w", err)
		}
	}

	return &SMTPMailer{
		from:     cfg.From,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

func newClient(host string, port int, username, password string, cfg config.MailConfig) (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTimeout(cfg.Timeout()),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}
	return gomail.NewClient(host, opts...)
}

// Send dispatches the message, attempting the fallback channel when the
// primary fails. Total failure is surfaced to the caller, never swallowed.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	message, err := m.compose(msg)
	if err != nil {
		return err
	}

	err = m.primary.DialAndSendWithContext(ctx, message)
	if err == nil {
		return nil
	}

	if m.fallback == nil {
		m.metrics.RecordMailFailure()
		return fmt.Errorf("mail dispatch failed: %w", err)
	}

	m.logger.Warn("primary mail channel failed; attempting fallback",
		zap.String("to", msg.To),
		zap.Error(err),
	)

	// compose again: a client may have mutated the message during the failed send
	message, composeErr := m.compose(msg)
	if composeErr != nil {
		return composeErr
	}
	if err := m.fallback.DialAndSendWithContext(ctx, message); err != nil {
		m.metrics.RecordMailFailure()
		return fmt.Errorf("mail dispatch failed on both channels: %w", err)
	}
	return nil
}

func (m *SMTPMailer) compose(msg Message) (*gomail.Msg, error) {
	message := gomail.NewMsg()
	if err := message.From(m.from); err != nil {
		return nil, err
	}
	if err := message.To(msg.To); err != nil {
		return nil, err
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	message.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	return message, nil
}
