package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/wneessen/go-mail"
)

type (
	MailConfig struct {
		Host       string
		Port       int
		Username   string
		Password   string
		Recipients []string
		From       string
		Auth       string
		TLS        bool
	}

	MailNotifier struct {
		log logr.Logger
		cfg MailConfig
	}
)

func NewMail(cfg MailConfig, log logr.Logger) *MailNotifier {
	return &MailNotifier{
		log: log,
		cfg: cfg,
	}
}

func (m *MailNotifier) Notify(ctx context.Context, event Event) error {
	msg, err := m.toMessage(event)
	if err != nil {
		return fmt.Errorf("toMessage: %w", err)
	}

	client, err := mail.NewClient(
		m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(tlsPolicyFromBool(m.cfg.TLS)),
		mail.WithSMTPAuth(smtpAuthTypeFromString(m.cfg.Auth)),
	)
	if err != nil {
		return fmt.Errorf("NewClient: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("DialAndSend: %w", err)
	}

	return nil
}

func (m *MailNotifier) toMessage(event Event) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	for _, rec := range m.cfg.Recipients {
		if err := msg.AddTo(rec); err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
	}

	msg.Subject(fmt.Sprintf("%s: %s", event.Title(), event.Script))
	msg.SetBodyString(mail.TypeTextPlain, mailBody(event))

	return msg, nil
}

func mailBody(event Event) string {
	var b strings.Builder
	b.WriteString(event.Summary())
	b.WriteString("\n")
	if event.Output != "" {
		b.WriteString("\nScript output:\n")
		b.WriteString(event.OutputTail())
		b.WriteString("\n")
	}
	return b.String()
}

func smtpAuthTypeFromString(value string) mail.SMTPAuthType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "auto", "autodiscover", "autodiscovery":
		return mail.SMTPAuthAutoDiscover
	case "plain":
		return mail.SMTPAuthPlain
	case "login":
		return mail.SMTPAuthLogin
	case "cram-md5", "crammd5":
		return mail.SMTPAuthCramMD5
	case "xoauth2", "oauth2":
		return mail.SMTPAuthXOAUTH2
	default:
		return mail.SMTPAuthNoAuth
	}
}

func tlsPolicyFromBool(enabled bool) mail.TLSPolicy {
	if enabled {
		return mail.TLSMandatory
	}
	return mail.NoTLS
}
