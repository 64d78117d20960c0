package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/wneessen/go-mail"
)

// SMTPSender отправляет письма через SMTP-релей: STARTTLS обязателен, авторизация PLAIN.
// Клиент создаётся на каждое письмо, поэтому пустые настройки проявляются только при отправке.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender создает новый экземпляр SMTPSender.
func NewSMTPSender(cfg config.SMTPConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send реализует ports.MessageSender.
func (s *SMTPSender) Send(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("ошибка создания SMTP-клиента: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("ошибка отправки через %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}

	s.logger.Debug("message handed to SMTP relay", "host", s.cfg.Host, "port", s.cfg.Port)
	return nil
}
