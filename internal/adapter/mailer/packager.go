package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/core/ports"
	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/GoArmGo/ImageMailer/internal/logger"
	"github.com/GoArmGo/ImageMailer/internal/metrics"
	"github.com/wneessen/go-mail"
)

const (
	modeZip        = "zip"
	modeIndividual = "individual"

	contentTypeZip mail.ContentType = "application/zip"
)

// Packager собирает письмо с картинками и передаёт его почтовому транспорту.
type Packager struct {
	from   string
	sender ports.MessageSender
	logger *slog.Logger
}

// NewPackager создает новый экземпляр Packager.
func NewPackager(cfg config.SMTPConfig, sender ports.MessageSender, logger *slog.Logger) *Packager {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Packager{from: from, sender: sender, logger: logger}
}

// Deliver реализует ports.ImageDelivery.
// Ошибка упаковки отдельной картинки только уменьшает итоговое количество,
// ошибка транспорта возвращается вызывающему.
func (p *Packager) Deliver(
	ctx context.Context,
	to, query string,
	images []domain.DownloadedImage,
	target int,
	asZip bool,
) (domain.DeliveryResult, error) {
	log := logger.FromContext(ctx, p.logger)

	msg, attached, err := p.buildMessage(log, to, query, images, target, asZip)
	if err != nil {
		return domain.DeliveryResult{}, err
	}

	if err := p.sender.Send(ctx, msg); err != nil {
		metrics.EmailsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Error("failed to send email", "to", to, "error", err)
		return domain.DeliveryResult{}, fmt.Errorf("mailer: ошибка отправки письма: %w", err)
	}
	metrics.EmailsTotal.WithLabelValues(metrics.ResultOK).Inc()

	result := domain.DeliveryResult{
		Sent:      len(attached),
		ImageURLs: make([]string, 0, len(attached)),
	}
	for _, img := range attached {
		result.ImageURLs = append(result.ImageURLs, img.URL)
	}

	log.Info("email sent", "to", to, "sent", result.Sent, "target", target, "zip", asZip)
	return result, nil
}

// buildMessage собирает письмо и возвращает картинки, которые удалось приложить
func (p *Packager) buildMessage(
	log *slog.Logger,
	to, query string,
	images []domain.DownloadedImage,
	target int,
	asZip bool,
) (*mail.Msg, []domain.DownloadedImage, error) {
	msg := mail.NewMsg()
	if err := msg.From(p.from); err != nil {
		return nil, nil, fmt.Errorf("mailer: некорректный адрес отправителя %q: %w", p.from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, nil, fmt.Errorf("mailer: некорректный адрес получателя %q: %w", to, err)
	}
	msg.Subject("Images for: " + query)
	msg.SetMessageID()
	msg.SetDate()

	var attached []domain.DownloadedImage
	if asZip {
		attached = p.attachArchive(log, msg, query, images, target)
	} else {
		attached = p.attachIndividually(log, msg, images, target)
	}

	body := "Here are the images for your search: " + query
	if len(attached) < target {
		body += fmt.Sprintf("\n\nNote: Only %d out of %d requested images were available and included.", len(attached), target)
	}
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, attached, nil
}

func (p *Packager) attachArchive(
	log *slog.Logger,
	msg *mail.Msg,
	query string,
	images []domain.DownloadedImage,
	target int,
) []domain.DownloadedImage {
	archive, added, err := buildArchive(log, images, target)
	if err != nil {
		metrics.AttachmentsTotal.WithLabelValues(modeZip, metrics.ResultError).Add(float64(min(len(images), max(target, 0))))
		log.Warn("failed to build zip archive", "stage", "package", "error", err)
		return nil
	}

	if err := msg.AttachReader(archiveName(query), bytes.NewReader(archive), mail.WithFileContentType(contentTypeZip)); err != nil {
		metrics.AttachmentsTotal.WithLabelValues(modeZip, metrics.ResultError).Add(float64(len(added)))
		log.Warn("failed to attach zip archive", "stage", "package", "error", err)
		return nil
	}

	metrics.AttachmentsTotal.WithLabelValues(modeZip, metrics.ResultOK).Add(float64(len(added)))
	return added
}

func (p *Packager) attachIndividually(
	log *slog.Logger,
	msg *mail.Msg,
	images []domain.DownloadedImage,
	target int,
) []domain.DownloadedImage {
	attached := make([]domain.DownloadedImage, 0, min(len(images), max(target, 0)))

	for i, img := range images {
		if len(attached) >= target {
			break
		}

		name := imageFileName(i+1, img)
		err := msg.AttachReader(name, bytes.NewReader(img.Content), mail.WithFileContentType(mail.ContentType(img.ContentType())))
		if err != nil {
			metrics.AttachmentsTotal.WithLabelValues(modeIndividual, metrics.ResultError).Inc()
			log.Warn("failed to attach image", "stage", "package", "url", img.URL, "name", name, "error", err)
			continue
		}
		metrics.AttachmentsTotal.WithLabelValues(modeIndividual, metrics.ResultOK).Inc()
		attached = append(attached, img)
	}
	return attached
}
