package imagehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/GoArmGo/ImageMailer/internal/logger"
	"github.com/GoArmGo/ImageMailer/internal/metrics"
)

var (
	errNotImage  = errors.New("content type is not an image")
	errEmptyBody = errors.New("empty image body")
	errTooLarge  = errors.New("image exceeds size limit")
	errBadStatus = errors.New("unexpected status")
	errNoSubtype = errors.New("image content type without subtype")
)

// Downloader проверяет и скачивает картинки с произвольных хостов.
type Downloader struct {
	httpClient *http.Client
	cfg        config.DownloadConfig
	logger     *slog.Logger
}

// NewDownloader создает новый экземпляр Downloader.
// Таймауты задаются на каждый запрос через контекст.
func NewDownloader(cfg config.DownloadConfig, logger *slog.Logger) *Downloader {
	if cfg.HeadTimeout <= 0 {
		cfg.HeadTimeout = 5 * time.Second
	}
	if cfg.GetTimeout <= 0 {
		cfg.GetTimeout = 10 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 20 << 20
	}

	return &Downloader{
		httpClient: &http.Client{},
		cfg:        cfg,
		logger:     logger,
	}
}

// DownloadImages реализует ports.ImageDownloader.
// Кандидаты обрабатываются по порядку: HEAD-проверка, затем GET. Любая ошибка
// приводит к пропуску кандидата, без повторов.
func (d *Downloader) DownloadImages(ctx context.Context, urls []string, target int) []domain.DownloadedImage {
	log := logger.FromContext(ctx, d.logger)
	images := make([]domain.DownloadedImage, 0, min(len(urls), max(target, 0)))

	for _, u := range urls {
		if len(images) >= target {
			break
		}

		if err := d.validate(ctx, u); err != nil {
			metrics.ImageCandidatesTotal.WithLabelValues("validate", metrics.ResultInvalid).Inc()
			log.Warn("skipped invalid or unavailable image", "stage", "validate", "url", u, "error", err)
			continue
		}

		img, err := d.download(ctx, u)
		if err != nil {
			metrics.ImageCandidatesTotal.WithLabelValues("download", metrics.ResultError).Inc()
			log.Warn("failed to download image", "stage", "download", "url", u, "error", err)
			continue
		}

		metrics.ImageCandidatesTotal.WithLabelValues("download", metrics.ResultOK).Inc()
		images = append(images, img)
	}

	log.Debug("images downloaded", "candidates", len(urls), "downloaded", len(images), "target", target)
	return images
}

// validate делает HEAD-запрос: нужен статус 200 и Content-Type image/*
func (d *Downloader) validate(ctx context.Context, u string) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.HeadTimeout)
	defer cancel()

	resp, err := d.do(ctx, http.MethodHead, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}
	if _, err := imageSubtype(resp.Header.Get("Content-Type")); err != nil {
		return err
	}
	return nil
}

// download делает полный GET и проверяет тип и тело ответа
func (d *Downloader) download(ctx context.Context, u string) (domain.DownloadedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.GetTimeout)
	defer cancel()

	resp, err := d.do(ctx, http.MethodGet, u)
	if err != nil {
		return domain.DownloadedImage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.DownloadedImage{}, fmt.Errorf("%w: %d", errBadStatus, resp.StatusCode)
	}

	subtype, err := imageSubtype(resp.Header.Get("Content-Type"))
	if err != nil {
		return domain.DownloadedImage{}, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.cfg.MaxBytes+1))
	if err != nil {
		return domain.DownloadedImage{}, fmt.Errorf("ошибка чтения тела ответа: %w", err)
	}
	if len(body) == 0 {
		return domain.DownloadedImage{}, errEmptyBody
	}
	if int64(len(body)) > d.cfg.MaxBytes {
		return domain.DownloadedImage{}, errTooLarge
	}

	return domain.DownloadedImage{URL: u, Content: body, Subtype: subtype}, nil
}

func (d *Downloader) do(ctx context.Context, method, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса: %w", err)
	}
	if d.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", d.cfg.UserAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения HTTP-запроса: %w", err)
	}
	return resp, nil
}

// imageSubtype разбирает Content-Type и возвращает подтип картинки ("jpeg", "png", ...)
func imageSubtype(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", errNotImage, contentType)
	}
	kind, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || kind != "image" {
		return "", fmt.Errorf("%w: %q", errNotImage, contentType)
	}
	if subtype == "" {
		return "", errNoSubtype
	}
	return subtype, nil
}
