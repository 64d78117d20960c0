package mailer

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/klauspost/compress/zip"
)

// imageFileName — имя вложения или записи архива: image_<позиция>.<подтип>
func imageFileName(position int, img domain.DownloadedImage) string {
	return fmt.Sprintf("image_%d.%s", position, img.Subtype)
}

// archiveName строит имя zip-вложения из поискового запроса
func archiveName(query string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(query))
	if safe == "" {
		safe = "search"
	}
	return safe + "_images.zip"
}

// buildArchive упаковывает до target картинок в zip в памяти.
// Возвращает архив и картинки, которые в него попали.
func buildArchive(log *slog.Logger, images []domain.DownloadedImage, target int) ([]byte, []domain.DownloadedImage, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	added := make([]domain.DownloadedImage, 0, min(len(images), max(target, 0)))

	for i, img := range images {
		if len(added) >= target {
			break
		}

		name := imageFileName(i+1, img)
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: time.Now(),
		})
		if err != nil {
			log.Warn("failed to add image to zip", "stage", "package", "url", img.URL, "name", name, "error", err)
			continue
		}
		if _, err := w.Write(img.Content); err != nil {
			log.Warn("failed to write image to zip", "stage", "package", "url", img.URL, "name", name, "error", err)
			continue
		}
		added = append(added, img)
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("ошибка закрытия zip-архива: %w", err)
	}
	return buf.Bytes(), added, nil
}
