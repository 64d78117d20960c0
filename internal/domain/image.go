package domain

import (
	"errors"
	"net/mail"
	"strings"
)

const (
	// MaxImages — верхняя граница количества картинок в одном письме
	MaxImages = 100
	// MinImages — нижняя граница; ноль и отрицательные значения поднимаются до неё
	MinImages = 1
	// DefaultImages используется, если клиент не передал num_images
	DefaultImages = MaxImages
)

var (
	ErrMissingQueryOrEmail = errors.New("Missing query or email")
	ErrInvalidEmail        = errors.New("Invalid email address")
)

// SearchRequest — один запрос на поиск и отправку картинок.
// Живёт ровно столько, сколько обрабатывается HTTP-запрос.
type SearchRequest struct {
	Query     string
	NumImages int
	Email     string
	SendAsZip bool
}

// NewSearchRequest проверяет обязательные поля и приводит количество к [MinImages, MaxImages].
// numImages == nil означает, что клиент не передал значение.
func NewSearchRequest(query, email string, numImages *int, sendAsZip bool) (SearchRequest, error) {
	query = strings.TrimSpace(query)
	email = strings.TrimSpace(email)
	if query == "" || email == "" {
		return SearchRequest{}, ErrMissingQueryOrEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return SearchRequest{}, ErrInvalidEmail
	}

	n := DefaultImages
	if numImages != nil {
		n = ClampImageCount(*numImages)
	}

	return SearchRequest{
		Query:     query,
		NumImages: n,
		Email:     email,
		SendAsZip: sendAsZip,
	}, nil
}

// ClampImageCount приводит запрошенное количество к диапазону [MinImages, MaxImages]
func ClampImageCount(n int) int {
	if n < MinImages {
		return MinImages
	}
	if n > MaxImages {
		return MaxImages
	}
	return n
}

// DownloadedImage — провалидированная и скачанная картинка.
// Subtype берётся из Content-Type ответа на GET (image/<subtype>).
type DownloadedImage struct {
	URL     string
	Content []byte
	Subtype string
}

// ContentType возвращает полный MIME-тип картинки
func (i DownloadedImage) ContentType() string {
	return "image/" + i.Subtype
}

// DeliveryResult — итог упаковки и отправки письма
type DeliveryResult struct {
	Sent      int
	ImageURLs []string
}

// SendResult — ответ клиенту
type SendResult struct {
	Message   string   `json:"message"`
	ImageURLs []string `json:"image_urls"`
}
