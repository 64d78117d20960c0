// internal/adapter/googlesearch/client.go
package googlesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/logger"
	"github.com/GoArmGo/ImageMailer/internal/metrics"
)

const (
	// pageSize — максимум результатов на одну страницу API
	pageSize = 10
	// maxResultPosition — API не отдаёт результаты дальше сотого
	maxResultPosition = 100
)

// Client представляет клиент для Google Custom Search JSON API.
type Client struct {
	httpClient *http.Client
	cfg        config.SearchConfig
	logger     *slog.Logger
}

// NewClient создает новый экземпляр Client.
func NewClient(cfg config.SearchConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// FetchImageURLs реализует ports.ImageURLFetcher.
// Страницы запрашиваются по очереди со start = 1, 11, ..., 91; ошибка страницы
// считается пустой страницей, повторов нет.
func (c *Client) FetchImageURLs(ctx context.Context, query string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("googlesearch: некорректный адрес API %q: %w", c.cfg.BaseURL, err)
	}

	log := logger.FromContext(ctx, c.logger)
	last := min(count, maxResultPosition)
	urls := make([]string, 0, last)

	for start := 1; start <= last; start += pageSize {
		num := min(pageSize, count-len(urls), maxResultPosition-start+1)
		if num <= 0 {
			break
		}

		links, err := c.fetchPage(ctx, *endpoint, query, start, num)
		if err != nil {
			metrics.SearchPagesTotal.WithLabelValues(metrics.ResultError).Inc()
			log.Warn("failed to fetch search page",
				"stage", "search",
				"start", start,
				"num", num,
				"error", err,
			)
			continue
		}
		metrics.SearchPagesTotal.WithLabelValues(metrics.ResultOK).Inc()
		log.Debug("search page fetched", "stage", "search", "start", start, "links", len(links))

		urls = append(urls, links...)
		if len(urls) >= count {
			break
		}
	}

	if len(urls) > count {
		urls = urls[:count]
	}
	log.Debug("image urls fetched", "stage", "search", "query", query, "count", len(urls))
	return urls, nil
}

// fetchPage выполняет один запрос к API и возвращает ссылки со страницы
func (c *Client) fetchPage(ctx context.Context, endpoint url.URL, query string, start, num int) ([]string, error) {
	params := endpoint.Query()
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))
	params.Set("start", strconv.Itoa(start))
	params.Set("imgSize", "medium")
	params.Set("searchType", "image")
	params.Set("key", c.cfg.APIKey)
	params.Set("cx", c.cfg.EngineID)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP-запроса для поиска: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения HTTP-запроса к поисковому API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("поисковый API вернул статус %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResponse SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("ошибка декодирования JSON ответа поиска: %w", err)
	}
	if searchResponse.Error != nil {
		return nil, fmt.Errorf("поисковый API вернул ошибку %d: %s", searchResponse.Error.Code, searchResponse.Error.Message)
	}

	links := make([]string, 0, len(searchResponse.Items))
	for _, item := range searchResponse.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}
	return links, nil
}
