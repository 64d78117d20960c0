package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/ImageMailer/internal/adapter/googlesearch"
	"github.com/GoArmGo/ImageMailer/internal/adapter/imagehost"
	"github.com/GoArmGo/ImageMailer/internal/adapter/mailer"
	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/GoArmGo/ImageMailer/internal/logger"
	"github.com/GoArmGo/ImageMailer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []*mail.Msg
}

func (s *recordingSender) Send(_ context.Context, msg *mail.Msg) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

// pipelineFixture поднимает фейковые поисковый API и хост картинок
type pipelineFixture struct {
	router http.Handler
	sender *recordingSender

	mu          sync.Mutex
	searchNums  []int
	searchCalls int
}

func newPipelineFixture(t *testing.T, imagesValid bool) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{sender: &recordingSender{}}

	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !imagesValid {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>gone</html>"))
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg:" + r.URL.Path))
	}))
	t.Cleanup(images.Close)

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		num, _ := strconv.Atoi(r.URL.Query().Get("num"))
		f.mu.Lock()
		f.searchCalls++
		f.searchNums = append(f.searchNums, num)
		f.mu.Unlock()

		resp := googlesearch.SearchResponse{}
		for i := 0; i < num; i++ {
			resp.Items = append(resp.Items, googlesearch.SearchItem{
				Link: fmt.Sprintf("%s/%d.jpg", images.URL, start+i),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(search.Close)

	log := logger.Discard()
	uc := usecase.NewImageUseCase(
		googlesearch.NewClient(config.SearchConfig{BaseURL: search.URL, Timeout: time.Second}, log),
		imagehost.NewDownloader(config.DownloadConfig{UserAgent: "test"}, log),
		mailer.NewPackager(config.SMTPConfig{Username: "bot@example.com"}, f.sender, log),
		2,
		log,
	)
	f.router = newRouter(log, uc)
	return f
}

func (f *pipelineFixture) searchStats() (int, []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, append([]int(nil), f.searchNums...)
}

func (f *pipelineFixture) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search_and_send_images", strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestPipelineEndToEnd(t *testing.T) {
	f := newPipelineFixture(t, true)

	rec := f.post(t, `{"query":"cats","num_images":3,"email":"user@example.com","send_as_zip":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.SendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	calls, nums := f.searchStats()
	assert.Equal(t, 1, calls)
	assert.Equal(t, []int{6}, nums, "поиск запрашивает вдвое больше кандидатов")
	assert.Len(t, resp.ImageURLs, 3)
	assert.Equal(t, "Sent 3 images for query 'cats' to user@example.com", resp.Message)
	assert.Len(t, f.sender.msgs, 1)
}

func TestPipelineAllCandidatesInvalid(t *testing.T) {
	f := newPipelineFixture(t, false)

	rec := f.post(t, `{"query":"cats","num_images":3,"email":"user@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp domain.SendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Empty(t, resp.ImageURLs)
	assert.True(t, strings.HasPrefix(resp.Message, "Sent 0 images"))
	require.Len(t, f.sender.msgs, 1, "письмо уходит даже без вложений")
}

func TestPipelineMissingFieldsMakesNoCalls(t *testing.T) {
	f := newPipelineFixture(t, true)

	rec := f.post(t, `{"query":"cats"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	calls, _ := f.searchStats()
	assert.Zero(t, calls)
	assert.Empty(t, f.sender.msgs)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newPipelineFixture(t, true)
	f.post(t, `{"query":"cats","num_images":1,"email":"user@example.com"}`)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "imagemailer_emails_total")
	assert.Contains(t, rec.Body.String(), "imagemailer_http_requests_total")
}
