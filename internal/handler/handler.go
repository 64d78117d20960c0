package handler

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/GoArmGo/ImageMailer/internal/logger"
	"github.com/GoArmGo/ImageMailer/internal/usecase"
)

// maxBodyBytes — ограничение на размер JSON-тела запроса
const maxBodyBytes = 1 << 20

//go:embed static/index.html
var indexPage []byte

// ImageHandler — обработчик HTTP-запросов на поиск и отправку картинок.
type ImageHandler struct {
	imageUseCase usecase.ImageUseCase
	logger       *slog.Logger
}

// NewImageHandler создаёт новый экземпляр ImageHandler.
func NewImageHandler(uc usecase.ImageUseCase, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		imageUseCase: uc,
		logger:       logger,
	}
}

// searchAndSendRequest — тело POST /search_and_send_images
type searchAndSendRequest struct {
	Query     string `json:"query"`
	NumImages *int   `json:"num_images"`
	Email     string `json:"email"`
	SendAsZip bool   `json:"send_as_zip"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// Index — отдаёт стартовую страницу с формой.
func (h *ImageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(indexPage); err != nil {
		h.logger.Error("failed to write index page", "error", err)
	}
}

// Ping — проверка живости сервиса.
func (h *ImageHandler) Ping(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// SearchAndSendImages — ищет картинки, скачивает их и отправляет письмом.
func (h *ImageHandler) SearchAndSendImages(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	var body searchAndSendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		log.Warn("invalid request body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body", log)
		return
	}

	req, err := domain.NewSearchRequest(body.Query, body.Email, body.NumImages, body.SendAsZip)
	if err != nil {
		log.Warn("rejected request", "query", body.Query, "email", body.Email, "error", err)
		respondWithError(w, http.StatusBadRequest, err.Error(), log)
		return
	}

	log.Info("processing request",
		"endpoint", "SearchAndSendImages",
		"query", req.Query,
		"num_images", req.NumImages,
		"send_as_zip", req.SendAsZip,
	)

	// обрыв соединения клиентом не отменяет уже начатую обработку
	ctx := context.WithoutCancel(r.Context())

	res, err := h.imageUseCase.SearchAndSendImages(ctx, req)
	if err != nil {
		log.Error("failed to search and send images", "query", req.Query, "email", req.Email, "error", err)
		respondWithError(w, http.StatusInternalServerError, err.Error(), log)
		return
	}

	log.Info("images sent", "query", req.Query, "sent", len(res.ImageURLs))
	respondWithJSON(w, http.StatusOK, res, log)
}
