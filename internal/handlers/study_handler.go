// internal/handlers/study_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_5_flash_srs/internal/middleware"
	"go_5_flash_srs/internal/model"
	"go_5_flash_srs/internal/service"
	"go_5_flash_srs/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type StudyHandler struct {
	service service.StudyService
}

func NewStudyHandler(s service.StudyService) *StudyHandler {
	return &StudyHandler{service: s}
}

// StartSession は学習セッションを開始するためのハンドラ
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "StartSession"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	resp, err := h.service.StartSession(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, model.ErrNoCards) {
			logger.Info("No cards available for session", slog.Any("error", err))
		} else {
			logger.Error("Error starting session in service", slog.Any("error", err))
		}
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Session started", slog.String("session_id", resp.Session.SessionID.String()), slog.Int("card_count", resp.Session.CardCount))
	webutil.RespondWithJSON(w, http.StatusCreated, resp)
}

// RateCard はセッション内のカードに評価を付けるためのハンドラ
func (h *StudyHandler) RateCard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "RateCard"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	cardID, ok := parseUUIDParam(w, r, logger, "card_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("session_id", sessionID.String()), slog.String("card_id", cardID.String()))

	var req model.RateCardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validator.Struct(req); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	state, err := h.service.RateCard(r.Context(), tenantID, sessionID, cardID, *req.Rating)
	if err != nil {
		logger.Warn("Error rating card in service", slog.Any("error", err), slog.Int("rating", *req.Rating))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Card rated", slog.Int("rating", *req.Rating), slog.String("memory_state", string(state.MemoryState)))
	webutil.RespondWithJSON(w, http.StatusOK, state)
}

// CompleteSession はセッションを明示的に完了するためのハンドラ
func (h *StudyHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "CompleteSession"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	sessionID, ok := parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return
	}
	logger = logger.With(slog.String("session_id", sessionID.String()))

	// ボディは任意 (完了日時を指定できる)
	var req model.CompleteSessionRequest
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			webutil.HandleError(w, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
			return
		}
	}

	sess, err := h.service.CompleteSession(r.Context(), tenantID, sessionID, req.CompletedAt)
	if err != nil {
		logger.Warn("Error completing session in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Session completed", slog.Any("average_rating", sess.AverageRating))
	webutil.RespondWithJSON(w, http.StatusOK, sess)
}

// ListSessions はセッション履歴をページ付きで取得するためのハンドラ
func (h *StudyHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ListSessions"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	query := model.SessionHistoryQuery{
		Page:      parseIntQuery(r, "page", 0),
		Limit:     parseIntQuery(r, "limit", 0),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	resp, err := h.service.ListSessions(r.Context(), tenantID, query)
	if err != nil {
		logger.Error("Error listing sessions in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Sessions listed", slog.Int("count", len(resp.Sessions)), slog.Int64("total", resp.Pagination.Total))
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid UUID in URL", slog.String("param", name), slog.String("value", raw))
		webutil.HandleError(w, model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func handleValidationError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
		webutil.HandleError(w, webutil.NewValidationErrorResponse(validationErrors))
		return
	}
	logger.Error("Unexpected error during validation", slog.Any("error", err))
	webutil.HandleError(w, err)
}
