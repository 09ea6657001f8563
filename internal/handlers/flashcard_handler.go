// internal/handlers/flashcard_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_flash_srs/internal/middleware"
	"go_5_flash_srs/internal/model"
	"go_5_flash_srs/internal/service"
	"go_5_flash_srs/internal/webutil"
)

type FlashcardHandler struct {
	service service.FlashcardService
}

func NewFlashcardHandler(s service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{service: s}
}

// PostFlashcard は新しいカードを作成するためのハンドラ
func (h *FlashcardHandler) PostFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PostFlashcard"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.PostFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validator.Struct(req); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	card, err := h.service.CreateFlashcard(r.Context(), tenantID, &req)
	if err != nil {
		logger.Error("Error creating flashcard in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Flashcard created", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, card)
}

// GetFlashcards はカードの一覧を取得するためのハンドラ
func (h *FlashcardHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetFlashcards"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cards, err := h.service.ListFlashcards(r.Context(), tenantID)
	if err != nil {
		logger.Error("Error listing flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	if cards == nil {
		cards = []*model.Flashcard{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards)
}

// GetFlashcard は特定のカードを取得するためのハンドラ
func (h *FlashcardHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetFlashcard"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, ok := parseUUIDParam(w, r, logger, "card_id")
	if !ok {
		return
	}

	card, err := h.service.GetFlashcard(r.Context(), tenantID, cardID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Flashcard not found", slog.String("card_id", cardID.String()))
		} else {
			logger.Error("Error getting flashcard from service", slog.Any("error", err))
		}
		webutil.HandleError(w, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, card)
}

// PutFlashcard は特定のカードを置き換えるためのハンドラ
func (h *FlashcardHandler) PutFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "PutFlashcard"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, ok := parseUUIDParam(w, r, logger, "card_id")
	if !ok {
		return
	}

	var req model.PutFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return
	}
	if err := webutil.Validator.Struct(req); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	card, err := h.service.UpdateFlashcard(r.Context(), tenantID, cardID, &req)
	if err != nil {
		logger.Warn("Error updating flashcard in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Flashcard updated", slog.String("card_id", card.CardID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, card)
}

// DeleteFlashcard は特定のカードを削除するためのハンドラ
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "DeleteFlashcard"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden))
		return
	}

	cardID, ok := parseUUIDParam(w, r, logger, "card_id")
	if !ok {
		return
	}

	if err := h.service.DeleteFlashcard(r.Context(), tenantID, cardID); err != nil {
		logger.Warn("Error deleting flashcard in service", slog.Any("error", err))
		webutil.HandleError(w, err)
		return
	}

	logger.Info("Flashcard deleted", slog.String("card_id", cardID.String()))
	w.WriteHeader(http.StatusNoContent)
}
