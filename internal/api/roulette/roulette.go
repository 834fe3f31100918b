package roulette

import (
	"errors"
	"net/http"
	"strconv"

	dto "roulette_backend/internal/api/dto/roulette"
	"roulette_backend/internal/converter"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/service"
	"roulette_backend/pkg/req"
	"roulette_backend/pkg/resp"

	"github.com/rs/zerolog/log"
)

type HandlerDeps struct {
	Serv service.RouletteService
}

type Handler struct {
	serv service.RouletteService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// AddSpin добавляет результат стола и возвращает сверку и новое предсказание
func (h *Handler) AddSpin(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.AddSpinRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := converter.ToOutcome(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.serv.AddResult(r.Context(), userID, outcome)
	if err != nil {
		writeServiceError(w, userID, "add spin", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToAddSpinResponse(result))
}

// AddHotNumbers горячие номера от казино
func (h *Handler) AddHotNumbers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.HotNumbersRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	hot, err := converter.ToHotNumbers(payload)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.serv.AddHotNumbers(r.Context(), userID, hot)
	if err != nil {
		writeServiceError(w, userID, "add hot numbers", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPredictionResponse(view))
}

func (h *Handler) Predictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.serv.Predictions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, userID, "predictions", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPredictionResponse(view))
}

// History последние результаты, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	history, err := h.serv.History(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, userID, "history", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(history))
}

// Stats точность предсказаний по процессу
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Accuracy()))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.serv.Reset(r.Context(), userID); err != nil {
		writeServiceError(w, userID, "reset", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, userID int, op string, err error) {
	switch {
	case errors.Is(err, service.ErrOutcomeNotOnTable),
		errors.Is(err, service.ErrInvalidHotNumbers),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, predictor.ErrInvalidOutcome):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Int("user_id", userID).Str("op", op).Msg("roulette request failed")
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
