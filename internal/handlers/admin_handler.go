package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/events"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/repositories"
	"github.com/Akhil21232123/hirematrix/internal/utils"
)

// AdminHandler serves the recruiter monitor: a read-only candidate listing
// plus a live feed of change notifications.
type AdminHandler struct {
	candidates *repositories.CandidateRepository
	subscriber *events.Subscriber
	upgrader   websocket.Upgrader
	logger     *zap.Logger
}

func NewAdminHandler(candidates *repositories.CandidateRepository, subscriber *events.Subscriber, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		candidates: candidates,
		subscriber: subscriber,
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:     logger,
	}
}

// ListCandidatesHandler returns every candidate with their live status.
func (h *AdminHandler) ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.ListCandidates()
	if err != nil {
		h.logger.Error("Failed to list candidates", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "database_error",
			Message: "Failed to list candidates",
		})
		return
	}

	rows := make([]models.AdminCandidate, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, models.AdminCandidate{
			ID:             c.ID,
			Name:           c.Name,
			Email:          c.Email,
			Role:           c.Role,
			Status:         c.Status,
			CurrentRound:   c.CurrentRound,
			IntegrityScore: c.IntegrityScore,
			FinalScore:     c.FinalScore,
			FinalVerdict:   c.FinalVerdict,
			ViolationLog:   c.ViolationLog,
		})
	}
	utils.JSON(w, http.StatusOK, rows)
}

// LiveFeedHandler streams candidate change notifications over a websocket.
// The monitor re-renders on each event instead of polling.
func (h *AdminHandler) LiveFeedHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates := h.subscriber.Subscribe(r.Context())
	for event := range updates {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("Live feed write failed, dropping connection", zap.Error(err))
			return
		}
	}
}
