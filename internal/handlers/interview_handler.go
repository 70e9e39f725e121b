package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/config"
	"github.com/Akhil21232123/hirematrix/internal/events"
	"github.com/Akhil21232123/hirematrix/internal/llm"
	"github.com/Akhil21232123/hirematrix/internal/metrics"
	"github.com/Akhil21232123/hirematrix/internal/middleware"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/oracle"
	"github.com/Akhil21232123/hirematrix/internal/repositories"
	"github.com/Akhil21232123/hirematrix/internal/session"
	"github.com/Akhil21232123/hirematrix/internal/utils"
	"github.com/Akhil21232123/hirematrix/internal/video"
)

// sessionTokenTTL matches the video room expiry.
const sessionTokenTTL = 2 * time.Hour

type InterviewHandler struct {
	cfg        *config.Config
	oracle     *oracle.Oracle
	manager    *session.Manager
	executor   *session.Executor
	candidates *repositories.CandidateRepository
	rooms      video.RoomProvisioner
	publisher  session.UpdatePublisher
	logger     *zap.Logger
}

func NewInterviewHandler(cfg *config.Config, o *oracle.Oracle, manager *session.Manager, executor *session.Executor, candidates *repositories.CandidateRepository, rooms video.RoomProvisioner, publisher session.UpdatePublisher, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		cfg:        cfg,
		oracle:     o,
		manager:    manager,
		executor:   executor,
		candidates: candidates,
		rooms:      rooms,
		publisher:  publisher,
		logger:     logger,
	}
}

// StartHandler registers a candidate, provisions their video room and opens
// the session. Denied media permission is terminal: no candidate record is
// created and the client must restart registration from scratch.
func (h *InterviewHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartInterviewRequest](r)

	if !req.MediaGranted {
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "access_denied",
			Message: "Camera and microphone access is required for a proctored interview",
		})
		return
	}

	roomURL, err := h.rooms.CreateRoom(r.Context())
	if err != nil {
		h.logger.Error("Failed to provision video room", zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "room_error",
			Message: "Failed to provision video room",
		})
		return
	}

	role := utils.NormalizeRole(req.Role)
	difficulty := utils.DifficultyForSeniority(req.Seniority)

	candidate := &models.Candidate{
		Name:       req.Name,
		Email:      req.Email,
		Role:       role,
		Seniority:  req.Seniority,
		Difficulty: difficulty,
		RoomURL:    roomURL,
	}
	if err := h.candidates.CreateCandidate(candidate); err != nil {
		h.logger.Error("Failed to create candidate", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "database_error",
			Message: "Failed to register candidate",
		})
		return
	}

	h.manager.Create(candidate.ID, candidate.Name, role, req.Seniority, difficulty)
	metrics.SessionsStartedTotal.Inc()

	token, err := utils.GenerateSessionToken(candidate.ID, h.cfg.JWTSecret, sessionTokenTTL)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "token_error",
			Message: "Failed to issue session token",
		})
		return
	}

	if err := h.publisher.PublishCandidateUpdate(r.Context(), events.CandidateEvent{
		CandidateID:    candidate.ID,
		Name:           candidate.Name,
		Status:         models.StatusActive,
		CurrentRound:   1,
		IntegrityScore: models.IntegrityStart,
	}); err != nil {
		h.logger.Warn("Failed to publish registration event", zap.Error(err))
	}

	h.logger.Info("Interview started",
		zap.Uint("candidate_id", candidate.ID),
		zap.String("role", role),
		zap.String("difficulty", difficulty))

	utils.JSON(w, http.StatusCreated, models.StartInterviewResponse{
		Success:      true,
		CandidateID:  candidate.ID,
		RoomURL:      roomURL,
		SessionToken: token,
	})
}

// RoundHandler generates the task for the candidate's current round and
// starts the countdown.
func (h *InterviewHandler) RoundHandler(w http.ResponseWriter, r *http.Request) {
	candidateID, _ := middleware.GetCandidateID(r)
	sess, ok := h.manager.Get(candidateID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "No live session for candidate",
		})
		return
	}
	h.loadRound(w, r, sess, sess.CurrentRound)
}

// NextRoundHandler advances a candidate in FEEDBACK into the next round.
func (h *InterviewHandler) NextRoundHandler(w http.ResponseWriter, r *http.Request) {
	candidateID, _ := middleware.GetCandidateID(r)
	sess, ok := h.manager.Get(candidateID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "No live session for candidate",
		})
		return
	}
	h.loadRound(w, r, sess, sess.CurrentRound+1)
}

func (h *InterviewHandler) loadRound(w http.ResponseWriter, r *http.Request, sess session.Session, roundNumber int) {
	// dry-run the transition first: a request in the wrong state must not
	// spend an oracle call just to be told 409
	if _, _, err := session.Transition(sess, session.RoundLoaded{RoundNumber: roundNumber}); err != nil {
		h.handleApplyError(w, r, sess, nil, err)
		return
	}

	task, err := h.oracle.GenerateTask(r.Context(), sess.Role, sess.Difficulty, roundNumber)
	if err != nil {
		// the interview must not stall on a flaky oracle
		h.logger.Warn("Task generation failed, serving fallback task",
			zap.Uint("candidate_id", sess.CandidateID),
			zap.Error(err))
		fallback := models.FallbackTask()
		task = &fallback
	}

	deadline := time.Now().Add(time.Duration(h.cfg.RoundSeconds) * time.Second)
	next, cmds, err := h.manager.Apply(sess.CandidateID, session.RoundLoaded{
		RoundNumber: roundNumber,
		Task:        *task,
		Deadline:    deadline,
	})
	if h.handleApplyError(w, r, next, cmds, err) {
		return
	}
	if _, err := h.executor.Execute(r.Context(), next, cmds); err != nil {
		h.logger.Error("Failed to execute round-load commands", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "database_error",
			Message: "Failed to persist round progress",
		})
		return
	}

	utils.JSON(w, http.StatusOK, models.RoundResponse{
		RoundNumber: next.CurrentRound,
		Task:        next.Task,
		TimeLeft:    h.cfg.RoundSeconds,
		State:       string(next.State),
	})
}

// SubmitHandler grades the submission and runs the kill switch. The round
// record is persisted before any terminal decision takes effect.
func (h *InterviewHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SubmitRoundRequest](r)
	candidateID, _ := middleware.GetCandidateID(r)

	sess, ok := h.manager.Get(candidateID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "No live session for candidate",
		})
		return
	}
	if sess.State.Terminal() {
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "session_closed",
			Message: "The session has already ended",
		})
		return
	}

	analysis, err := h.oracle.GradeSubmission(r.Context(), sess.Task.Title, req.Code)
	if err != nil {
		// malformed output never defaults to a failing grade
		var provErr *llm.ProviderError
		if errors.As(err, &provErr) && provErr.Code == llm.ErrCodeMalformed {
			h.logger.Error("Oracle returned malformed grading payload",
				zap.Uint("candidate_id", candidateID),
				zap.Error(err))
		} else {
			h.logger.Error("Grading failed",
				zap.Uint("candidate_id", candidateID),
				zap.Error(err))
		}
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "oracle_error",
			Message: "Failed to grade submission",
		})
		return
	}

	next, cmds, err := h.manager.Apply(candidateID, session.SubmissionGraded{
		Code:     req.Code,
		Analysis: *analysis,
	})
	if h.handleApplyError(w, r, next, cmds, err) {
		return
	}
	if _, err := h.executor.Execute(r.Context(), next, cmds); err != nil {
		h.logger.Error("Failed to execute grading commands", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "database_error",
			Message: "Failed to persist grading outcome",
		})
		return
	}

	if analysis.Rejected() {
		metrics.RoundsGradedTotal.WithLabelValues("rejected").Inc()
		utils.JSON(w, http.StatusOK, models.SubmitRoundResponse{
			Success:   true,
			Passed:    false,
			Terminate: true,
			Reason:    next.TerminationReason,
			Feedback:  analysis.Feedback,
		})
		return
	}

	metrics.RoundsGradedTotal.WithLabelValues("passed").Inc()
	utils.JSON(w, http.StatusOK, models.SubmitRoundResponse{
		Success:   true,
		Passed:    true,
		Feedback:  analysis.Feedback,
		Questions: next.Questions,
	})
}

// AnswerHandler advances the interrogation loop. In strict mode each answer
// is rated first and a SPAM rating terminates the session.
func (h *InterviewHandler) AnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.AnswerRequest](r)
	candidateID, _ := middleware.GetCandidateID(r)

	sess, ok := h.manager.Get(candidateID)
	if !ok {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "No live session for candidate",
		})
		return
	}

	var review *models.AnswerReview
	if h.cfg.StrictInterrogation && sess.State == session.StateInterrogation {
		question := ""
		if sess.QuestionIndex < len(sess.Questions) {
			question = sess.Questions[sess.QuestionIndex]
		}
		reviewed, err := h.oracle.ValidateAnswer(r.Context(), question, req.Answer, sess.Transcript)
		if err != nil {
			// degrade to unrated rather than block the interrogation
			h.logger.Warn("Answer validation failed",
				zap.Uint("candidate_id", candidateID),
				zap.Error(err))
		} else {
			review = reviewed
		}
	}

	next, cmds, err := h.manager.Apply(candidateID, session.AnswerSubmitted{
		Answer: req.Answer,
		Review: review,
	})
	if h.handleApplyError(w, r, next, cmds, err) {
		return
	}

	report, err := h.executor.Execute(r.Context(), next, cmds)
	if err != nil {
		h.logger.Error("Failed to execute answer commands", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "report_error",
			Message: "Failed to finalize interview",
		})
		return
	}

	// GenerateReport moves the session to COMPLETED inside the executor
	current, ok := h.manager.Get(candidateID)
	if !ok {
		current = next
	}

	resp := models.AnswerResponse{State: string(current.State)}
	if review != nil {
		resp.BotReply = review.BotReply
	}
	if current.State == session.StateInterrogation && current.QuestionIndex < len(current.Questions) {
		resp.NextQuestion = current.Questions[current.QuestionIndex]
	}
	if report != nil {
		resp.Report = report
	}
	utils.JSON(w, http.StatusOK, resp)
}

// ValidateAnswerHandler rates a single answer without advancing the session.
func (h *InterviewHandler) ValidateAnswerHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.ValidateAnswerRequest](r)

	review, err := h.oracle.ValidateAnswer(r.Context(), req.Question, req.Answer, req.PreviousChat)
	if err != nil {
		h.logger.Error("Answer validation failed", zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "oracle_error",
			Message: "Failed to validate answer",
		})
		return
	}
	utils.JSON(w, http.StatusOK, review)
}

// BreachHandler terminates the session on a client-reported integrity
// violation.
func (h *InterviewHandler) BreachHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.BreachRequest](r)
	candidateID, _ := middleware.GetCandidateID(r)

	next, cmds, err := h.manager.Apply(candidateID, session.BreachDetected{Reason: req.Reason})
	if h.handleApplyError(w, r, next, cmds, err) {
		return
	}
	if _, err := h.executor.Execute(r.Context(), next, cmds); err != nil {
		h.logger.Error("Failed to execute breach commands", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "database_error",
			Message: "Failed to persist termination",
		})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status": models.StatusTerminated,
		"reason": req.Reason,
	})
}

// handleApplyError writes the error response for a failed state transition.
// An expired countdown still carries termination commands that must run.
func (h *InterviewHandler) handleApplyError(w http.ResponseWriter, r *http.Request, sess session.Session, cmds []session.Command, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, session.ErrSessionExpired):
		if _, execErr := h.executor.Execute(r.Context(), sess, cmds); execErr != nil {
			h.logger.Error("Failed to execute expiry commands", zap.Error(execErr))
		}
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "time_expired",
			Message: "The round countdown has expired",
		})
	case errors.Is(err, session.ErrSessionNotFound):
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "session_not_found",
			Message: "No live session for candidate",
		})
	case errors.Is(err, session.ErrSessionClosed):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "session_closed",
			Message: "The session has already ended",
		})
	case errors.Is(err, session.ErrInvalidTransition):
		utils.JSON(w, http.StatusConflict, models.ErrorResponse{
			Code:    "invalid_state",
			Message: err.Error(),
		})
	default:
		h.logger.Error("Session transition failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_error",
			Message: "Failed to advance session",
		})
	}
	return true
}
