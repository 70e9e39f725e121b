package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/events"
	"github.com/Akhil21232123/hirematrix/internal/metrics"
	"github.com/Akhil21232123/hirematrix/internal/models"
)

// CandidateStore is the slice of the candidate repository the executor needs.
type CandidateStore interface {
	SetIntegrity(candidateID uint, score int) error
	AdvanceRound(candidateID uint, roundNumber int) error
	Terminate(candidateID uint, violationLog string) error
}

// RoundStore appends to the round log.
type RoundStore interface {
	Append(round *models.Round) error
}

// ReportGenerator produces and persists the final report for a candidate.
type ReportGenerator interface {
	Generate(ctx context.Context, candidateID uint) (*models.FinalReport, error)
}

// UpdatePublisher pushes change notifications for the admin monitor.
type UpdatePublisher interface {
	PublishCandidateUpdate(ctx context.Context, event events.CandidateEvent) error
}

// Executor runs the side-effect commands a transition returned. Persistence
// failures are returned to the caller, not fired and forgotten; publish
// failures are logged but do not fail the interview flow.
type Executor struct {
	manager    *Manager
	candidates CandidateStore
	rounds     RoundStore
	reports    ReportGenerator
	publisher  UpdatePublisher
	logger     *zap.Logger
}

func NewExecutor(manager *Manager, candidates CandidateStore, rounds RoundStore, reports ReportGenerator, publisher UpdatePublisher, logger *zap.Logger) *Executor {
	return &Executor{
		manager:    manager,
		candidates: candidates,
		rounds:     rounds,
		reports:    reports,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute applies the commands for a session in order. When a GenerateReport
// command succeeds, the stored report is returned and the session is moved
// to COMPLETED.
func (ex *Executor) Execute(ctx context.Context, sess Session, cmds []Command) (*models.FinalReport, error) {
	var report *models.FinalReport

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case AppendRound:
			round := c.Round
			if err := ex.rounds.Append(&round); err != nil {
				return nil, fmt.Errorf("append round: %w", err)
			}

		case SetIntegrity:
			if err := ex.candidates.SetIntegrity(sess.CandidateID, c.Score); err != nil {
				return nil, fmt.Errorf("set integrity: %w", err)
			}

		case AdvanceRound:
			if err := ex.candidates.AdvanceRound(sess.CandidateID, c.RoundNumber); err != nil {
				return nil, fmt.Errorf("advance round: %w", err)
			}

		case Terminate:
			if err := ex.candidates.Terminate(sess.CandidateID, c.ViolationLog); err != nil {
				return nil, fmt.Errorf("terminate candidate: %w", err)
			}
			metrics.TerminationsTotal.WithLabelValues(terminationLabel(c.Reason)).Inc()
			ex.logger.Warn("Candidate terminated",
				zap.Uint("candidate_id", sess.CandidateID),
				zap.String("reason", c.Reason))

		case GenerateReport:
			generated, err := ex.reports.Generate(ctx, sess.CandidateID)
			if err != nil {
				return nil, fmt.Errorf("generate report: %w", err)
			}
			report = generated
			if _, _, err := ex.manager.Apply(sess.CandidateID, ReportStored{Report: *generated}); err != nil {
				return nil, fmt.Errorf("finalize session: %w", err)
			}

		case PublishUpdate:
			ex.publish(ctx, sess, c.Reason)
		}
	}

	return report, nil
}

func (ex *Executor) publish(ctx context.Context, sess Session, reason string) {
	current, ok := ex.manager.Get(sess.CandidateID)
	if !ok {
		current = sess
	}

	event := events.CandidateEvent{
		CandidateID:    sess.CandidateID,
		Name:           sess.Name,
		Status:         statusForState(current.State),
		CurrentRound:   current.CurrentRound,
		IntegrityScore: current.Integrity,
		FinalScore:     current.FinalScore,
		FinalVerdict:   current.FinalVerdict,
		Reason:         reason,
	}
	if err := ex.publisher.PublishCandidateUpdate(ctx, event); err != nil {
		ex.logger.Warn("Failed to publish candidate update",
			zap.Uint("candidate_id", sess.CandidateID),
			zap.Error(err))
	}
}

func statusForState(s State) string {
	switch s {
	case StateTerminated:
		return models.StatusTerminated
	case StateCompleted:
		return models.StatusCompleted
	default:
		return models.StatusActive
	}
}

// terminationLabel collapses free-form kill-switch reasons into a stable
// metric label set.
func terminationLabel(reason string) string {
	switch reason {
	case models.BreachFullscreen, models.BreachTabSwitch, models.BreachTimeExpired, models.BreachSpamAnswer:
		return reason
	default:
		return "CODE_REJECTED"
	}
}
