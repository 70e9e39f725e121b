package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Akhil21232123/hirematrix/internal/events"
	"github.com/Akhil21232123/hirematrix/internal/metrics"
	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/oracle"
	"github.com/Akhil21232123/hirematrix/internal/repositories"
)

var ErrNoRounds = errors.New("no round records for candidate")

// Publisher is the slice of the events package the service needs.
type Publisher interface {
	PublishCandidateUpdate(ctx context.Context, event events.CandidateEvent) error
}

// ReportService gathers the full round history, asks the oracle for the
// final scorecard and stores it verbatim on the candidate.
type ReportService struct {
	candidates *repositories.CandidateRepository
	rounds     *repositories.RoundRepository
	oracle     *oracle.Oracle
	publisher  Publisher
	logger     *zap.Logger
}

func NewReportService(candidates *repositories.CandidateRepository, rounds *repositories.RoundRepository, o *oracle.Oracle, publisher Publisher, logger *zap.Logger) *ReportService {
	return &ReportService{
		candidates: candidates,
		rounds:     rounds,
		oracle:     o,
		publisher:  publisher,
		logger:     logger,
	}
}

// Generate produces and persists the final report. The candidate record is
// updated to COMPLETED with final_score taken from the oracle's
// hirematrix_score field, unmodified.
func (s *ReportService) Generate(ctx context.Context, candidateID uint) (*models.FinalReport, error) {
	candidate, err := s.candidates.GetCandidateByID(candidateID)
	if err != nil {
		return nil, err
	}

	rounds, err := s.rounds.ListByCandidate(candidateID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, ErrNoRounds
	}

	report, rawJSON, err := s.oracle.GenerateReport(ctx, candidate, rounds)
	if err != nil {
		return nil, err
	}

	if err := s.candidates.Complete(candidateID, report.HirematrixScore, report.Verdict, rawJSON); err != nil {
		return nil, err
	}
	metrics.ReportsGeneratedTotal.Inc()

	if err := s.publisher.PublishCandidateUpdate(ctx, events.CandidateEvent{
		CandidateID:    candidateID,
		Name:           candidate.Name,
		Status:         models.StatusCompleted,
		CurrentRound:   candidate.CurrentRound,
		IntegrityScore: candidate.IntegrityScore,
		FinalScore:     report.HirematrixScore,
		FinalVerdict:   report.Verdict,
	}); err != nil {
		s.logger.Warn("Failed to publish completion event",
			zap.Uint("candidate_id", candidateID),
			zap.Error(err))
	}

	return report, nil
}
