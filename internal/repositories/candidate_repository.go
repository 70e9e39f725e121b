package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository struct {
	DB *gorm.DB
}

func (r *CandidateRepository) CreateCandidate(candidate *models.Candidate) error {
	return r.DB.Create(candidate).Error
}

func (r *CandidateRepository) GetCandidateByID(candidateID uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.DB.First(&candidate, candidateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCandidateNotFound
	}
	return &candidate, err
}

func (r *CandidateRepository) ListCandidates() ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.DB.Order("created_at DESC").Find(&candidates).Error
	return candidates, err
}

// SetIntegrity records the integrity score earned by an accepted submission.
func (r *CandidateRepository) SetIntegrity(candidateID uint, score int) error {
	return r.update(candidateID, map[string]interface{}{
		"integrity_score": score,
	})
}

// AdvanceRound moves the candidate to the given round number.
func (r *CandidateRepository) AdvanceRound(candidateID uint, roundNumber int) error {
	return r.update(candidateID, map[string]interface{}{
		"current_round": roundNumber,
	})
}

// Terminate marks the candidate terminated with integrity zeroed and the
// violation recorded. Terminating an already-terminated candidate is a no-op
// in effect: the same terminal values are written again.
func (r *CandidateRepository) Terminate(candidateID uint, violationLog string) error {
	return r.update(candidateID, map[string]interface{}{
		"status":          models.StatusTerminated,
		"integrity_score": 0,
		"violation_log":   violationLog,
	})
}

// Complete stores the final report verbatim and closes out the candidate.
func (r *CandidateRepository) Complete(candidateID uint, finalScore int, verdict string, reportJSON string) error {
	return r.update(candidateID, map[string]interface{}{
		"status":        models.StatusCompleted,
		"final_score":   finalScore,
		"final_verdict": verdict,
		"final_report":  reportJSON,
	})
}

func (r *CandidateRepository) update(candidateID uint, values map[string]interface{}) error {
	result := r.DB.Model(&models.Candidate{}).Where("id = ?", candidateID).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}
