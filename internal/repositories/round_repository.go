package repositories

import (
	"gorm.io/gorm"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

// RoundRepository owns the append-only round log. There is no update or
// delete path: every submission attempt is its own row.
type RoundRepository struct {
	DB *gorm.DB
}

func (r *RoundRepository) Append(round *models.Round) error {
	return r.DB.Create(round).Error
}

func (r *RoundRepository) ListByCandidate(candidateID uint) ([]models.Round, error) {
	var rounds []models.Round
	err := r.DB.Where("candidate_id = ?", candidateID).
		Order("round_number ASC").
		Find(&rounds).Error
	return rounds, err
}
