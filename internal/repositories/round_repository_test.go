package repositories

import (
	"testing"

	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/testhelpers"
)

func TestAppendAndListRounds(t *testing.T) {
	repo := &RoundRepository{DB: testhelpers.SetupTestDB(t)}

	// insert out of order to prove the listing sorts by round number
	for _, n := range []int{2, 1, 3} {
		if err := repo.Append(&models.Round{
			CandidateID: 1,
			RoundNumber: n,
			TaskTitle:   "task",
			Score:       n * 10,
		}); err != nil {
			t.Fatalf("append round %d failed: %v", n, err)
		}
	}
	repo.Append(&models.Round{CandidateID: 2, RoundNumber: 1})

	rounds, err := repo.ListByCandidate(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(rounds))
	}
	for i, r := range rounds {
		if r.RoundNumber != i+1 {
			t.Fatalf("rounds not ordered: %+v", rounds)
		}
	}
}

func TestRoundLogKeepsEveryAttempt(t *testing.T) {
	repo := &RoundRepository{DB: testhelpers.SetupTestDB(t)}

	// two attempts at the same round are two rows
	repo.Append(&models.Round{CandidateID: 1, RoundNumber: 1, SubmittedCode: "v1"})
	repo.Append(&models.Round{CandidateID: 1, RoundNumber: 1, SubmittedCode: "v2"})

	rounds, _ := repo.ListByCandidate(1)
	if len(rounds) != 2 {
		t.Fatalf("expected both attempts kept, got %d", len(rounds))
	}
}

func TestListByCandidateEmpty(t *testing.T) {
	repo := &RoundRepository{DB: testhelpers.SetupTestDB(t)}
	rounds, err := repo.ListByCandidate(42)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Fatalf("expected no rounds, got %d", len(rounds))
	}
}
