package repositories

import (
	"errors"
	"testing"

	"github.com/Akhil21232123/hirematrix/internal/models"
	"github.com/Akhil21232123/hirematrix/internal/testhelpers"
)

func newCandidate() *models.Candidate {
	return &models.Candidate{
		Name:       "Ada",
		Email:      "ada@example.com",
		Role:       "backend engineer",
		Seniority:  "senior",
		Difficulty: "hard",
		RoomURL:    "https://rooms.example/abc",
	}
}

func TestCreateAndGetCandidate(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}

	candidate := newCandidate()
	if err := repo.CreateCandidate(candidate); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if candidate.ID == 0 {
		t.Fatalf("expected assigned ID")
	}

	got, err := repo.GetCandidateByID(candidate.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != models.StatusActive || got.CurrentRound != 1 || got.IntegrityScore != 100 {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestGetCandidateNotFound(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}
	if _, err := repo.GetCandidateByID(9999); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestSetIntegrityAndAdvanceRound(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}
	candidate := newCandidate()
	repo.CreateCandidate(candidate)

	if err := repo.SetIntegrity(candidate.ID, 75); err != nil {
		t.Fatalf("set integrity failed: %v", err)
	}
	if err := repo.AdvanceRound(candidate.ID, 2); err != nil {
		t.Fatalf("advance round failed: %v", err)
	}

	got, _ := repo.GetCandidateByID(candidate.ID)
	if got.IntegrityScore != 75 || got.CurrentRound != 2 {
		t.Fatalf("updates not persisted: %+v", got)
	}
}

func TestTerminateZeroesIntegrity(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}
	candidate := newCandidate()
	repo.CreateCandidate(candidate)

	if err := repo.Terminate(candidate.ID, "FULLSCREEN_BREACH"); err != nil {
		t.Fatalf("terminate failed: %v", err)
	}

	got, _ := repo.GetCandidateByID(candidate.ID)
	if got.Status != models.StatusTerminated {
		t.Fatalf("expected TERMINATED, got %s", got.Status)
	}
	if got.IntegrityScore != 0 {
		t.Fatalf("integrity should be zeroed, got %d", got.IntegrityScore)
	}
	if got.ViolationLog != "FULLSCREEN_BREACH" {
		t.Fatalf("violation log not written: %q", got.ViolationLog)
	}
	if !got.Terminal() {
		t.Fatalf("terminated candidate must be terminal")
	}
}

func TestCompleteStoresReportVerbatim(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}
	candidate := newCandidate()
	repo.CreateCandidate(candidate)

	raw := `{"hirematrix_score":640,"verdict":"HIRE"}`
	if err := repo.Complete(candidate.ID, 640, "HIRE", raw); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	got, _ := repo.GetCandidateByID(candidate.ID)
	if got.Status != models.StatusCompleted || got.FinalScore != 640 || got.FinalVerdict != "HIRE" {
		t.Fatalf("completion not persisted: %+v", got)
	}
	if got.FinalReport == nil || *got.FinalReport != raw {
		t.Fatalf("final report not stored verbatim: %v", got.FinalReport)
	}
}

func TestUpdateMissingCandidate(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}
	if err := repo.SetIntegrity(12345, 50); !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestListCandidates(t *testing.T) {
	repo := &CandidateRepository{DB: testhelpers.SetupTestDB(t)}
	repo.CreateCandidate(newCandidate())
	second := newCandidate()
	second.Name = "Grace"
	repo.CreateCandidate(second)

	candidates, err := repo.ListCandidates()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
}
