package models

import (
	"errors"
	"testing"
)

func validStart() *StartInterviewRequest {
	return &StartInterviewRequest{
		Name:         "Ada",
		Email:        "ada@example.com",
		Role:         "backend engineer",
		Seniority:    "senior",
		MediaGranted: true,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var resp *ErrorResponse
	if !errors.As(err, &resp) {
		t.Fatalf("expected ErrorResponse, got %v", err)
	}
	if resp.Code != code {
		t.Fatalf("expected code %q, got %q", code, resp.Code)
	}
}

func TestStartInterviewRequestValid(t *testing.T) {
	if err := validStart().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStartInterviewRequestMissingName(t *testing.T) {
	req := validStart()
	req.Name = "   "
	assertCode(t, req.Validate(), "missing_name")
}

func TestStartInterviewRequestBadEmail(t *testing.T) {
	for _, email := range []string{"", "nodomain@", "@nolocal", "plainaddress"} {
		req := validStart()
		req.Email = email
		assertCode(t, req.Validate(), "invalid_email")
	}
}

func TestStartInterviewRequestSeniorityDefaultsToIntermediate(t *testing.T) {
	req := validStart()
	req.Seniority = ""
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Seniority != "intermediate" {
		t.Fatalf("expected default seniority, got %q", req.Seniority)
	}
}

func TestStartInterviewRequestUnknownSeniority(t *testing.T) {
	req := validStart()
	req.Seniority = "wizard"
	assertCode(t, req.Validate(), "invalid_seniority")
}

func TestSubmitRoundRequestEmptyCode(t *testing.T) {
	req := &SubmitRoundRequest{Code: "  \n "}
	assertCode(t, req.Validate(), "missing_code")
}

func TestBreachRequestOnlyClientReportableReasons(t *testing.T) {
	for _, reason := range []string{BreachFullscreen, BreachTabSwitch} {
		req := &BreachRequest{Reason: reason}
		if err := req.Validate(); err != nil {
			t.Fatalf("%s should be valid: %v", reason, err)
		}
	}

	// TIME_EXPIRED is server-determined; clients may not report it
	for _, reason := range []string{BreachTimeExpired, "fullscreen_breach", "SOMETHING_ELSE", ""} {
		req := &BreachRequest{Reason: reason}
		assertCode(t, req.Validate(), "invalid_breach_reason")
	}
}

func TestRunCodeRequestLanguageDefaultsToJavascript(t *testing.T) {
	req := &RunCodeRequest{Code: "console.log(1)"}
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Language != "javascript" {
		t.Fatalf("expected javascript default, got %q", req.Language)
	}
}

func TestRunCodeRequestUnsupportedLanguage(t *testing.T) {
	req := &RunCodeRequest{Code: "x", Language: "cobol"}
	assertCode(t, req.Validate(), "unsupported_language")
}

func TestAnalysisRejected(t *testing.T) {
	cases := []struct {
		passed   bool
		score    int
		rejected bool
	}{
		{true, 80, false},
		{true, 30, false},
		{true, 29, true},
		{false, 95, true},
		{false, 0, true},
	}
	for _, c := range cases {
		a := Analysis{Passed: c.passed, Score: c.score}
		if a.Rejected() != c.rejected {
			t.Fatalf("passed=%v score=%d: expected rejected=%v", c.passed, c.score, c.rejected)
		}
	}
}
