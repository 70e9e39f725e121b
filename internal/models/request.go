package models

import (
	"strings"
)

// crude but deliberate: registration only needs a syntactically plausible email
func plausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

type StartInterviewRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Seniority    string `json:"seniority"`
	MediaGranted bool   `json:"mediaGranted"`
}

// implements the Validator interface
func (r *StartInterviewRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ErrorResponse{
			Code:    "missing_name",
			Message: "Name field is required",
		}
	}

	if !plausibleEmail(r.Email) {
		return &ErrorResponse{
			Code:    "invalid_email",
			Message: "A plausible email address is required",
		}
	}

	if r.Role == "" {
		return &ErrorResponse{
			Code:    "missing_role",
			Message: "Role field is required",
		}
	}

	if r.Seniority == "" {
		r.Seniority = "intermediate"
	}

	if !ValidSeniorities[strings.ToLower(r.Seniority)] {
		return &ErrorResponse{
			Code:    "invalid_seniority",
			Message: "Seniority must be one of: junior, intermediate, senior",
		}
	}

	return nil
}

type SubmitRoundRequest struct {
	Code string `json:"code"`
}

func (r *SubmitRoundRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	return nil
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

func (r *AnswerRequest) Validate() error {
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer field is required"}
	}
	return nil
}

type ValidateAnswerRequest struct {
	Question     string        `json:"question"`
	Answer       string        `json:"answer"`
	PreviousChat []ChatMessage `json:"previousChat"`
}

func (r *ValidateAnswerRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return &ErrorResponse{Code: "missing_question", Message: "Question field is required"}
	}
	if strings.TrimSpace(r.Answer) == "" {
		return &ErrorResponse{Code: "missing_answer", Message: "Answer field is required"}
	}
	return nil
}

type BreachRequest struct {
	Reason string `json:"reason"`
}

func (r *BreachRequest) Validate() error {
	if !ValidBreachReasons[r.Reason] {
		return &ErrorResponse{
			Code:    "invalid_breach_reason",
			Message: "Reason must be FULLSCREEN_BREACH or TAB_SWITCH_BREACH",
		}
	}
	return nil
}

type RunCodeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

func (r *RunCodeRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return &ErrorResponse{Code: "missing_code", Message: "Code field is required"}
	}
	if r.Language == "" {
		r.Language = "javascript"
	}
	supported := map[string]bool{"javascript": true, "python": true}
	if !supported[strings.ToLower(r.Language)] {
		return &ErrorResponse{Code: "unsupported_language", Message: "Language not supported. Supported languages: javascript, python"}
	}
	return nil
}
