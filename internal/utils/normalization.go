package utils

import "strings"

func NormalizeRole(role string) string {
	return strings.TrimSpace(role)
}

func NormalizeDifficulty(difficulty string) string {
	return strings.ToLower(strings.TrimSpace(difficulty))
}

// DifficultyForSeniority maps the candidate's self-reported seniority onto the
// task difficulty the oracle is prompted with.
func DifficultyForSeniority(seniority string) string {
	switch strings.ToLower(strings.TrimSpace(seniority)) {
	case "junior":
		return "easy"
	case "senior":
		return "hard"
	default:
		return "medium"
	}
}

// StripFences removes a single leading/trailing markdown code fence pair,
// which LLMs like to wrap JSON payloads in despite being told not to.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	// drop an optional language tag on the opening fence
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
