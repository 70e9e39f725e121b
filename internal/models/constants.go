package models

// Integrity breach reasons logged when a session is terminated.
const (
	BreachFullscreen  = "FULLSCREEN_BREACH"
	BreachTabSwitch   = "TAB_SWITCH_BREACH"
	BreachTimeExpired = "TIME_EXPIRED"
	BreachSpamAnswer  = "INTERROGATION_SPAM"
)

// client-reportable breach reasons (in the exact casing the proctoring
// client sends)
var ValidBreachReasons = map[string]bool{
	BreachFullscreen: true,
	BreachTabSwitch:  true,
}

// TotalRounds is the number of coding rounds in an interview.
const TotalRounds = 3

// IntegrityStart is the integrity score every candidate begins with. It
// matches the column default on the candidate record.
const IntegrityStart = 100

// RoundSeconds is the default per-round countdown.
const RoundSeconds = 1200

// valid seniorities (in lowercase)
var ValidSeniorities = map[string]bool{
	"junior":       true,
	"intermediate": true,
	"senior":       true,
}

func ValidSenioritiesList() []string {
	return []string{"junior", "intermediate", "senior"}
}
