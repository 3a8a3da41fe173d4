package triage

import (
	"context"
	"strings"
)

// Result is the outcome of one symptom classification.
type Result struct {
	Specialty       string `json:"specialty"`
	Urgency         string `json:"urgency"`
	Recommendation  string `json:"recommendation"`
	EmergencyAdvice string `json:"emergencyAdvice"`
}

// Classifier maps a free-text symptom description to a specialty
// recommendation. Implementations are fallible; callers fall back to
// Fallback() and let the patient pick a specialty manually.
type Classifier interface {
	Classify(ctx context.Context, symptoms string) (Result, error)
}

// Fallback is the safe default used when the classifier is unavailable or
// returns something unusable.
func Fallback() Result {
	return Result{
		Specialty:       "General Physician",
		Urgency:         "Low",
		Recommendation:  "Please consult a doctor.",
		EmergencyAdvice: "None",
	}
}

// parseResult reads the line-oriented KEY: value reply format. Unknown or
// missing keys keep their fallback values, so a sloppy model reply still
// yields a usable result.
func parseResult(raw string) Result {
	res := Fallback()
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "SPECIALTY":
			res.Specialty = value
		case "URGENCY":
			res.Urgency = value
		case "RECOMMENDATION":
			res.Recommendation = value
		case "EMERGENCY_ADVICE":
			res.EmergencyAdvice = value
		}
	}
	return res
}
