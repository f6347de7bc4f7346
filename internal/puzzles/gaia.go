package puzzles

import "strings"

// GaiaPuzzle is the finale: combine the three codes found in the previous
// rooms into a day number and convert it to a 2025 date.
// (245+380+120)/10 = 74 -> day 74 of 2025 -> March 14, 2025.
type GaiaPuzzle struct{}

func (GaiaPuzzle) Prompt() Prompt {
	return Prompt{
		Type:  "gaia_final",
		Title: "Room 4 — Reactivate Gaia",
		Instruction: "Codes recovered: A=245, B=380, C=120.\n" +
			"Compute (A+B+C)/10, take it as a day number of 2025, and convert it to a date.",
	}
}

// Validate expects {"date": string} and tolerates the usual spellings
// ("14 march 2025", "march 14 2025", "14/03/2025", French "mars").
func (GaiaPuzzle) Validate(submission map[string]any) bool {
	val := strings.ToLower(strings.TrimSpace(asString(submission, "date")))
	val = strings.Join(strings.Fields(val), " ")
	if val == "" {
		return false
	}
	if !strings.Contains(val, "2025") {
		return false
	}
	if strings.Contains(val, "mar") {
		return strings.Contains(val, "14")
	}
	return val == "14/03/2025" || val == "14-03-2025" || val == "2025-03-14"
}

func (GaiaPuzzle) Hints() []string {
	return []string{
		"Add A, B and C, then divide by ten.",
		"Treat the result as a day-of-year in 2025.",
		"March is a good month to consider…",
	}
}

func (GaiaPuzzle) Debrief() string {
	return "Earth Overshoot Day shows how far human demand outruns the planet's yearly biocapacity."
}

func (GaiaPuzzle) Points() int { return 2500 }
