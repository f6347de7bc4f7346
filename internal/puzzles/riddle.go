package puzzles

import "strings"

// RiddlePuzzle is stage 2: a riddle about the keystone pollinator.
// Wrong answers on this stage carry a time penalty (applied by the game).
type RiddlePuzzle struct{}

func (RiddlePuzzle) Prompt() Prompt {
	return Prompt{
		Type:  "riddle",
		Title: "Room 2 — Biodiversity riddle",
		Instruction: "I visit a hundred flowers before noon.\n" +
			"I dance to tell my sisters where the nectar hides.\n" +
			"Without me, most orchards would stand empty.\n" +
			"I am a pollinating insect essential to life on Earth.",
	}
}

// Validate expects {"answer": string}; accent-insensitive, accepts the French
// spelling the physical room uses on its props.
func (RiddlePuzzle) Validate(submission map[string]any) bool {
	ans := strings.ToLower(strings.TrimSpace(asString(submission, "answer")))
	ans = strings.NewReplacer("é", "e", "è", "e", "ê", "e").Replace(ans)
	return ans == "bee" || ans == "abeille"
}

func (RiddlePuzzle) Hints() []string {
	return []string{
		"It is an insect.",
		"It makes honey.",
		"It pollinates most flowering plants.",
	}
}

func (RiddlePuzzle) Debrief() string {
	return "Without bees, around 80% of flowering plants would lose their pollinators."
}

func (RiddlePuzzle) Points() int { return 2400 }
