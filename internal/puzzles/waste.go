package puzzles

// WastePuzzle is stage 1: match each piece of waste to the right bin.
type WastePuzzle struct{}

var wasteObjects = []PromptItem{
	{ID: "glass-jar", Label: "Glass jar", Icon: "🍾"},
	{ID: "food-scraps", Label: "Food scraps", Icon: "🍎"},
	{ID: "plastic-bottle", Label: "Plastic bottle", Icon: "🥤"},
}

var wasteBins = []PromptItem{
	{ID: "glass", Label: "Glass", Icon: "🍾"},
	{ID: "compost", Label: "Compost", Icon: "🌱"},
	{ID: "plastic", Label: "Plastic (yellow)", Icon: "♻️"},
}

var wasteCorrect = map[string]string{
	"glass-jar":      "glass",
	"food-scraps":    "compost",
	"plastic-bottle": "plastic",
}

func (WastePuzzle) Prompt() Prompt {
	return Prompt{
		Type:        "waste_sort",
		Title:       "Room 1 — Waste sorting",
		Instruction: "Drag each object onto the right bin, then press Validate.",
		Objects:     wasteObjects,
		Bins:        wasteBins,
	}
}

// Validate expects {"assign": {objectID: binID, ...}}. Every object must be
// assigned, and assigned correctly.
func (WastePuzzle) Validate(submission map[string]any) bool {
	if submission == nil {
		return false
	}
	assign, ok := submission["assign"].(map[string]any)
	if !ok || len(assign) != len(wasteCorrect) {
		return false
	}
	for objID, want := range wasteCorrect {
		binID, _ := assign[objID].(string)
		if binID != want {
			return false
		}
	}
	return true
}

func (WastePuzzle) Hints() []string {
	return []string{
		"Glass belongs in the glass bin.",
		"Kitchen scraps feed the compost.",
		"Plastic bottles go in the yellow bin.",
	}
}

func (WastePuzzle) Debrief() string {
	return "Proper sorting cuts pollution: glass recycles endlessly, compost shrinks landfill waste."
}

func (WastePuzzle) Points() int { return 2390 }
