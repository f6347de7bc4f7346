package puzzles

// EnergyPuzzle is stage 3: reach exactly 180 MW with the least fossil fuel.
// Wind/solar/hydro are fixed at 150 MW total, so the only valid slider value
// is 30.
type EnergyPuzzle struct{}

const (
	energyTarget    = 180
	energyMinFossil = 30
)

var energyFixed = map[string]int{
	"wind":  50,
	"solar": 40,
	"hydro": 60,
}

func (EnergyPuzzle) Prompt() Prompt {
	return Prompt{
		Type:        "energy_mix",
		Title:       "Room 3 — 180 MW energy mix",
		Instruction: "Reach exactly 180 MW using as little fossil fuel as possible.",
		Fixed:       energyFixed,
		Target:      energyTarget,
		Min:         0,
		Max:         60,
		Step:        1,
	}
}

// Validate expects {"fossil": number}.
func (EnergyPuzzle) Validate(submission map[string]any) bool {
	fossil, ok := asInt(submission, "fossil")
	if !ok || fossil < 0 || fossil > 60 {
		return false
	}
	total := energyFixed["wind"] + energyFixed["solar"] + energyFixed["hydro"] + fossil
	return total == energyTarget && fossil == energyMinFossil
}

func (EnergyPuzzle) Hints() []string {
	return []string{
		"The renewables add up to 150 MW.",
		"Top up with only as much fossil as you need.",
		"The minimum amount of fossil is the right answer.",
	}
}

func (EnergyPuzzle) Debrief() string {
	return "Grids must balance production and consumption continuously; the more renewables, the more flexibility matters."
}

func (EnergyPuzzle) Points() int { return 2431 }
