package puzzles

// Registry is the fixed, ordered stage sequence. The lineup is set at
// deployment; there is no dynamic plugin loading.
type Registry struct {
	puzzles []Puzzle
}

// NewRegistry returns the default four-stage mission.
func NewRegistry() *Registry {
	return &Registry{
		puzzles: []Puzzle{
			WastePuzzle{},
			RiddlePuzzle{},
			EnergyPuzzle{},
			GaiaPuzzle{},
		},
	}
}

// NewRegistryWith builds a registry over an explicit lineup (tests).
func NewRegistryWith(puzzles ...Puzzle) *Registry {
	return &Registry{puzzles: puzzles}
}

func (r *Registry) Total() int {
	return len(r.puzzles)
}

// At returns the strategy for a stage index, or nil when out of range.
func (r *Registry) At(stage int) Puzzle {
	if stage < 0 || stage >= len(r.puzzles) {
		return nil
	}
	return r.puzzles[stage]
}

// Hint returns the hint at position used for a stage, and whether one exists.
func (r *Registry) Hint(stage, used int) (string, bool) {
	p := r.At(stage)
	if p == nil {
		return "", false
	}
	hints := p.Hints()
	if used < 0 || used >= len(hints) {
		return "", false
	}
	return hints[used], true
}
