package puzzles

import "testing"

func correctWasteAssign() map[string]any {
	return map[string]any{
		"assign": map[string]any{
			"glass-jar":      "glass",
			"food-scraps":    "compost",
			"plastic-bottle": "plastic",
		},
	}
}

func TestWastePuzzle_Validate(t *testing.T) {
	p := WastePuzzle{}

	tests := []struct {
		name       string
		submission map[string]any
		want       bool
	}{
		{"correct assignment", correctWasteAssign(), true},
		{"one object misplaced", map[string]any{
			"assign": map[string]any{
				"glass-jar":      "compost",
				"food-scraps":    "glass",
				"plastic-bottle": "plastic",
			},
		}, false},
		{"missing object", map[string]any{
			"assign": map[string]any{
				"glass-jar": "glass",
			},
		}, false},
		{"extra key instead of object", map[string]any{
			"assign": map[string]any{
				"glass-jar":   "glass",
				"food-scraps": "compost",
				"teapot":      "plastic",
			},
		}, false},
		{"assign is not a map", map[string]any{"assign": "glass"}, false},
		{"empty submission", map[string]any{}, false},
		{"nil submission", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Validate(tt.submission); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiddlePuzzle_Validate(t *testing.T) {
	p := RiddlePuzzle{}

	tests := []struct {
		name       string
		submission map[string]any
		want       bool
	}{
		{"english answer", map[string]any{"answer": "bee"}, true},
		{"french answer", map[string]any{"answer": "abeille"}, true},
		{"accented french answer", map[string]any{"answer": "Abéille"}, true},
		{"whitespace and case", map[string]any{"answer": "  BEE "}, true},
		{"wrong answer", map[string]any{"answer": "wasp"}, false},
		{"answer not a string", map[string]any{"answer": 42.0}, false},
		{"missing answer", map[string]any{}, false},
		{"nil submission", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Validate(tt.submission); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergyPuzzle_Validate(t *testing.T) {
	p := EnergyPuzzle{}

	tests := []struct {
		name       string
		submission map[string]any
		want       bool
	}{
		{"minimum fossil", map[string]any{"fossil": 30.0}, true},
		{"fossil as string", map[string]any{"fossil": "30"}, true},
		{"too much fossil", map[string]any{"fossil": 40.0}, false},
		{"too little fossil", map[string]any{"fossil": 20.0}, false},
		{"out of range", map[string]any{"fossil": 99.0}, false},
		{"fossil not numeric", map[string]any{"fossil": "lots"}, false},
		{"missing fossil", map[string]any{}, false},
		{"nil submission", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Validate(tt.submission); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGaiaPuzzle_Validate(t *testing.T) {
	p := GaiaPuzzle{}

	tests := []struct {
		name       string
		submission map[string]any
		want       bool
	}{
		{"english long form", map[string]any{"date": "14 march 2025"}, true},
		{"french long form", map[string]any{"date": "14 mars 2025"}, true},
		{"month first", map[string]any{"date": "March 14, 2025"}, true},
		{"slash form", map[string]any{"date": "14/03/2025"}, true},
		{"dash form", map[string]any{"date": "14-03-2025"}, true},
		{"iso form", map[string]any{"date": "2025-03-14"}, true},
		{"extra whitespace", map[string]any{"date": "  14   march  2025 "}, true},
		{"wrong day", map[string]any{"date": "15 march 2025"}, false},
		{"wrong year", map[string]any{"date": "14 march 2024"}, false},
		{"numeric but wrong month", map[string]any{"date": "14/04/2025"}, false},
		{"empty date", map[string]any{"date": ""}, false},
		{"missing date", map[string]any{}, false},
		{"nil submission", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Validate(tt.submission); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry()

	if r.Total() != 4 {
		t.Fatalf("Total() = %d, want 4", r.Total())
	}

	wantTypes := []string{"waste_sort", "riddle", "energy_mix", "gaia_final"}
	wantPoints := []int{2390, 2400, 2431, 2500}
	for i, want := range wantTypes {
		p := r.At(i)
		if p == nil {
			t.Fatalf("At(%d) = nil", i)
		}
		if got := p.Prompt().Type; got != want {
			t.Errorf("stage %d type = %q, want %q", i, got, want)
		}
		if got := p.Points(); got != wantPoints[i] {
			t.Errorf("stage %d points = %d, want %d", i, got, wantPoints[i])
		}
	}
}

func TestRegistry_At_OutOfRange(t *testing.T) {
	r := NewRegistry()
	if r.At(-1) != nil {
		t.Error("At(-1) should be nil")
	}
	if r.At(r.Total()) != nil {
		t.Error("At(Total()) should be nil")
	}
}

func TestRegistry_Hint(t *testing.T) {
	r := NewRegistry()

	hints := r.At(0).Hints()
	for i := range hints {
		hint, ok := r.Hint(0, i)
		if !ok {
			t.Fatalf("Hint(0, %d) not found", i)
		}
		if hint != hints[i] {
			t.Errorf("Hint(0, %d) = %q, want %q", i, hint, hints[i])
		}
	}

	// Past exhaustion is not an error, just absent.
	if _, ok := r.Hint(0, len(hints)); ok {
		t.Error("hint past the end should not exist")
	}
	if _, ok := r.Hint(99, 0); ok {
		t.Error("hint for unknown stage should not exist")
	}
}

func TestPrompt_Pure(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < r.Total(); i++ {
		a := r.At(i).Prompt()
		b := r.At(i).Prompt()
		if a.Type != b.Type || a.Title != b.Title || a.Instruction != b.Instruction {
			t.Errorf("stage %d prompt is not stable across calls", i)
		}
	}
}
