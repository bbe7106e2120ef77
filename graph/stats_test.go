package graph

import "testing"

func TestComputePassStat(t *testing.T) {
	questions := func(n int) []Question {
		qs := make([]Question, n)
		for i := range qs {
			qs[i] = Question{ID: string(rune('a' + i)), ConceptID: "c1"}
		}
		return qs
	}
	progress := func(ids ...string) Progress {
		p := NewProgress("c1")
		for _, id := range ids {
			p.MarkCorrect(id)
		}
		return p
	}

	tests := []struct {
		name        string
		questions   []Question
		progress    Progress
		wantRatio   float64
		wantPassed  bool
		wantCorrect int
	}{
		{
			name:       "no_questions",
			questions:  nil,
			progress:   NewProgress("c1"),
			wantRatio:  0,
			wantPassed: false,
		},
		{
			name:        "all_correct",
			questions:   questions(3),
			progress:    progress("a", "b", "c"),
			wantRatio:   1,
			wantPassed:  true,
			wantCorrect: 3,
		},
		{
			name:        "exactly_at_threshold",
			questions:   questions(10),
			progress:    progress("a", "b", "c", "d", "e", "f", "g"),
			wantRatio:   0.7,
			wantPassed:  true,
			wantCorrect: 7,
		},
		{
			name:        "just_below_threshold",
			questions:   questions(3),
			progress:    progress("a", "b"),
			wantRatio:   2.0 / 3.0,
			wantPassed:  false,
			wantCorrect: 2,
		},
		{
			name:        "none_correct",
			questions:   questions(4),
			progress:    NewProgress("c1"),
			wantRatio:   0,
			wantPassed:  false,
			wantCorrect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePassStat(tt.questions, tt.progress)
			if got.Total != len(tt.questions) {
				t.Errorf("Total = %d, want %d", got.Total, len(tt.questions))
			}
			if got.Correct != tt.wantCorrect {
				t.Errorf("Correct = %d, want %d", got.Correct, tt.wantCorrect)
			}
			if got.Ratio != tt.wantRatio {
				t.Errorf("Ratio = %v, want %v", got.Ratio, tt.wantRatio)
			}
			if got.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", got.Passed, tt.wantPassed)
			}
		})
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "no_questions_shows_bare_name",
			node: Node{ID: "c1", Concept: &Concept{ID: "c1", Name: "Limits"}},
			want: "Limits",
		},
		{
			name: "questions_embed_badge",
			node: Node{
				ID:      "c1",
				Concept: &Concept{ID: "c1", Name: "Limits"},
				Questions: []Question{
					{ID: "q1", ConceptID: "c1"},
					{ID: "q2", ConceptID: "c1"},
				},
				Progress: Progress{ConceptID: "c1", CorrectQuestionIDs: []string{"q1"}},
			},
			want: "Limits (1/2)",
		},
		{
			name: "missing_concept_falls_back",
			node: Node{ID: "n1"},
			want: "Concept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayLabel(&tt.node); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrokeFor(t *testing.T) {
	tests := []struct {
		name      string
		meta      EdgeMeta
		wantWidth float64
	}{
		{"default_weight", EdgeMeta{Weight: 0.7, Color: DefaultEdgeColor}, 2.1},
		{"tiny_weight_floored", EdgeMeta{Weight: 0.1, Color: DefaultEdgeColor}, 1.5},
		{"above_intended_max_not_clamped", EdgeMeta{Weight: 5, Color: DefaultEdgeColor}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StrokeFor(tt.meta)
			if got.StrokeWidth != tt.wantWidth {
				t.Errorf("StrokeWidth = %v, want %v", got.StrokeWidth, tt.wantWidth)
			}
			if got.StrokeColor != tt.meta.Color {
				t.Errorf("StrokeColor = %q, want %q", got.StrokeColor, tt.meta.Color)
			}
		})
	}
}

func TestProgressSetSemantics(t *testing.T) {
	p := NewProgress("c1")

	p.MarkCorrect("q1")
	p.MarkCorrect("q1")
	if len(p.CorrectQuestionIDs) != 1 {
		t.Errorf("MarkCorrect not idempotent: %v", p.CorrectQuestionIDs)
	}

	p.ClearCorrect("missing")
	if len(p.CorrectQuestionIDs) != 1 {
		t.Errorf("ClearCorrect of absent id mutated set: %v", p.CorrectQuestionIDs)
	}

	p.ClearCorrect("q1")
	if len(p.CorrectQuestionIDs) != 0 {
		t.Errorf("ClearCorrect did not remove id: %v", p.CorrectQuestionIDs)
	}
}
