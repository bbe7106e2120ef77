package graph

import "fmt"

// PassThreshold is the fixed policy ratio at which a concept counts as
// passed. Display-only; it gates no other behavior.
const PassThreshold = 0.7

// PassStat summarizes per-concept question progress for badge display.
type PassStat struct {
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Ratio   float64 `json:"ratio"`
	Passed  bool    `json:"passed"`
}

// ComputePassStat derives the pass statistic from a concept's questions and
// progress. Ratio is 0 when there are no questions, and an empty concept is
// never passed.
func ComputePassStat(questions []Question, progress Progress) PassStat {
	stat := PassStat{
		Total:   len(questions),
		Correct: len(progress.CorrectQuestionIDs),
	}
	if stat.Total > 0 {
		stat.Ratio = float64(stat.Correct) / float64(stat.Total)
		stat.Passed = stat.Ratio >= PassThreshold
	}
	return stat
}

// PassStat derives the pass statistic for this node.
func (n *Node) PassStat() PassStat {
	return ComputePassStat(n.Questions, n.Progress)
}

// DisplayLabel derives the node's display string: "name (correct/total)"
// when the concept has at least one question, else just the name.
func DisplayLabel(n *Node) string {
	name := "Concept"
	if n.Concept != nil && n.Concept.Name != "" {
		name = n.Concept.Name
	}
	if len(n.Questions) == 0 {
		return name
	}
	stat := n.PassStat()
	return fmt.Sprintf("%s (%d/%d)", name, stat.Correct, stat.Total)
}

// RefreshLabel recomputes the display label after node or progress changes.
func (n *Node) RefreshLabel() {
	n.Label = DisplayLabel(n)
}
