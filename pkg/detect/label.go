// ABOUTME: Detection labels and the decision threshold
// ABOUTME: Maps a label-1 probability onto a human readable verdict
package detect

// Label is the verdict shown for a track
type Label string

const (
	AIGenerated    Label = "AI-Generated"
	NotAIGenerated Label = "Not AI-Generated"
)

// Threshold separates the two verdicts. Scores are the probability of the
// real corpus label, so anything below it is called AI-generated.
const Threshold = 0.5

// LabelForScore returns the verdict for a classifier score
func LabelForScore(score float64) Label {
	if score < Threshold {
		return AIGenerated
	}
	return NotAIGenerated
}

func (l Label) String() string {
	return string(l)
}
