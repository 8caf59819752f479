package reminder

import (
	"math/rand/v2"
	"strings"
)

// Prompt is the content of one break prompt.
type Prompt struct {
	Message      string
	Activity     string
	ShowActivity bool
}

// Text renders the prompt body as shown in the modal and notifications.
func (p Prompt) Text() string {
	var b strings.Builder
	b.WriteString(p.Message)
	if p.ShowActivity && p.Activity != "" {
		b.WriteString("\n\nSuggested activity:\n")
		b.WriteString(p.Activity)
	}
	b.WriteString("\n\nContinue working?")
	return b.String()
}

// Summary is the single line used for notification bodies.
func (p Prompt) Summary() string {
	if p.ShowActivity && p.Activity != "" {
		return p.Message + " (" + p.Activity + ")"
	}
	return p.Message
}

// Picker chooses prompt content uniformly at random. Message and activity
// are drawn independently.
type Picker struct {
	rng *rand.Rand
}

// NewPicker uses rng, or a randomly seeded source when rng is nil.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{rng: rng}
}

// Pick returns a random element of items, or "" when items is empty.
func (p *Picker) Pick(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[p.rng.IntN(len(items))]
}
