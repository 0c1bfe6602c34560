package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OptionLabel identifies one answer option of a multiple-choice question.
type OptionLabel string

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// OptionLabels lists the known labels in display order.
var OptionLabels = [OptionCount]OptionLabel{"a", "b", "c", "d"}

// ParseOptionLabel normalizes s to a known label.
func ParseOptionLabel(s string) (OptionLabel, bool) {
	label := OptionLabel(strings.ToLower(strings.TrimSpace(s)))
	return label, label.Index() >= 0
}

// Index returns the position of l in OptionLabels, or -1.
func (l OptionLabel) Index() int {
	for i, known := range OptionLabels {
		if l == known {
			return i
		}
	}
	return -1
}

// Options is a fixed-size ordered mapping from label to option text. The text
// for OptionLabels[i] lives at index i.
type Options [OptionCount]string

// Text returns the option text for label.
func (o Options) Text(label OptionLabel) (string, bool) {
	i := label.Index()
	if i < 0 {
		return "", false
	}
	return o[i], true
}

// Set stores text under label.
func (o *Options) Set(label OptionLabel, text string) error {
	i := label.Index()
	if i < 0 {
		return fmt.Errorf("unknown option label %q", label)
	}
	o[i] = text
	return nil
}

// MarshalJSON renders the options as {"a": ..., "b": ..., "c": ..., "d": ...}.
func (o Options) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, OptionCount)
	for i, label := range OptionLabels {
		m[string(label)] = o[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts exactly the known labels.
func (o *Options) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != OptionCount {
		return fmt.Errorf("options: expected %d entries, got %d", OptionCount, len(m))
	}
	var out Options
	var seen [OptionCount]bool
	for key, text := range m {
		label, ok := ParseOptionLabel(key)
		if !ok {
			return fmt.Errorf("options: unknown label %q", key)
		}
		if seen[label.Index()] {
			return fmt.Errorf("options: duplicate label %q", label)
		}
		seen[label.Index()] = true
		out[label.Index()] = text
	}
	*o = out
	return nil
}

// QuizQuestion is one multiple-choice question derived from a note.
type QuizQuestion struct {
	Question      string      `json:"question"`
	Options       Options     `json:"options"`
	CorrectAnswer OptionLabel `json:"correctAnswer"`
}

// Validate checks that the question is complete and that the correct answer
// names one of its options.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	for i, text := range q.Options {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("option %s is empty", OptionLabels[i])
		}
	}
	if q.CorrectAnswer.Index() < 0 {
		return fmt.Errorf("correct answer %q is not one of the options", q.CorrectAnswer)
	}
	return nil
}
