package quizgen

import (
	"fmt"
	"time"
)

// SystemPrompt frames the model as the author of the quiz.
const SystemPrompt = "You are a professor trying to formulate quiz questions for your students."

const userPromptTemplate = `Given the following content, generate %[1]d unique multiple-choice questions as of timestamp %[2]d. Format each question as follows:
1. Question text
a) Option 1
b) Option 2
c) Option 3
d) Option 4
Correct answer: [letter of correct option]

Repeat this format for all %[1]d questions.

%[3]s`

// BuildUserPrompt embeds content in the fixed answer template. The timestamp
// makes every request unique so repeated runs are not answered from a cache.
func BuildUserPrompt(content string, count int, at time.Time) string {
	return fmt.Sprintf(userPromptTemplate, count, at.UnixMilli(), content)
}

// Options shared by every generator implementation.
type Options struct {
	Model         string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
	QuestionCount int
	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxTokens <= 0 {
		o.MaxTokens = 1000
	}
	if o.QuestionCount <= 0 {
		o.QuestionCount = 5
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
