package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	questionLinePattern = regexp.MustCompile(`^\d+\s*[.)]\s*(.*)$`)
	optionLinePattern   = regexp.MustCompile(`^([A-Za-z])\)\s*(.*)$`)
	answerLinePattern   = regexp.MustCompile(`(?i)^correct answer\s*:\s*\(?([a-z])\b`)
)

// ParseQuizResponse turns a model reply written in the quiz template into
// questions. The reply is split into blank-line separated blocks; blocks before
// the first numbered question and after the last one are treated as preamble
// and closing remarks and dropped. Every remaining block must be
//
//	N. question text
//	a) option
//	b) option
//	c) option
//	d) option
//	Correct answer: X
//
// Anything else yields a PARSE_ERROR; partial results are never returned.
func ParseQuizResponse(raw string) ([]QuizQuestion, error) {
	blocks := splitBlocks(raw)

	first, last := -1, -1
	for i, block := range blocks {
		if isQuestionBlock(block) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, NewParseError("model response contains no numbered questions")
	}

	quizzes := make([]QuizQuestion, 0, last-first+1)
	for i := first; i <= last; i++ {
		number := i - first + 1
		quiz, err := parseQuestionBlock(blocks[i])
		if err != nil {
			return nil, NewParseError(fmt.Sprintf("question %d: %v", number, err)).
				WithContext("question", number)
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}

func splitBlocks(raw string) [][]string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var blocks [][]string
	var current []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func isQuestionBlock(lines []string) bool {
	return len(lines) > 0 && questionLinePattern.MatchString(lines[0])
}

func parseQuestionBlock(lines []string) (QuizQuestion, error) {
	var quiz QuizQuestion

	m := questionLinePattern.FindStringSubmatch(lines[0])
	if m == nil {
		return quiz, fmt.Errorf("block does not start with a numbered question")
	}
	quiz.Question = strings.TrimSpace(m[1])

	if len(lines) < 2+OptionCount {
		return quiz, fmt.Errorf("expected %d options and a correct answer line, got %d lines", OptionCount, len(lines)-1)
	}

	seen := make(map[OptionLabel]bool, OptionCount)
	for _, line := range lines[1 : len(lines)-1] {
		om := optionLinePattern.FindStringSubmatch(line)
		if om == nil {
			return quiz, fmt.Errorf("malformed option line %q", line)
		}
		label, ok := ParseOptionLabel(om[1])
		if !ok {
			return quiz, fmt.Errorf("unknown option label %q", om[1])
		}
		if seen[label] {
			return quiz, fmt.Errorf("duplicate option label %q", label)
		}
		seen[label] = true
		if err := quiz.Options.Set(label, strings.TrimSpace(om[2])); err != nil {
			return quiz, err
		}
	}
	if len(seen) != OptionCount {
		return quiz, fmt.Errorf("expected %d options, got %d", OptionCount, len(seen))
	}

	am := answerLinePattern.FindStringSubmatch(lines[len(lines)-1])
	if am == nil {
		return quiz, fmt.Errorf("missing %q line", "Correct answer: X")
	}
	quiz.CorrectAnswer, _ = ParseOptionLabel(am[1])

	if err := quiz.Validate(); err != nil {
		return quiz, err
	}
	return quiz, nil
}
