package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionType tags one concrete shape of the Question/Answer union.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionForcedRecall   QuestionType = "forced_recall"
)

// TableEntry is one independently scored row of a forced-recall question.
type TableEntry struct {
	EntryID           string   `json:"entry_id"`
	Label             string   `json:"label"`
	AcceptableAnswers []string `json:"acceptable_answers"`
	Points            int      `json:"points"`
}

// Question is a closed tagged union over the supported variants. The Type tag
// decides which fields are meaningful; every question carries a stable ID
// assigned at creation time which is never regenerated, not even when an
// editor changes the question's type.
type Question struct {
	ID   string
	Type QuestionType
	Text string

	// multiple_choice
	Options        []string
	CorrectAnswers []int

	// short_answer
	AcceptableAnswers []string

	// forced_recall
	TableTitle       string
	TableDescription string
	TableEntries     []TableEntry
}

// questionJSON is the wire shape shared by all variants. Multiple-choice and
// short-answer questions carry their prompt as question_text, forced-recall
// uses text; both are accepted on the way in.
type questionJSON struct {
	QuestionID        string       `json:"question_id"`
	Type              QuestionType `json:"type"`
	QuestionText      string       `json:"question_text,omitempty"`
	Text              string       `json:"text,omitempty"`
	Options           []string     `json:"options,omitempty"`
	CorrectAnswers    []int        `json:"correct_answers,omitempty"`
	AcceptableAnswers []string     `json:"acceptable_answers,omitempty"`
	TableTitle        string       `json:"table_title,omitempty"`
	Description       string       `json:"description,omitempty"`
	TableEntries      []TableEntry `json:"table_entries,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface
func (q Question) MarshalJSON() ([]byte, error) {
	wire := questionJSON{
		QuestionID: q.ID,
		Type:       q.Type,
	}
	switch q.Type {
	case QuestionMultipleChoice:
		wire.QuestionText = q.Text
		wire.Options = q.Options
		wire.CorrectAnswers = q.CorrectAnswers
	case QuestionShortAnswer:
		wire.QuestionText = q.Text
		wire.AcceptableAnswers = q.AcceptableAnswers
	case QuestionForcedRecall:
		wire.Text = q.Text
		wire.TableTitle = q.TableTitle
		wire.Description = q.TableDescription
		wire.TableEntries = q.TableEntries
	default:
		return nil, NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("unknown question type: %q", q.Type))
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements the json.Unmarshaler interface. Unknown type tags
// are rejected rather than guessed at.
func (q *Question) UnmarshalJSON(data []byte) error {
	var wire questionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch wire.Type {
	case QuestionMultipleChoice, QuestionShortAnswer:
		q.Text = wire.QuestionText
		if q.Text == "" {
			q.Text = wire.Text
		}
	case QuestionForcedRecall:
		q.Text = wire.Text
		if q.Text == "" {
			q.Text = wire.QuestionText
		}
	default:
		return NewInvalidQuestionFormatError(wire.QuestionID, fmt.Sprintf("unknown question type: %q", wire.Type))
	}

	q.ID = wire.QuestionID
	q.Type = wire.Type
	q.Options = wire.Options
	q.CorrectAnswers = wire.CorrectAnswers
	q.AcceptableAnswers = wire.AcceptableAnswers
	q.TableTitle = wire.TableTitle
	q.TableDescription = wire.Description
	q.TableEntries = wire.TableEntries
	return nil
}

// IsMultiAnswer reports whether a multiple-choice question expects a set of
// selections. The mode is derived from the correct-answer set, never stored.
func (q Question) IsMultiAnswer() bool {
	return q.Type == QuestionMultipleChoice && len(q.CorrectAnswers) > 1
}

// Validate checks the variant-specific invariants of the question.
func (q Question) Validate() error {
	if q.ID == "" {
		return NewInvalidQuestionFormatError(q.ID, "question_id is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidQuestionFormatError(q.ID, "question text is required")
	}

	switch q.Type {
	case QuestionMultipleChoice:
		if len(q.Options) < 2 {
			return NewInvalidQuestionFormatError(q.ID, "at least two options are required")
		}
		for i, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("option %d is empty", i))
			}
		}
		if len(q.CorrectAnswers) == 0 {
			return NewInvalidQuestionFormatError(q.ID, "at least one correct answer is required")
		}
		seen := make(map[int]bool)
		for _, idx := range q.CorrectAnswers {
			if idx < 0 || idx >= len(q.Options) {
				return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("correct answer index %d out of range", idx))
			}
			if seen[idx] {
				return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("duplicate correct answer index %d", idx))
			}
			seen[idx] = true
		}
	case QuestionShortAnswer:
		if countNonEmpty(q.AcceptableAnswers) == 0 {
			return NewInvalidQuestionFormatError(q.ID, "at least one acceptable answer is required")
		}
	case QuestionForcedRecall:
		if len(q.TableEntries) == 0 {
			return NewInvalidQuestionFormatError(q.ID, "at least one table entry is required")
		}
		seenEntries := make(map[string]bool)
		for _, entry := range q.TableEntries {
			if entry.EntryID == "" {
				return NewInvalidQuestionFormatError(q.ID, "table entry is missing entry_id")
			}
			if seenEntries[entry.EntryID] {
				return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("duplicate entry_id %q", entry.EntryID))
			}
			seenEntries[entry.EntryID] = true
			if entry.Points < 0 {
				return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("entry %q has negative points", entry.EntryID))
			}
			if countNonEmpty(entry.AcceptableAnswers) == 0 {
				return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("entry %q has no acceptable answers", entry.EntryID))
			}
		}
	default:
		return NewInvalidQuestionFormatError(q.ID, fmt.Sprintf("unknown question type: %q", q.Type))
	}
	return nil
}

// IsAnswered reports whether the given answer counts as a minimal valid input
// for this question: a selection for single-choice, a non-empty selection set
// for multi-choice, non-empty trimmed text for short-answer, and at least one
// non-empty cell for forced-recall.
func (q Question) IsAnswered(a Answer) bool {
	switch q.Type {
	case QuestionMultipleChoice:
		if q.IsMultiAnswer() {
			return len(a.SelectedIndices) > 0
		}
		return a.SelectedIndex != nil
	case QuestionShortAnswer:
		return strings.TrimSpace(a.Text) != ""
	case QuestionForcedRecall:
		for _, v := range a.TableEntries {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
		return false
	}
	return false
}

// Match reports whether the answer is fully correct. Multi-answer selections
// must equal the correct set exactly; a subset or superset does not match.
// Forced-recall matches only when every entry is correct; use Score for
// partial credit.
func (q Question) Match(a Answer) bool {
	switch q.Type {
	case QuestionMultipleChoice:
		if q.IsMultiAnswer() {
			return indexSetsEqual(a.SelectedIndices, q.CorrectAnswers)
		}
		if a.SelectedIndex == nil {
			return false
		}
		for _, idx := range q.CorrectAnswers {
			if *a.SelectedIndex == idx {
				return true
			}
		}
		return false
	case QuestionShortAnswer:
		return matchesAcceptable(a.Text, q.AcceptableAnswers)
	case QuestionForcedRecall:
		return q.Score(a) == 1.0
	}
	return false
}

// Score returns the fraction of credit earned, 0.0 to 1.0. The three
// exact-match variants score all or nothing; forced-recall earns the points of
// each matched entry out of the question's total points.
func (q Question) Score(a Answer) float64 {
	if q.Type != QuestionForcedRecall {
		if q.Match(a) {
			return 1.0
		}
		return 0.0
	}

	total := q.TotalPoints()
	if total == 0 {
		return 0.0
	}
	earned := 0
	for _, entry := range q.TableEntries {
		if matchesAcceptable(a.TableEntries[entry.EntryID], entry.AcceptableAnswers) {
			earned += entry.Points
		}
	}
	return float64(earned) / float64(total)
}

// TotalPoints sums the points of all forced-recall table entries.
func (q Question) TotalPoints() int {
	total := 0
	for _, entry := range q.TableEntries {
		total += entry.Points
	}
	return total
}

// NormalizeAnswerText trims whitespace and lowercases for matching.
func NormalizeAnswerText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesAcceptable(input string, acceptable []string) bool {
	normalized := NormalizeAnswerText(input)
	if normalized == "" {
		return false
	}
	for _, candidate := range acceptable {
		if normalized == NormalizeAnswerText(candidate) {
			return true
		}
	}
	return false
}

func indexSetsEqual(a, b []int) bool {
	setA := make(map[int]bool, len(a))
	for _, idx := range a {
		setA[idx] = true
	}
	setB := make(map[int]bool, len(b))
	for _, idx := range b {
		setB[idx] = true
	}
	if len(setA) != len(setB) {
		return false
	}
	for idx := range setA {
		if !setB[idx] {
			return false
		}
	}
	return true
}

func countNonEmpty(values []string) int {
	count := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	return count
}
