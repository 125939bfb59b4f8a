package domain

import "strings"

// Answer is the user-side half of the tagged union. Exactly one group of
// fields is meaningful, decided by Type, which always mirrors the question it
// answers.
type Answer struct {
	Type QuestionType

	// multiple_choice, single-answer mode; nil means unanswered
	SelectedIndex *int

	// multiple_choice, multi-answer mode; insertion order carries no meaning
	SelectedIndices []int

	// short_answer
	Text string

	// forced_recall; keys exist only for entries the user touched
	TableEntries map[string]string
}

// NewSingleChoiceAnswer selects one option index.
func NewSingleChoiceAnswer(index int) Answer {
	return Answer{Type: QuestionMultipleChoice, SelectedIndex: &index}
}

// NewMultiChoiceAnswer selects a set of option indices.
func NewMultiChoiceAnswer(indices ...int) Answer {
	return Answer{Type: QuestionMultipleChoice, SelectedIndices: indices}
}

// NewShortAnswer carries free text. Leading and trailing whitespace is dropped
// at capture time so an all-whitespace input stays unanswered.
func NewShortAnswer(text string) Answer {
	return Answer{Type: QuestionShortAnswer, Text: strings.TrimSpace(text)}
}

// NewForcedRecallAnswer carries the entryID -> input mapping.
func NewForcedRecallAnswer(entries map[string]string) Answer {
	return Answer{Type: QuestionForcedRecall, TableEntries: entries}
}

// EmptyAnswerFor returns the untouched draft for a question's variant.
func EmptyAnswerFor(q Question) Answer {
	a := Answer{Type: q.Type}
	if q.Type == QuestionForcedRecall {
		a.TableEntries = make(map[string]string)
	}
	return a
}

// Clone returns an independent copy; committed answers must not alias the
// draft's table-entry map.
func (a Answer) Clone() Answer {
	out := a
	if a.SelectedIndex != nil {
		idx := *a.SelectedIndex
		out.SelectedIndex = &idx
	}
	if a.SelectedIndices != nil {
		out.SelectedIndices = append([]int(nil), a.SelectedIndices...)
	}
	if a.TableEntries != nil {
		out.TableEntries = make(map[string]string, len(a.TableEntries))
		for k, v := range a.TableEntries {
			out.TableEntries[k] = v
		}
	}
	return out
}

// SetEntry records input for one forced-recall table entry.
func (a *Answer) SetEntry(entryID, value string) {
	if a.TableEntries == nil {
		a.TableEntries = make(map[string]string)
	}
	a.TableEntries[entryID] = value
}
