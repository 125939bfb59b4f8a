package attempt

import (
	"sort"
	"strings"

	"quizquest/internal/domain"
	"quizquest/internal/dto"
)

// BuildSubmission normalizes committed answers into the wire payload, aligned
// by question index and joined on question_id. Single-answer multiple choice
// sends the selected option text (legacy server compatibility); multi-answer
// sends the index set; short answer sends the trimmed text; forced recall
// sends the entry mapping. Per-question time_spent stays 0: only the
// attempt-level total is tracked, which is a deliberate simplification.
func BuildSubmission(challenge *domain.Challenge, answers []domain.Answer) []dto.SubmittedAnswer {
	out := make([]dto.SubmittedAnswer, 0, len(challenge.Questions))
	for i, q := range challenge.Questions {
		wire := dto.SubmittedAnswer{QuestionID: q.ID}
		if i < len(answers) {
			fillPayload(&wire, q, answers[i])
		}
		out = append(out, wire)
	}
	return out
}

func fillPayload(wire *dto.SubmittedAnswer, q domain.Question, a domain.Answer) {
	switch q.Type {
	case domain.QuestionMultipleChoice:
		if q.IsMultiAnswer() {
			if len(a.SelectedIndices) > 0 {
				indices := append([]int(nil), a.SelectedIndices...)
				sort.Ints(indices)
				wire.SelectedIndices = indices
			}
			return
		}
		if a.SelectedIndex != nil && *a.SelectedIndex >= 0 && *a.SelectedIndex < len(q.Options) {
			wire.Text = q.Options[*a.SelectedIndex]
		}
	case domain.QuestionShortAnswer:
		wire.Text = strings.TrimSpace(a.Text)
	case domain.QuestionForcedRecall:
		if len(a.TableEntries) > 0 {
			entries := make(map[string]string, len(a.TableEntries))
			for k, v := range a.TableEntries {
				entries[k] = v
			}
			wire.TableEntries = entries
		}
	}
}
