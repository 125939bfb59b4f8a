package editor

import (
	"quizquest/internal/domain"
	"quizquest/internal/util"
)

const defaultEntryPoints = 10

// Editor builds a challenge out of variant-conformant questions. Every edit
// rebuilds the affected question and option list instead of splicing in place,
// so no two snapshots share backing arrays.
//
// Question ids are assigned once, when a question is added, and survive
// everything the editor does to the question afterwards, including changing
// its variant type.
type Editor struct {
	title       string
	description string
	theme       string
	difficulty  domain.Difficulty
	questions   []domain.Question
}

// NewEditor starts a draft with one default multiple-choice question.
func NewEditor() *Editor {
	return &Editor{
		theme:      "General",
		difficulty: domain.DifficultyMedium,
		questions:  []domain.Question{newQuestion(domain.QuestionMultipleChoice)},
	}
}

func newQuestion(qType domain.QuestionType) domain.Question {
	q := domain.Question{
		ID:   util.NewULID(),
		Type: qType,
	}
	switch qType {
	case domain.QuestionMultipleChoice:
		q.Options = []string{"", "", "", ""}
		q.CorrectAnswers = []int{0}
	case domain.QuestionShortAnswer:
		q.AcceptableAnswers = []string{""}
	case domain.QuestionForcedRecall:
		q.TableEntries = []domain.TableEntry{}
	}
	return q
}

// SetMetadata sets the challenge-level fields.
func (e *Editor) SetMetadata(title, description, theme string, difficulty domain.Difficulty) {
	e.title = title
	e.description = description
	e.theme = theme
	e.difficulty = difficulty
}

// Questions returns a copy of the current question drafts.
func (e *Editor) Questions() []domain.Question {
	out := make([]domain.Question, len(e.questions))
	copy(out, e.questions)
	return out
}

// AddQuestion appends a fresh question of the given variant and returns its id.
func (e *Editor) AddQuestion(qType domain.QuestionType) string {
	q := newQuestion(qType)
	e.questions = append(e.copyQuestions(), q)
	return q.ID
}

// RemoveQuestion deletes the question at index; the last question cannot be
// removed.
func (e *Editor) RemoveQuestion(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if len(e.questions) == 1 {
		return domain.NewInvalidInputError("a challenge needs at least one question")
	}
	next := make([]domain.Question, 0, len(e.questions)-1)
	next = append(next, e.questions[:index]...)
	next = append(next, e.questions[index+1:]...)
	e.questions = next
	return nil
}

// SetQuestionType changes a question's variant. The stable id is preserved;
// all type-specific fields of the old variant are discarded and the new
// variant's defaults take their place.
func (e *Editor) SetQuestionType(index int, qType domain.QuestionType) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if e.questions[index].Type == qType {
		return nil
	}
	replacement := newQuestion(qType)
	replacement.ID = e.questions[index].ID
	e.updateQuestion(index, replacement)
	return nil
}

// SetQuestionText sets the prompt of the question at index.
func (e *Editor) SetQuestionText(index int, text string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	q := e.questions[index]
	q.Text = text
	e.updateQuestion(index, q)
	return nil
}

// SetOption replaces one option's text on a multiple-choice question.
func (e *Editor) SetOption(index, optionIndex int, text string) error {
	q, err := e.multipleChoiceAt(index)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return domain.NewInvalidInputError("option index out of range")
	}
	options := append([]string(nil), q.Options...)
	options[optionIndex] = text
	q.Options = options
	e.updateQuestion(index, q)
	return nil
}

// AddOption appends an empty option to a multiple-choice question.
func (e *Editor) AddOption(index int) error {
	q, err := e.multipleChoiceAt(index)
	if err != nil {
		return err
	}
	q.Options = append(append([]string(nil), q.Options...), "")
	e.updateQuestion(index, q)
	return nil
}

// RemoveOption deletes one option and re-indexes the correct-answer set:
// indices above the removed slot shift down by one, and the removed index is
// dropped if it was marked correct.
func (e *Editor) RemoveOption(index, optionIndex int) error {
	q, err := e.multipleChoiceAt(index)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return domain.NewInvalidInputError("option index out of range")
	}
	if len(q.Options) <= 2 {
		return domain.NewInvalidInputError("a multiple-choice question needs at least two options")
	}

	options := make([]string, 0, len(q.Options)-1)
	options = append(options, q.Options[:optionIndex]...)
	options = append(options, q.Options[optionIndex+1:]...)
	q.Options = options

	reindexed := make([]int, 0, len(q.CorrectAnswers))
	for _, idx := range q.CorrectAnswers {
		switch {
		case idx == optionIndex:
			// dropped with its option
		case idx > optionIndex:
			reindexed = append(reindexed, idx-1)
		default:
			reindexed = append(reindexed, idx)
		}
	}
	q.CorrectAnswers = reindexed
	e.updateQuestion(index, q)
	return nil
}

// SetCorrectAnswers replaces the correct-answer index set of a
// multiple-choice question.
func (e *Editor) SetCorrectAnswers(index int, indices ...int) error {
	q, err := e.multipleChoiceAt(index)
	if err != nil {
		return err
	}
	q.CorrectAnswers = append([]int(nil), indices...)
	e.updateQuestion(index, q)
	return nil
}

// SetAcceptableAnswers replaces the acceptable-answer set of a short-answer
// question.
func (e *Editor) SetAcceptableAnswers(index int, answers ...string) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	q := e.questions[index]
	if q.Type != domain.QuestionShortAnswer {
		return domain.NewInvalidInputError("question is not short-answer")
	}
	q.AcceptableAnswers = append([]string(nil), answers...)
	e.updateQuestion(index, q)
	return nil
}

// SetTableInfo sets the table title and description of a forced-recall
// question.
func (e *Editor) SetTableInfo(index int, title, description string) error {
	q, err := e.forcedRecallAt(index)
	if err != nil {
		return err
	}
	q.TableTitle = title
	q.TableDescription = description
	e.updateQuestion(index, q)
	return nil
}

// AddTableEntry appends a table entry with a fresh entry id and returns it.
func (e *Editor) AddTableEntry(index int) (string, error) {
	q, err := e.forcedRecallAt(index)
	if err != nil {
		return "", err
	}
	entry := domain.TableEntry{
		EntryID:           util.NewULID(),
		AcceptableAnswers: []string{""},
		Points:            defaultEntryPoints,
	}
	q.TableEntries = append(append([]domain.TableEntry(nil), q.TableEntries...), entry)
	e.updateQuestion(index, q)
	return entry.EntryID, nil
}

// UpdateTableEntry replaces label, acceptable answers, and points of one entry.
func (e *Editor) UpdateTableEntry(index int, entryID, label string, acceptable []string, points int) error {
	q, err := e.forcedRecallAt(index)
	if err != nil {
		return err
	}
	if points < 0 {
		return domain.NewInvalidInputError("points must not be negative")
	}
	entries := append([]domain.TableEntry(nil), q.TableEntries...)
	for i, entry := range entries {
		if entry.EntryID == entryID {
			entries[i].Label = label
			entries[i].AcceptableAnswers = append([]string(nil), acceptable...)
			entries[i].Points = points
			q.TableEntries = entries
			e.updateQuestion(index, q)
			return nil
		}
	}
	return domain.NewInvalidInputError("table entry not found")
}

// RemoveTableEntry deletes the entry with the given id.
func (e *Editor) RemoveTableEntry(index int, entryID string) error {
	q, err := e.forcedRecallAt(index)
	if err != nil {
		return err
	}
	entries := make([]domain.TableEntry, 0, len(q.TableEntries))
	for _, entry := range q.TableEntries {
		if entry.EntryID != entryID {
			entries = append(entries, entry)
		}
	}
	q.TableEntries = entries
	e.updateQuestion(index, q)
	return nil
}

// Build validates the draft and produces the challenge. The draft stays
// editable after a failed build.
func (e *Editor) Build(creatorUID string) (*domain.Challenge, error) {
	challenge := domain.NewChallenge(e.title, e.description, e.theme, e.difficulty, creatorUID, e.Questions())
	if err := challenge.Validate(); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (e *Editor) checkIndex(index int) error {
	if index < 0 || index >= len(e.questions) {
		return domain.NewInvalidInputError("question index out of range")
	}
	return nil
}

func (e *Editor) multipleChoiceAt(index int) (domain.Question, error) {
	if err := e.checkIndex(index); err != nil {
		return domain.Question{}, err
	}
	q := e.questions[index]
	if q.Type != domain.QuestionMultipleChoice {
		return domain.Question{}, domain.NewInvalidInputError("question is not multiple-choice")
	}
	return q, nil
}

func (e *Editor) forcedRecallAt(index int) (domain.Question, error) {
	if err := e.checkIndex(index); err != nil {
		return domain.Question{}, err
	}
	q := e.questions[index]
	if q.Type != domain.QuestionForcedRecall {
		return domain.Question{}, domain.NewInvalidInputError("question is not forced-recall")
	}
	return q, nil
}

func (e *Editor) copyQuestions() []domain.Question {
	out := make([]domain.Question, len(e.questions))
	copy(out, e.questions)
	return out
}

func (e *Editor) updateQuestion(index int, q domain.Question) {
	next := e.copyQuestions()
	next[index] = q
	e.questions = next
}
