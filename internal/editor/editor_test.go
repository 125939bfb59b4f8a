package editor

import (
	"testing"

	"quizquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEditorStartsWithOneDefaultQuestion(t *testing.T) {
	e := NewEditor()

	questions := e.Questions()
	require.Len(t, questions, 1)
	q := questions[0]
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, domain.QuestionMultipleChoice, q.Type)
	assert.Len(t, q.Options, 4)
	assert.Equal(t, []int{0}, q.CorrectAnswers)
}

func TestTypeChangePreservesIDAndResetsFields(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.SetQuestionText(0, "Capital of France?"))
	require.NoError(t, e.SetOption(0, 0, "Paris"))

	originalID := e.Questions()[0].ID

	require.NoError(t, e.SetQuestionType(0, domain.QuestionShortAnswer))
	q := e.Questions()[0]
	assert.Equal(t, originalID, q.ID, "the id must survive a type change")
	assert.Equal(t, domain.QuestionShortAnswer, q.Type)
	assert.Empty(t, q.Options, "old variant fields are discarded")
	assert.Empty(t, q.CorrectAnswers)
	assert.Empty(t, q.Text)

	require.NoError(t, e.SetQuestionType(0, domain.QuestionMultipleChoice))
	q = e.Questions()[0]
	assert.Equal(t, originalID, q.ID)
	assert.Len(t, q.Options, 4)
}

func TestRemoveOptionReindexesCorrectAnswers(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.SetCorrectAnswers(0, 1, 3))

	// Removing option 1 drops it from the correct set and shifts 3 down to 2.
	require.NoError(t, e.RemoveOption(0, 1))
	q := e.Questions()[0]
	assert.Len(t, q.Options, 3)
	assert.Equal(t, []int{2}, q.CorrectAnswers)
}

func TestRemoveOptionKeepsAtLeastTwo(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.RemoveOption(0, 3))
	require.NoError(t, e.RemoveOption(0, 2))
	assert.Error(t, e.RemoveOption(0, 1))
	assert.Len(t, e.Questions()[0].Options, 2)
}

func TestRemoveQuestionKeepsAtLeastOne(t *testing.T) {
	e := NewEditor()
	assert.Error(t, e.RemoveQuestion(0))

	e.AddQuestion(domain.QuestionShortAnswer)
	require.NoError(t, e.RemoveQuestion(0))

	questions := e.Questions()
	require.Len(t, questions, 1)
	assert.Equal(t, domain.QuestionShortAnswer, questions[0].Type)
}

func TestTableEntryLifecycle(t *testing.T) {
	e := NewEditor()
	require.NoError(t, e.SetQuestionType(0, domain.QuestionForcedRecall))
	require.NoError(t, e.SetQuestionText(0, "Name the Benelux countries"))
	require.NoError(t, e.SetTableInfo(0, "Benelux", "one per row"))

	entryID, err := e.AddTableEntry(0)
	require.NoError(t, err)
	require.NotEmpty(t, entryID)

	q := e.Questions()[0]
	require.Len(t, q.TableEntries, 1)
	assert.Equal(t, defaultEntryPoints, q.TableEntries[0].Points)

	require.NoError(t, e.UpdateTableEntry(0, entryID, "B", []string{"Belgium"}, 15))
	entry := e.Questions()[0].TableEntries[0]
	assert.Equal(t, "B", entry.Label)
	assert.Equal(t, []string{"Belgium"}, entry.AcceptableAnswers)
	assert.Equal(t, 15, entry.Points)

	assert.Error(t, e.UpdateTableEntry(0, "missing", "x", nil, 1))
	assert.Error(t, e.UpdateTableEntry(0, entryID, "B", nil, -1))

	require.NoError(t, e.RemoveTableEntry(0, entryID))
	assert.Empty(t, e.Questions()[0].TableEntries)
}

func TestVariantGuards(t *testing.T) {
	e := NewEditor()
	_, err := e.AddTableEntry(0)
	assert.Error(t, err, "table ops only apply to forced-recall questions")

	require.NoError(t, e.SetQuestionType(0, domain.QuestionForcedRecall))
	assert.Error(t, e.AddOption(0), "option ops only apply to multiple-choice questions")
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	e := NewEditor()
	before := e.Questions()

	require.NoError(t, e.SetOption(0, 0, "changed"))

	assert.Equal(t, "", before[0].Options[0], "earlier snapshot must not see later edits")
}

func TestBuildValidatesAndLeavesDraftEditable(t *testing.T) {
	e := NewEditor()
	e.SetMetadata("Europe", "basics", "geography", domain.DifficultyEasy)

	// Default question has empty options, invalid.
	_, err := e.Build("creator")
	require.Error(t, err)

	require.NoError(t, e.SetQuestionText(0, "Capital of France?"))
	for i, opt := range []string{"London", "Paris", "Berlin", "Madrid"} {
		require.NoError(t, e.SetOption(0, i, opt))
	}
	require.NoError(t, e.SetCorrectAnswers(0, 1))

	challenge, err := e.Build("creator")
	require.NoError(t, err)
	assert.Equal(t, "Europe", challenge.Title)
	assert.Equal(t, "creator", challenge.CreatorUID)
	assert.True(t, challenge.IsPublished)
	require.Len(t, challenge.Questions, 1)
}
