package attempt

import (
	"testing"

	"quizquest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedChallenge() *domain.Challenge {
	return &domain.Challenge{
		ID:         "c1",
		Title:      "Mixed",
		Difficulty: domain.DifficultyHard,
		Questions: []domain.Question{
			{
				ID:             "q1",
				Type:           domain.QuestionMultipleChoice,
				Text:           "Capital of France?",
				Options:        []string{"London", "Paris"},
				CorrectAnswers: []int{1},
			},
			{
				ID:             "q2",
				Type:           domain.QuestionMultipleChoice,
				Text:           "Which are prime?",
				Options:        []string{"4", "3", "6", "7"},
				CorrectAnswers: []int{1, 3},
			},
			{
				ID:                "q3",
				Type:              domain.QuestionShortAnswer,
				Text:              "Capital of Japan?",
				AcceptableAnswers: []string{"Tokyo"},
			},
			{
				ID:   "q4",
				Type: domain.QuestionForcedRecall,
				Text: "Benelux",
				TableEntries: []domain.TableEntry{
					{EntryID: "e1", Label: "B", AcceptableAnswers: []string{"Belgium"}, Points: 10},
					{EntryID: "e2", Label: "N", AcceptableAnswers: []string{"Netherlands"}, Points: 20},
				},
			},
		},
	}
}

func TestBuildSubmissionPayloadShapes(t *testing.T) {
	challenge := mixedChallenge()
	answers := []domain.Answer{
		domain.NewSingleChoiceAnswer(1),
		domain.NewMultiChoiceAnswer(3, 1),
		domain.NewShortAnswer("  Tokyo  "),
		domain.NewForcedRecallAnswer(map[string]string{"e1": "Belgium"}),
	}

	payload := BuildSubmission(challenge, answers)
	require.Len(t, payload, 4)

	// Single-answer multiple choice sends the option text, not the index.
	assert.Equal(t, "q1", payload[0].QuestionID)
	assert.Equal(t, "Paris", payload[0].Text)
	assert.Nil(t, payload[0].SelectedIndices)

	// Multi-answer sends the index set in ascending order.
	assert.Equal(t, []int{1, 3}, payload[1].SelectedIndices)
	assert.Empty(t, payload[1].Text)

	assert.Equal(t, "Tokyo", payload[2].Text)

	assert.Equal(t, map[string]string{"e1": "Belgium"}, payload[3].TableEntries)
	assert.Zero(t, payload[3].TimeSpent)
}

func TestBuildSubmissionHandlesMissingAnswers(t *testing.T) {
	challenge := mixedChallenge()

	payload := BuildSubmission(challenge, []domain.Answer{domain.NewSingleChoiceAnswer(0)})
	require.Len(t, payload, 4)
	assert.Equal(t, "London", payload[0].Text)
	for _, wire := range payload[1:] {
		assert.Empty(t, wire.Text)
		assert.Nil(t, wire.SelectedIndices)
		assert.Nil(t, wire.TableEntries)
	}
}

func TestBuildSubmissionCopiesTableEntries(t *testing.T) {
	challenge := mixedChallenge()
	answer := domain.NewForcedRecallAnswer(map[string]string{"e1": "Belgium"})
	answers := []domain.Answer{{Type: domain.QuestionMultipleChoice}, {Type: domain.QuestionMultipleChoice}, {Type: domain.QuestionShortAnswer}, answer}

	payload := BuildSubmission(challenge, answers)
	payload[3].TableEntries["e1"] = "mutated"

	assert.Equal(t, "Belgium", answer.TableEntries["e1"], "payload must not alias the committed answer")
}

func TestEstimateScore(t *testing.T) {
	challenge := mixedChallenge()
	answers := []domain.Answer{
		domain.NewSingleChoiceAnswer(1),                                  // correct
		domain.NewMultiChoiceAnswer(1),                                   // subset, no credit
		domain.NewShortAnswer("Kyoto"),                                   // wrong
		domain.NewForcedRecallAnswer(map[string]string{"e1": "Belgium"}), // 10 of 30 points
	}

	// (1 + 0 + 0 + 1/3) / 4 * 100
	assert.InDelta(t, 100.0/3.0, EstimateScore(challenge, answers), 1e-9)

	assert.Zero(t, EstimateScore(nil, answers))
	assert.Zero(t, EstimateScore(&domain.Challenge{}, answers))
	assert.Zero(t, EstimateScore(challenge, nil))
}
