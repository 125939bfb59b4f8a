package attempt

import "quizquest/internal/domain"

// EstimateScore computes the client-side percentage estimate for a set of
// answers. Each exact-match variant contributes 0 or 1; forced-recall
// contributes its fractional credit. The value is advisory only: the server
// recomputes the score on submission and may round partial credit differently,
// so the two can legitimately diverge.
func EstimateScore(challenge *domain.Challenge, answers []domain.Answer) float64 {
	if challenge == nil || len(challenge.Questions) == 0 {
		return 0
	}

	var earned float64
	for i, q := range challenge.Questions {
		if i >= len(answers) {
			break
		}
		earned += q.Score(answers[i])
	}
	return earned / float64(len(challenge.Questions)) * 100
}
