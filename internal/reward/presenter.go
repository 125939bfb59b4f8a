package reward

import (
	"fmt"
	"math"

	"quizquest/internal/domain"
)

// Line is one rendered row of the reward breakdown.
type Line struct {
	Label string
	Value string
	Bonus bool
}

// Summary is the deterministic rendering of a completed attempt: the score,
// the XP lines, and the frozen completion time. It is a pure view over
// server-trusted data; no bonus eligibility is recomputed here.
type Summary struct {
	Score          int
	ScoreEstimated bool
	TotalXP        int
	Lines          []Line
	ElapsedSeconds int
}

// BuildSummary renders the server-supplied breakdown. The server score is
// authoritative whenever present; the local estimate is used only as a
// fallback and is marked as such. Bonus lines appear only when their value is
// strictly positive; total and base-times-multiplier always appear.
func BuildSummary(breakdown domain.XPBreakdown, serverScore *int, estimate float64, elapsedSeconds int) Summary {
	s := Summary{
		TotalXP:        breakdown.TotalXP,
		ElapsedSeconds: elapsedSeconds,
	}

	if serverScore != nil {
		s.Score = *serverScore
	} else {
		s.Score = int(math.Round(estimate))
		s.ScoreEstimated = true
	}

	s.Lines = append(s.Lines,
		Line{Label: "Base XP", Value: fmt.Sprintf("%d XP", breakdown.BaseXP)},
		Line{Label: "Difficulty Bonus", Value: fmt.Sprintf("x%.1f", breakdown.DifficultyMultiplier)},
	)
	if breakdown.FirstTimeBonus > 0 {
		s.Lines = append(s.Lines, Line{Label: "First Time Bonus", Value: fmt.Sprintf("+%d XP", breakdown.FirstTimeBonus), Bonus: true})
	}
	if breakdown.PerfectBonus > 0 {
		s.Lines = append(s.Lines, Line{Label: "Perfect Score Bonus", Value: fmt.Sprintf("+%d XP", breakdown.PerfectBonus), Bonus: true})
	}
	s.Lines = append(s.Lines, Line{Label: "Total", Value: fmt.Sprintf("%d XP", breakdown.TotalXP)})
	return s
}

// FormatElapsed renders whole seconds as "3m 42s" or "42s".
func FormatElapsed(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}
