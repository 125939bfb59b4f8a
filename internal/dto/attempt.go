package dto

// SubmittedAnswer is the wire form of one answer. Exactly one of the payload
// fields is set, depending on the question variant: single-answer multiple
// choice sends the selected option text (legacy compatibility), multi-answer
// sends the selected index set, short answer sends the trimmed text, and
// forced recall sends the entryID -> input mapping.
type SubmittedAnswer struct {
	QuestionID      string            `json:"question_id"`
	Text            string            `json:"text,omitempty"`
	SelectedIndices []int             `json:"selected_indices,omitempty"`
	TableEntries    map[string]string `json:"table_entries,omitempty"`
	TimeSpent       int               `json:"time_spent"`
}

// CreateAttemptRequest is the submission payload for a completed run.
type CreateAttemptRequest struct {
	UserUID          string            `json:"user_uid"`
	Email            string            `json:"email"`
	DisplayName      string            `json:"display_name"`
	ChallengeID      string            `json:"challenge_id"`
	SubmittedAnswers []SubmittedAnswer `json:"submitted_answers"`
	TotalTime        int               `json:"total_time"`
}

// XPBreakdownResponse mirrors the server-computed reward structure.
type XPBreakdownResponse struct {
	BaseXP               int     `json:"base_xp"`
	DifficultyMultiplier float64 `json:"difficulty_multiplier"`
	FirstTimeBonus       int     `json:"first_time_bonus"`
	PerfectBonus         int     `json:"perfect_bonus"`
	TotalXP              int     `json:"total_xp"`
}

// AttemptResponse represents a graded attempt in the API response
type AttemptResponse struct {
	ID          string              `json:"id"`
	ChallengeID string              `json:"challenge_id"`
	Score       int                 `json:"score"`
	XPEarned    int                 `json:"xp_earned"`
	XPBreakdown XPBreakdownResponse `json:"xp_breakdown"`
	NewTotalXP  *int                `json:"new_total_xp,omitempty"`
}
