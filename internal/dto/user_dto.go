package dto

// UserProfileResponse represents a user profile in the API response
type UserProfileResponse struct {
	UID                 string `json:"uid"`
	Email               string `json:"email"`
	DisplayName         string `json:"display_name"`
	TotalXP             int    `json:"total_xp"`
	ChallengesCompleted int    `json:"challenges_completed"`
}

// LeaderboardEntryResponse is one row of the XP leaderboard view.
type LeaderboardEntryResponse struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"display_name"`
	TotalXP     int    `json:"total_xp"`
}

// LeaderboardResponse wraps the top-N XP listing.
type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries"`
}
