package domain

import "time"

// Identity is the opaque user identity handed to us by the auth collaborator.
// It is passed through to the attempt service and never interpreted here.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// Anonymous reports whether no identity was provided.
func (i Identity) Anonymous() bool {
	return i.UID == ""
}

// UserProfile accumulates a user's rewards across attempts.
type UserProfile struct {
	UID                 string
	Email               string
	DisplayName         string
	TotalXP             int
	ChallengesCompleted int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewUserProfile creates a new UserProfile instance
func NewUserProfile(uid, email, displayName string) *UserProfile {
	now := time.Now()
	if displayName == "" {
		displayName = "Anonymous"
	}
	return &UserProfile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
