// Package store defines the document-store collaborator used by every
// stateful component, plus an in-memory and a Postgres implementation.
package store

import (
	"context"
	"errors"

	"aura-backend/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("store: not found")

type Store interface {
	// User states. Set is a full overwrite; Merge is a partial update whose
	// patch carries the field-deletion sentinel for analyzer annotations.
	GetUserState(ctx context.Context, userID string) (*models.UserState, error)
	SetUserState(ctx context.Context, st *models.UserState) error
	MergeUserState(ctx context.Context, userID string, patch models.UserStatePatch) error
	DeleteUserState(ctx context.Context, userID string) error
	ListUserStates(ctx context.Context) ([]*models.UserState, error)

	// Screening sessions, one active record per user.
	GetScreeningSession(ctx context.Context, userID string) (*models.ScreeningSession, error)
	SetScreeningSession(ctx context.Context, s *models.ScreeningSession) error
	DeleteScreeningSession(ctx context.Context, userID string) error

	// Conversation sessions and their transcripts.
	CreateSession(ctx context.Context, userID string) (*models.ConversationSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.ConversationSession, error)
	LatestSessionForUser(ctx context.Context, userID string) (*models.ConversationSession, error)
	ListSessionsForUser(ctx context.Context, userID string) ([]*models.ConversationSession, error)
	AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error
	// RecentTurns returns up to limit turns of one session, newest first.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error)
	// Turns returns the full transcript of one session, oldest first.
	Turns(ctx context.Context, sessionID string) ([]models.ChatTurn, error)
	// RecentUserTurns returns up to limit turns across all of a user's
	// sessions, newest first. Used by the batch analyzer.
	RecentUserTurns(ctx context.Context, userID string, limit int) ([]models.ChatTurn, error)

	AddFeedback(ctx context.Context, fb models.Feedback) error
}
