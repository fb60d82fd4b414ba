package chat

import (
	"context"
	"errors"

	"aura-backend/internal/models"
	"aura-backend/internal/store"
)

// resolveSession finds the session a turn belongs to: the client-supplied
// id when it still exists, else the user's most recent session, else a new
// one. An empty result means persistence is unavailable for this turn; the
// turn itself must still be answered.
func (s *Service) resolveSession(ctx context.Context, userID, providedID string) string {
	if providedID != "" {
		if _, err := s.store.GetSession(ctx, providedID); err == nil {
			return providedID
		} else if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("could not verify provided session", "session_id", providedID, "error", err)
		}
	}

	if latest, err := s.store.LatestSessionForUser(ctx, userID); err == nil {
		return latest.ID
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("could not find latest session", "user_id", userID, "error", err)
	}

	created, err := s.store.CreateSession(ctx, userID)
	if err != nil {
		s.log.Error("could not create session", "user_id", userID, "error", err)
		return ""
	}
	return created.ID
}

// persistTurn appends a turn to the transcript; failures are logged, never
// surfaced, since persistence is supporting behavior for a chat turn.
func (s *Service) persistTurn(ctx context.Context, sessionID string, turn models.ChatTurn) {
	if sessionID == "" {
		return
	}
	if err := s.store.AppendTurn(ctx, sessionID, turn); err != nil {
		s.log.Error("could not store chat turn", "session_id", sessionID, "error", err)
	}
}

// contextWindow returns up to historyTurns completed turns, oldest first.
// A failed read yields an empty window.
func (s *Service) contextWindow(ctx context.Context, sessionID string) []models.ChatTurn {
	if sessionID == "" {
		return nil
	}
	turns, err := s.store.RecentTurns(ctx, sessionID, historyTurns)
	if err != nil {
		s.log.Warn("could not retrieve chat history", "session_id", sessionID, "error", err)
		return nil
	}
	// Newest-first from the store; the prompt wants chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns
}
