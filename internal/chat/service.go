// Package chat routes each inbound turn to the right agent and runs the
// tone-progressive conversational responder.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aura-backend/internal/genai"
	"aura-backend/internal/models"
	"aura-backend/internal/resources"
	"aura-backend/internal/safety"
	"aura-backend/internal/store"
)

// Agent tags carried on every reply so clients know which subsystem
// produced it.
const (
	AgentCrisis         = "crisis"
	AgentResource       = "resource"
	AgentConversational = "conversational"
)

// ResourceFinder is the resource-lookup collaborator.
type ResourceFinder func(query, region string) resources.Result

type Service struct {
	store store.Store
	gen   genai.Generator // nil when no back end is configured
	find  ResourceFinder
	log   *slog.Logger
	now   func() time.Time
}

func NewService(st store.Store, gen genai.Generator, find ResourceFinder, log *slog.Logger) *Service {
	return &Service{
		store: st,
		gen:   gen,
		find:  find,
		log:   log,
		now:   time.Now,
	}
}

// TurnResponse is the reply to one inbound message.
type TurnResponse struct {
	Agent              string          `json:"agent"`
	Response           string          `json:"response"`
	SessionID          string          `json:"sessionId,omitempty"`
	ResourceData       json.RawMessage `json:"resource_data,omitempty"`
	ShowResourceButton bool            `json:"show_resource_button,omitempty"`
}

// HandleTurn dispatches one user message. Order matters and first match
// wins: crisis, explicit helpline ask, resource intent, conversation. The
// crisis branch touches no storage so it stays available under any outage.
func (s *Service) HandleTurn(ctx context.Context, userID, message, sessionID, region string) (*TurnResponse, error) {
	if userID == "" || message == "" {
		return nil, errors.New("userId and message are required")
	}

	if safety.IsCrisisMessage(message) {
		s.log.Info("crisis trigger detected", "user_id", userID, "region", region)
		return &TurnResponse{
			Agent:    AgentCrisis,
			Response: safety.FormatHelplineResponse(safety.HelplinesForRegion(region), true),
		}, nil
	}

	if safety.IsHelplineAsk(message) {
		return &TurnResponse{
			Agent:    AgentCrisis,
			Response: safety.FormatHelplineResponse(safety.HelplinesForRegion(region), false),
		}, nil
	}

	if resources.IsResourceRequest(message) {
		return s.handleResourceTurn(ctx, userID, message, sessionID, region), nil
	}

	return s.handleConversationalTurn(ctx, userID, message, sessionID), nil
}

// handleResourceTurn normalizes the lookup's tagged result into one reply
// shape and records the turn under the resource agent's identity.
func (s *Service) handleResourceTurn(ctx context.Context, userID, message, sessionID, region string) *TurnResponse {
	result := s.find(message, region)

	var responseText string
	var payload json.RawMessage
	var payloadErr error
	switch result.Kind {
	case resources.KindSingle:
		responseText = fmt.Sprintf("I found a helpful resource for you: %s. ", result.Item.Title)
		if result.Item.Description != "" {
			responseText += result.Item.Description + " "
		}
		responseText += "Click the button below to see the detailed steps and instructions."
		payload, payloadErr = json.Marshal(result.Item)
	case resources.KindList:
		responseText = "I found several helpful resources for you. Click the button below to access them."
		payload, payloadErr = json.Marshal(map[string]any{"type": "list", "items": result.Items})
	case resources.KindText:
		responseText = result.Text
		payload, payloadErr = json.Marshal(map[string]string{"type": "text", "text": result.Text})
	}
	if payloadErr != nil {
		s.log.Warn("could not encode resource payload", "user_id", userID, "error", payloadErr)
	}

	resolved := s.resolveSession(ctx, userID, sessionID)
	s.persistTurn(ctx, resolved, models.ChatTurn{
		UserMessage:  &message,
		AIResponse:   responseText,
		AgentTag:     AgentResource,
		ResourceData: payload,
		Timestamp:    s.now(),
	})

	return &TurnResponse{
		Agent:              AgentResource,
		Response:           responseText,
		SessionID:          resolved,
		ResourceData:       payload,
		ShowResourceButton: true,
	}
}

// handleConversationalTurn runs the bounded-history prompt against the
// generation back end, falling back to the deterministic responder, and
// sanitizes whatever came back.
func (s *Service) handleConversationalTurn(ctx context.Context, userID, message, sessionID string) *TurnResponse {
	resolved := s.resolveSession(ctx, userID, sessionID)
	window := s.contextWindow(ctx, resolved)

	prompt := buildChatPrompt(window, message)

	var reply string
	if s.gen != nil {
		generated, err := s.gen.Generate(ctx, prompt)
		if err != nil {
			s.log.Warn("generation failed, using fallback responder", "user_id", userID, "error", err)
		} else {
			reply = generated
		}
	}
	if reply == "" {
		firstContact := true
		for _, t := range window {
			if t.UserMessage != nil {
				firstContact = false
				break
			}
		}
		reply = fallbackReply(message, firstContact)
	}
	reply = SanitizeReply(reply)

	s.persistTurn(ctx, resolved, models.ChatTurn{
		UserMessage: &message,
		AIResponse:  reply,
		AgentTag:    AgentConversational,
		Timestamp:   s.now(),
	})

	return &TurnResponse{
		Agent:     AgentConversational,
		Response:  reply,
		SessionID: resolved,
	}
}

// Greeting produces a metrics-aware opener and records it as a
// system-initiated turn (no user message).
func (s *Service) Greeting(ctx context.Context, userID string) (*TurnResponse, error) {
	if userID == "" {
		return nil, errors.New("userId is required")
	}

	var metrics *models.MetricsRecord
	if st, err := s.store.GetUserState(ctx, userID); err == nil {
		metrics = st.Metrics
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("could not read metrics for greeting", "user_id", userID, "error", err)
	}

	prompt := buildGreetingPrompt(metrics)
	var reply string
	if s.gen != nil {
		generated, err := s.gen.Generate(ctx, prompt)
		if err != nil {
			s.log.Warn("greeting generation failed, using fallback", "user_id", userID, "error", err)
		} else {
			reply = generated
		}
	}
	if reply == "" {
		reply = fallbackReply("", true)
	}
	reply = SanitizeReply(reply)

	resolved := s.resolveSession(ctx, userID, "")
	s.persistTurn(ctx, resolved, models.ChatTurn{
		UserMessage: nil,
		AIResponse:  reply,
		AgentTag:    AgentConversational,
		Timestamp:   s.now(),
	})

	return &TurnResponse{
		Agent:     AgentConversational,
		Response:  reply,
		SessionID: resolved,
	}, nil
}

// SessionSummary is one entry in a user's session list.
type SessionSummary struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// ListSessions returns the user's sessions, newest first.
func (s *Service) ListSessions(ctx context.Context, userID string) ([]SessionSummary, error) {
	sessions, err := s.store.ListSessionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]SessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, SessionSummary{
			ID:   sess.ID,
			Date: sess.StartTime.Format("January 2, 2006"),
		})
	}
	return out, nil
}

// Transcript returns a session's full transcript, oldest first.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	return s.store.Turns(ctx, sessionID)
}

// AddFeedback stores a session rating for later analysis.
func (s *Service) AddFeedback(ctx context.Context, userID string, rating int) error {
	return s.store.AddFeedback(ctx, models.Feedback{
		UserID:    userID,
		Rating:    rating,
		Timestamp: s.now(),
	})
}
