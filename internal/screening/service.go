package screening

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aura-backend/internal/models"
	"aura-backend/internal/store"
)

// DefaultCooldown is the minimum gap between completed screenings.
const DefaultCooldown = 24 * time.Hour

// placeholderSessionID stands in for the post-screening chat session when
// the store cannot create one; completion is still reported.
const placeholderSessionID = "pending-session"

const completionMessage = "Thank you for completing your check-in. Let's start a fresh conversation."

// CooldownError rejects a screening attempt inside the cooldown window. It
// is distinct from validation errors so clients can special-case it.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	if e.Remaining > 0 {
		h := int(e.Remaining.Hours())
		m := int(e.Remaining.Minutes()) % 60
		return fmt.Sprintf("You can take a new screening in %dh %dm", h, m)
	}
	return "You can take a new screening every 24 hours. Please try again later."
}

type Service struct {
	store    store.Store
	log      *slog.Logger
	cooldown time.Duration
	now      func() time.Time
}

func NewService(st store.Store, log *slog.Logger) *Service {
	return &Service{
		store:    st,
		log:      log,
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
}

// TurnResult is the response to one screening submission: either the next
// question or the completion message with the fresh chat session id.
type TurnResult struct {
	Done bool `json:"-"`

	Question        string   `json:"question,omitempty"`
	Options         []string `json:"options,omitempty"`
	CurrentQuestion int      `json:"currentQuestion,omitempty"`
	TotalQuestions  int      `json:"totalQuestions,omitempty"`

	Message   string `json:"message,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// CanTakeScreening reports whether the user is outside the cooldown window.
// A failed state read permits the screening: access is favored over strict
// gating when storage is unhealthy.
func (s *Service) CanTakeScreening(ctx context.Context, userID string) bool {
	st, err := s.store.GetUserState(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("screening eligibility check failed, allowing", "user_id", userID, "error", err)
		}
		return true
	}
	if st.LastScreeningTimestamp == nil {
		return true
	}
	return s.now().Sub(*st.LastScreeningTimestamp) >= s.cooldown
}

// Eligibility returns the cooldown verdict with a human-readable message.
func (s *Service) Eligibility(ctx context.Context, userID string) (bool, string) {
	if s.CanTakeScreening(ctx, userID) {
		return true, "You can take a screening now."
	}
	return false, s.cooldownError(ctx, userID).Error()
}

func (s *Service) cooldownError(ctx context.Context, userID string) *CooldownError {
	st, err := s.store.GetUserState(ctx, userID)
	if err != nil || st.LastScreeningTimestamp == nil {
		return &CooldownError{}
	}
	remaining := s.cooldown - s.now().Sub(*st.LastScreeningTimestamp)
	if remaining < 0 {
		remaining = 0
	}
	return &CooldownError{Remaining: remaining}
}

// SubmitTurn drives the screening state machine for one user submission.
// A nil answerIndex is the explicit restart signal: any in-progress session
// is replaced by a fresh one rather than erroring.
func (s *Service) SubmitTurn(ctx context.Context, userID string, age int, answerIndex *int) (*TurnResult, error) {
	if !s.CanTakeScreening(ctx, userID) {
		return nil, s.cooldownError(ctx, userID)
	}

	restart := answerIndex == nil
	sess, err := s.store.GetScreeningSession(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load screening session: %w", err)
	}

	if errors.Is(err, store.ErrNotFound) || restart {
		sess = &models.ScreeningSession{
			UserID:    userID,
			Questions: ResolveQuestions(age, s.currentInsights(ctx, userID)),
			Scores:    map[string]int{},
			StartedAt: s.now(),
		}
	} else {
		s.recordAnswer(sess, answerIndex)
	}

	index := sess.CurrentQuestionIndex
	if index >= len(sess.Questions) {
		return s.finalize(ctx, sess)
	}

	sess.CurrentQuestionIndex = index + 1
	if err := s.store.SetScreeningSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save screening session: %w", err)
	}

	return &TurnResult{
		Question:        sess.Questions[index].Text,
		Options:         ResponseOptions,
		CurrentQuestion: index + 1,
		TotalQuestions:  len(sess.Questions),
	}, nil
}

// currentInsights reads the analyzer tags present at screening start.
// Missing state or a read failure yields no conditional questions.
func (s *Service) currentInsights(ctx context.Context, userID string) []string {
	st, err := s.store.GetUserState(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("could not read insights for screening", "user_id", userID, "error", err)
		}
		return nil
	}
	return st.Insights
}

// recordAnswer stores the answer to the previously presented question,
// clamping a missing value to 0.
func (s *Service) recordAnswer(sess *models.ScreeningSession, answerIndex *int) {
	index := sess.CurrentQuestionIndex
	if index <= 0 || index > len(sess.Questions) {
		return
	}
	answer := 0
	if answerIndex != nil {
		answer = *answerIndex
	}
	if answer < 0 {
		answer = 0
	}
	if answer > maxAnswerScore {
		answer = maxAnswerScore
	}
	if sess.Scores == nil {
		sess.Scores = map[string]int{}
	}
	sess.Scores[sess.Questions[index-1].ID] = answer
}

// finalize derives the metrics record, overwrites the user's long-term
// state, clears consumed insight tags and opens a fresh conversation
// session. The metrics write is authoritative: it is retried once and the
// error surfaced if both attempts fail.
func (s *Service) finalize(ctx context.Context, sess *models.ScreeningSession) (*TurnResult, error) {
	metrics := DeriveMetrics(sess.Scores)
	completedAt := s.now()

	patch := models.UserStatePatch{
		Metrics:                &metrics,
		LastScreeningTimestamp: &completedAt,
		ClearInsights:          true,
	}
	if err := s.store.MergeUserState(ctx, sess.UserID, patch); err != nil {
		s.log.Error("metrics write failed, retrying", "user_id", sess.UserID, "error", err)
		if err := s.store.MergeUserState(ctx, sess.UserID, patch); err != nil {
			return nil, fmt.Errorf("persist screening metrics: %w", err)
		}
	}
	s.log.Info("screening completed", "user_id", sess.UserID,
		"overall", metrics.OverallMentalHealth, "status", metrics.Status)

	sessionID := placeholderSessionID
	if chat, err := s.store.CreateSession(ctx, sess.UserID); err != nil {
		s.log.Error("could not create post-screening session", "user_id", sess.UserID, "error", err)
	} else {
		sessionID = chat.ID
	}

	if err := s.store.DeleteScreeningSession(ctx, sess.UserID); err != nil {
		s.log.Error("could not delete screening session", "user_id", sess.UserID, "error", err)
	}

	return &TurnResult{
		Done:      true,
		Message:   completionMessage,
		SessionID: sessionID,
	}, nil
}
