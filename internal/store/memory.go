package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aura-backend/internal/models"
)

// MemoryStore is an in-process Store. It backs tests and runs the server
// without a database; it is injected explicitly, never reached for as a
// silent fallback inside other components.
type MemoryStore struct {
	mu         sync.RWMutex
	userStates map[string]*models.UserState
	screenings map[string]*models.ScreeningSession
	sessions   map[string]*models.ConversationSession
	turns      map[string][]models.ChatTurn
	feedback   []models.Feedback
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		userStates: make(map[string]*models.UserState),
		screenings: make(map[string]*models.ScreeningSession),
		sessions:   make(map[string]*models.ConversationSession),
		turns:      make(map[string][]models.ChatTurn),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) GetUserState(ctx context.Context, userID string) (*models.UserState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.userStates[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (m *MemoryStore) SetUserState(ctx context.Context, st *models.UserState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *st
	cp.LastUpdated = time.Now()
	m.userStates[st.UserID] = &cp
	return nil
}

func (m *MemoryStore) MergeUserState(ctx context.Context, userID string, patch models.UserStatePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.userStates[userID]
	if !ok {
		st = &models.UserState{UserID: userID}
		m.userStates[userID] = st
	}
	applyPatch(st, patch)
	st.LastUpdated = time.Now()
	return nil
}

func applyPatch(st *models.UserState, patch models.UserStatePatch) {
	if patch.Metrics != nil {
		st.Metrics = patch.Metrics
	}
	if patch.LastScreeningTimestamp != nil {
		st.LastScreeningTimestamp = patch.LastScreeningTimestamp
	}
	if patch.Insights != nil {
		st.Insights = patch.Insights
	}
	if patch.Recommendations != nil {
		st.Recommendations = patch.Recommendations
	}
	if patch.RiskLevel != nil {
		st.RiskLevel = *patch.RiskLevel
	}
	if patch.AnalysisSummary != nil {
		st.AnalysisSummary = patch.AnalysisSummary
	}
	if patch.ClearInsights {
		st.Insights = nil
		st.Recommendations = nil
		st.RiskLevel = ""
		st.AnalysisSummary = nil
	}
}

func (m *MemoryStore) DeleteUserState(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
	return nil
}

func (m *MemoryStore) ListUserStates(ctx context.Context) ([]*models.UserState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.UserState, 0, len(m.userStates))
	for _, st := range m.userStates {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *MemoryStore) GetScreeningSession(ctx context.Context, userID string) (*models.ScreeningSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.screenings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	cp.Scores = make(map[string]int, len(s.Scores))
	for k, v := range s.Scores {
		cp.Scores[k] = v
	}
	return &cp, nil
}

func (m *MemoryStore) SetScreeningSession(ctx context.Context, s *models.ScreeningSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.screenings[s.UserID] = &cp
	return nil
}

func (m *MemoryStore) DeleteScreeningSession(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.screenings, userID)
	return nil
}

func (m *MemoryStore) CreateSession(ctx context.Context, userID string) (*models.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.ConversationSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: time.Now(),
	}
	m.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) GetSession(ctx context.Context, sessionID string) (*models.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) LatestSessionForUser(ctx context.Context, userID string) (*models.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.ConversationSession
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.StartTime.After(latest.StartTime) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *MemoryStore) ListSessionsForUser(ctx context.Context, userID string) ([]*models.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.ConversationSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (m *MemoryStore) AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	m.turns[sessionID] = append(m.turns[sessionID], turn)
	return nil
}

func (m *MemoryStore) RecentTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.turns[sessionID]
	out := make([]models.ChatTurn, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (m *MemoryStore) Turns(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.turns[sessionID]
	out := make([]models.ChatTurn, len(all))
	copy(out, all)
	return out, nil
}

func (m *MemoryStore) RecentUserTurns(ctx context.Context, userID string, limit int) ([]models.ChatTurn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []models.ChatTurn
	for id, s := range m.sessions {
		if s.UserID == userID {
			all = append(all, m.turns[id]...)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MemoryStore) AddFeedback(ctx context.Context, fb models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback = append(m.feedback, fb)
	return nil
}
