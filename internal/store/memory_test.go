package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura-backend/internal/models"
)

func TestMergeUserStateCreatesAndPatches(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	metrics := models.MetricsRecord{Depression: 42, Status: models.StatusModerate}
	require.NoError(t, m.MergeUserState(ctx, "u1", models.UserStatePatch{Metrics: &metrics}))

	st, err := m.GetUserState(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, st.Metrics)
	assert.Equal(t, 42, st.Metrics.Depression)
	assert.False(t, st.LastUpdated.IsZero())

	// A later patch leaves unrelated fields alone.
	risk := models.RiskHigh
	require.NoError(t, m.MergeUserState(ctx, "u1", models.UserStatePatch{
		Insights:  []string{"high_depression"},
		RiskLevel: &risk,
	}))

	st, err = m.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 42, st.Metrics.Depression)
	assert.Equal(t, []string{"high_depression"}, st.Insights)
	assert.Equal(t, models.RiskHigh, st.RiskLevel)
}

func TestMergeUserStateClearInsights(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	risk := models.RiskCritical
	require.NoError(t, m.MergeUserState(ctx, "u1", models.UserStatePatch{
		Insights:        []string{"crisis_risk"},
		Recommendations: map[string]models.Recommendation{"crisis": {Priority: "critical"}},
		RiskLevel:       &risk,
		AnalysisSummary: &models.AnalysisSummary{RiskLevel: risk},
	}))

	metrics := models.MetricsRecord{Anxiety: 30}
	now := time.Now()
	require.NoError(t, m.MergeUserState(ctx, "u1", models.UserStatePatch{
		Metrics:                &metrics,
		LastScreeningTimestamp: &now,
		ClearInsights:          true,
	}))

	st, err := m.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, st.Insights)
	assert.Empty(t, st.Recommendations)
	assert.Empty(t, st.RiskLevel)
	assert.Nil(t, st.AnalysisSummary)
	require.NotNil(t, st.Metrics)
	assert.Equal(t, 30, st.Metrics.Anxiety)
	require.NotNil(t, st.LastScreeningTimestamp)
}

func TestGetUserStateNotFound(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.GetUserState(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserStateReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.SetUserState(ctx, &models.UserState{UserID: "u1", RiskLevel: models.RiskLow}))

	st, err := m.GetUserState(ctx, "u1")
	require.NoError(t, err)
	st.RiskLevel = models.RiskCritical

	again, err := m.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RiskLow, again.RiskLevel, "mutating a returned state must not touch the store")
}

func TestScreeningSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	sess := &models.ScreeningSession{
		UserID:               "u1",
		CurrentQuestionIndex: 2,
		Questions:            []models.Question{{ID: "q1"}, {ID: "q2"}},
		Scores:               map[string]int{"q1": 3},
		StartedAt:            time.Now(),
	}
	require.NoError(t, m.SetScreeningSession(ctx, sess))

	got, err := m.GetScreeningSession(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentQuestionIndex)
	assert.Equal(t, 3, got.Scores["q1"])

	// The returned scores map is a copy.
	got.Scores["q2"] = 1
	again, err := m.GetScreeningSession(ctx, "u1")
	require.NoError(t, err)
	_, leaked := again.Scores["q2"]
	assert.False(t, leaked)

	require.NoError(t, m.DeleteScreeningSession(ctx, "u1"))
	_, err = m.GetScreeningSession(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestSessionForUser(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	first, err := m.CreateSession(ctx, "u1")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := m.CreateSession(ctx, "u1")
	require.NoError(t, err)
	_, err = m.CreateSession(ctx, "someone-else")
	require.NoError(t, err)

	latest, err := m.LatestSessionForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	list, err := m.ListSessionsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.Equal(t, first.ID, list[1].ID)

	_, err = m.LatestSessionForUser(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTurnOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	sess, err := m.CreateSession(ctx, "u1")
	require.NoError(t, err)

	base := time.Now()
	for i, msg := range []string{"one", "two", "three"} {
		text := msg
		require.NoError(t, m.AppendTurn(ctx, sess.ID, models.ChatTurn{
			UserMessage: &text,
			AIResponse:  "r-" + msg,
			Timestamp:   base.Add(time.Duration(i) * time.Second),
		}))
	}

	// Full transcript is oldest first.
	turns, err := m.Turns(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "one", *turns[0].UserMessage)

	// Recent turns are newest first and bounded.
	recent, err := m.RecentTurns(ctx, sess.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", *recent[0].UserMessage)
	assert.Equal(t, "two", *recent[1].UserMessage)
}

func TestRecentUserTurnsSpansSessions(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	base := time.Now()
	for i := 0; i < 2; i++ {
		sess, err := m.CreateSession(ctx, "u1")
		require.NoError(t, err)
		text := "msg"
		require.NoError(t, m.AppendTurn(ctx, sess.ID, models.ChatTurn{
			UserMessage: &text,
			AIResponse:  "ok",
			Timestamp:   base.Add(time.Duration(i) * time.Second),
		}))
	}

	turns, err := m.RecentUserTurns(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, turns, 2)

	bounded, err := m.RecentUserTurns(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, bounded, 1)
}

func TestAppendTurnUnknownSession(t *testing.T) {
	m := NewMemoryStore()
	err := m.AppendTurn(context.Background(), "no-such-session", models.ChatTurn{AIResponse: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}
