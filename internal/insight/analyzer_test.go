package insight

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aura-backend/internal/models"
	"aura-backend/internal/store"
)

func newTestAnalyzer(st store.Store) *Analyzer {
	return &Analyzer{
		store: st,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:   time.Now,
	}
}

func seedMetrics(t *testing.T, st store.Store, userID string, m models.MetricsRecord) {
	t.Helper()
	require.NoError(t, st.MergeUserState(context.Background(), userID, models.UserStatePatch{Metrics: &m}))
}

func seedUserMessages(t *testing.T, st store.Store, userID string, messages ...string) {
	t.Helper()
	ctx := context.Background()
	sess, err := st.CreateSession(ctx, userID)
	require.NoError(t, err)
	for i, msg := range messages {
		m := msg
		require.NoError(t, st.AppendTurn(ctx, sess.ID, models.ChatTurn{
			UserMessage: &m,
			AIResponse:  "ok",
			AgentTag:    "conversational",
			Timestamp:   time.Now().Add(time.Duration(i) * time.Second),
		}))
	}
}

func TestAnalyzerMetricBands(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	seedMetrics(t, st, "u1", models.MetricsRecord{Depression: 85, Anxiety: 75, Stress: 55})

	a.Run(ctx)

	state, err := st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"severe_depression", "high_anxiety", "moderate_stress"}, state.Insights)
	assert.Equal(t, models.RiskCritical, state.RiskLevel)
	require.Contains(t, state.Recommendations, "depression")
	assert.Equal(t, "critical", state.Recommendations["depression"].Priority)
	assert.Equal(t, "high", state.Recommendations["anxiety"].Priority)
	assert.Equal(t, "medium", state.Recommendations["stress"].Priority)
	require.NotNil(t, state.AnalysisSummary)
	assert.Equal(t, models.RiskCritical, state.AnalysisSummary.RiskLevel)
	assert.False(t, state.AnalysisSummary.AnalyzedAt.IsZero())
}

func TestAnalyzerSkipsUserWithoutMetrics(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	require.NoError(t, st.SetUserState(ctx, &models.UserState{UserID: "u1"}))
	seedUserMessages(t, st, "u1", "I feel terrible", "everything is bad", "hopeless honestly")

	a.Run(ctx)

	state, err := st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, state.Insights)
	assert.Empty(t, state.RiskLevel)
	assert.Nil(t, state.AnalysisSummary)
}

func TestAnalyzerHealthyMetricsLeaveNoInsights(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	seedMetrics(t, st, "u1", models.MetricsRecord{Depression: 10, Anxiety: 20, Stress: 30})

	a.Run(ctx)

	state, err := st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, state.Insights)
	assert.Empty(t, state.RiskLevel)
}

func TestAnalyzerCrisisLanguageSingleOccurrence(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	seedMetrics(t, st, "u1", models.MetricsRecord{Depression: 10, Anxiety: 10, Stress: 10})
	seedUserMessages(t, st, "u1", "sometimes I think I'd be better off dead")

	a.Run(ctx)

	state, err := st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, state.Insights, "crisis_risk")
	assert.Equal(t, models.RiskCritical, state.RiskLevel)
	require.Contains(t, state.Recommendations, "crisis")
	assert.Equal(t, "critical", state.Recommendations["crisis"].Priority)
}

func TestAnalyzerRecurringPatternNeedsThreeMentions(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	seedMetrics(t, st, "u1", models.MetricsRecord{})
	seedUserMessages(t, st, "u1", "couldn't sleep again", "so exhausted at work")

	a.Run(ctx)

	state, err := st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.NotContains(t, state.Insights, "sleep_issues", "two mentions are below the pattern threshold")

	seedUserMessages(t, st, "u1", "another sleepless night")
	a.Run(ctx)

	state, err = st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, state.Insights, "sleep_issues")
	assert.Contains(t, state.Recommendations, "sleep")
}

func TestAnalyzerNegativeSentimentTrend(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	seedMetrics(t, st, "u1", models.MetricsRecord{})
	seedUserMessages(t, st, "u1",
		"today was terrible",
		"I feel so sad",
		"everything seems worse")

	a.Run(ctx)

	state, err := st.GetUserState(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, state.Insights, "negative_trend")
	require.Contains(t, state.Recommendations, "mood")
	assert.Equal(t, "high", state.Recommendations["mood"].Priority)
}

func TestAnalyzerBatchCoversAllUsers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	a := newTestAnalyzer(st)

	seedMetrics(t, st, "u1", models.MetricsRecord{Depression: 85})
	seedMetrics(t, st, "u2", models.MetricsRecord{Anxiety: 90})

	a.Run(ctx)

	for _, id := range []string{"u1", "u2"} {
		state, err := st.GetUserState(ctx, id)
		require.NoError(t, err)
		assert.NotEmpty(t, state.Insights, "user %s should have insights", id)
	}
}

func TestEscalateNeverLowers(t *testing.T) {
	r := newAnalysis()
	r.escalate(models.RiskCritical)
	r.escalate(models.RiskHigh)
	assert.Equal(t, models.RiskCritical, r.risk)

	r2 := newAnalysis()
	r2.escalate("")
	assert.Equal(t, models.RiskLow, r2.risk)
}
