// Package insight is the periodic batch analyzer. It re-derives risk
// signals from stored metrics and recent transcripts and writes them back
// as insight tags for the screening and chat flows to consume.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aura-backend/internal/models"
	"aura-backend/internal/store"
)

// chatScanWindow is how many recent transcript entries are scanned per user.
const chatScanWindow = 20

// Metric band thresholds, applied independently to depression, anxiety and
// stress.
const (
	thresholdModerate = 50
	thresholdHigh     = 70
	thresholdSevere   = 80
)

// Keyword-frequency thresholds for chat patterns. Crisis language forces
// action at a single occurrence.
const (
	patternThreshold = 3
	crisisThreshold  = 1
)

var (
	socialAnxietyKeywords = []string{"people", "social", "crowd", "judge", "embarrassed", "awkward", "alone", "isolated"}
	crisisKeywords        = []string{"suicide", "kill myself", "want to die", "better off dead", "end it all", "no reason to live"}
	sleepKeywords         = []string{"sleep", "insomnia", "tired", "exhausted", "rest", "night"}
	relationshipKeywords  = []string{"relationship", "partner", "family", "friend", "love", "breakup", "divorce"}

	positiveWords = []string{"happy", "good", "great", "better", "improved", "hope", "love", "joy"}
	negativeWords = []string{"sad", "bad", "terrible", "worse", "hopeless", "hate", "angry", "frustrated"}
)

type Analyzer struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

func NewAnalyzer(st store.Store, log *slog.Logger) *Analyzer {
	return &Analyzer{store: st, log: log, now: time.Now}
}

// Run performs one full batch pass. A failure on one user is logged and
// skipped; it never aborts the batch.
func (a *Analyzer) Run(ctx context.Context) {
	a.log.Info("insight analysis starting")

	states, err := a.store.ListUserStates(ctx)
	if err != nil {
		a.log.Error("insight analysis aborted, could not list user states", "error", err)
		return
	}

	analyzed, found := 0, 0
	for _, st := range states {
		analyzed++
		wrote, err := a.analyzeUser(ctx, st)
		if err != nil {
			a.log.Error("skipping user after analysis failure", "user_id", st.UserID, "error", err)
			continue
		}
		if wrote {
			found++
		}
	}
	a.log.Info("insight analysis complete", "users_analyzed", analyzed, "insights_found", found)
}

// analyzeUser derives insights for one user and writes them back only when
// something was found. Users without metrics are left untouched.
func (a *Analyzer) analyzeUser(ctx context.Context, st *models.UserState) (bool, error) {
	if st.Metrics == nil {
		return false, nil
	}

	result := newAnalysis()
	result.classifyMetric("depression", st.Metrics.Depression, depressionRecs)
	result.classifyMetric("anxiety", st.Metrics.Anxiety, anxietyRecs)
	result.classifyMetric("stress", st.Metrics.Stress, stressRecs)

	if err := a.scanChatPatterns(ctx, st.UserID, result); err != nil {
		// Chat data is supplementary; the metric-band insights still count.
		a.log.Warn("could not analyze chat data", "user_id", st.UserID, "error", err)
	}

	if len(result.insights) == 0 {
		return false, nil
	}

	summary := &models.AnalysisSummary{
		RiskLevel:       result.risk,
		PrimaryConcerns: result.insights,
		Recommendations: result.recommendations,
		AnalyzedAt:      a.now(),
	}
	patch := models.UserStatePatch{
		Insights:        result.insights,
		Recommendations: result.recommendations,
		RiskLevel:       &result.risk,
		AnalysisSummary: summary,
	}
	if err := a.store.MergeUserState(ctx, st.UserID, patch); err != nil {
		return false, fmt.Errorf("persist insights: %w", err)
	}
	a.log.Info("insights saved", "user_id", st.UserID, "insights", result.insights, "risk_level", result.risk)
	return true, nil
}

// scanChatPatterns tallies keyword groups and coarse sentiment over the
// user's recent messages.
func (a *Analyzer) scanChatPatterns(ctx context.Context, userID string, result *analysis) error {
	turns, err := a.store.RecentUserTurns(ctx, userID, chatScanWindow)
	if err != nil {
		return err
	}

	var socialCount, crisisCount, sleepCount, relationshipCount int
	var positiveCount, negativeCount int
	for _, t := range turns {
		if t.UserMessage == nil {
			continue
		}
		msg := strings.ToLower(*t.UserMessage)
		if containsAny(msg, socialAnxietyKeywords) {
			socialCount++
		}
		if containsAny(msg, crisisKeywords) {
			crisisCount++
		}
		if containsAny(msg, sleepKeywords) {
			sleepCount++
		}
		if containsAny(msg, relationshipKeywords) {
			relationshipCount++
		}
		for _, w := range positiveWords {
			if strings.Contains(msg, w) {
				positiveCount++
			}
		}
		for _, w := range negativeWords {
			if strings.Contains(msg, w) {
				negativeCount++
			}
		}
	}

	if socialCount >= patternThreshold {
		result.add("social_anxiety", "social_anxiety", socialAnxietyRec, "")
	}
	if crisisCount >= crisisThreshold {
		result.add("crisis_risk", "crisis", crisisRec, models.RiskCritical)
	}
	if sleepCount >= patternThreshold {
		result.add("sleep_issues", "sleep", sleepRec, "")
	}
	if relationshipCount >= patternThreshold {
		result.add("relationship_stress", "relationships", relationshipRec, "")
	}
	if negativeCount > positiveCount*2 {
		result.add("negative_trend", "mood", moodRec, "")
	}
	return nil
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

// analysis accumulates one user's insight tags, recommendation bundles and
// escalating risk level.
type analysis struct {
	insights        []string
	recommendations map[string]models.Recommendation
	risk            models.RiskLevel
}

func newAnalysis() *analysis {
	return &analysis{
		recommendations: map[string]models.Recommendation{},
		risk:            models.RiskLow,
	}
}

func (r *analysis) add(tag, category string, rec models.Recommendation, risk models.RiskLevel) {
	r.insights = append(r.insights, tag)
	r.recommendations[category] = rec
	r.escalate(risk)
}

// escalate only ever raises the risk level: critical dominates high, high
// dominates the default low.
func (r *analysis) escalate(risk models.RiskLevel) {
	switch risk {
	case models.RiskCritical:
		r.risk = models.RiskCritical
	case models.RiskHigh:
		if r.risk != models.RiskCritical {
			r.risk = models.RiskHigh
		}
	}
}

// classifyMetric buckets one dimension into its severity band, attaching
// the band's tag and recommendation bundle and escalating risk.
func (r *analysis) classifyMetric(dimension string, value int, recs bandRecommendations) {
	switch {
	case value >= thresholdSevere:
		r.add("severe_"+dimension, dimension, recs.severe, models.RiskCritical)
	case value >= thresholdHigh:
		r.add("high_"+dimension, dimension, recs.high, models.RiskHigh)
	case value >= thresholdModerate:
		r.add("moderate_"+dimension, dimension, recs.moderate, "")
	}
}
