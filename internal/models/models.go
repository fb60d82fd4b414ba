package models

import (
	"encoding/json"
	"time"
)

// MentalHealthStatus is the coarse classification derived from the overall score.
type MentalHealthStatus string

const (
	StatusExcellent  MentalHealthStatus = "excellent"
	StatusGood       MentalHealthStatus = "good"
	StatusModerate   MentalHealthStatus = "moderate"
	StatusConcerning MentalHealthStatus = "concerning"
	StatusCritical   MentalHealthStatus = "critical"
)

// RiskLevel is the analyzer's severity classification for a user.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// MetricsRecord holds the derived 0-100 mental-health dimensions. It is
// replaced wholesale every time a screening completes, never hand-edited.
type MetricsRecord struct {
	Depression       int `json:"depression"`
	Anxiety          int `json:"anxiety"`
	Stress           int `json:"stress"`
	SocialAnxiety    int `json:"social_anxiety"`
	SelfWorth        int `json:"self_worth"`
	SleepQuality     int `json:"sleep_quality"`
	EnergyLevel      int `json:"energy_level"`
	CopingSkills     int `json:"coping_skills"`
	SocialSupport    int `json:"social_support"`
	LifeSatisfaction int `json:"life_satisfaction"`
	Resilience       int `json:"resilience"`

	OverallMentalHealth int                `json:"overall_mental_health"`
	Status              MentalHealthStatus `json:"mental_health_status"`
}

// Recommendation is a priority-tagged suggestion bundle attached by the analyzer.
type Recommendation struct {
	Priority    string   `json:"priority"` // "medium", "high", "critical"
	Suggestions []string `json:"suggestions"`
}

// AnalysisSummary is the timestamped result of one analyzer pass for a user.
type AnalysisSummary struct {
	RiskLevel       RiskLevel                 `json:"risk_level"`
	PrimaryConcerns []string                  `json:"primary_concerns"`
	Recommendations map[string]Recommendation `json:"recommendations"`
	AnalyzedAt      time.Time                 `json:"analyzed_at"`
}

// UserState is the per-user singleton holding long-term metrics and the
// analyzer's transient annotations. Insights are consumed and cleared by the
// screening flow on its next completion.
type UserState struct {
	UserID                 string                    `json:"user_id"`
	Metrics                *MetricsRecord            `json:"metrics,omitempty"`
	LastScreeningTimestamp *time.Time                `json:"last_screening_timestamp,omitempty"`
	Insights               []string                  `json:"insights,omitempty"`
	Recommendations        map[string]Recommendation `json:"recommendations,omitempty"`
	RiskLevel              RiskLevel                 `json:"risk_level,omitempty"`
	AnalysisSummary        *AnalysisSummary          `json:"analysis_summary,omitempty"`
	LastUpdated            time.Time                 `json:"last_updated"`
}

// UserStatePatch is a partial update to a UserState. Nil pointer fields are
// left untouched; ClearInsights is the deletion sentinel removing the
// analyzer's annotations in the same write.
type UserStatePatch struct {
	Metrics                *MetricsRecord
	LastScreeningTimestamp *time.Time
	Insights               []string
	Recommendations        map[string]Recommendation
	RiskLevel              *RiskLevel
	AnalysisSummary        *AnalysisSummary
	ClearInsights          bool
}

// Question is one screening item.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ScreeningSession tracks one in-progress screening. The question list is
// resolved once at session start and never recomputed mid-flow.
type ScreeningSession struct {
	UserID               string         `json:"user_id"`
	CurrentQuestionIndex int            `json:"current_question_index"`
	Questions            []Question     `json:"questions"`
	Scores               map[string]int `json:"scores"`
	StartedAt            time.Time      `json:"started_at"`
}

// ConversationSession is one logical conversation for a user.
type ConversationSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
}

// ChatTurn is one transcript entry. A nil UserMessage marks a
// system-initiated opener such as a greeting.
type ChatTurn struct {
	UserMessage  *string         `json:"user_message"`
	AIResponse   string          `json:"ai_response"`
	AgentTag     string          `json:"agent_tag"`
	ResourceData json.RawMessage `json:"resource_data,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Feedback is a user's session rating, consumed by later analysis passes.
type Feedback struct {
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
