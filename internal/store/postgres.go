package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aura-backend/internal/models"
)

// PostgresStore persists documents in Postgres, with nested structures held
// as JSON columns.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (p *PostgresStore) GetUserState(ctx context.Context, userID string) (*models.UserState, error) {
	query := `SELECT user_id, metrics, last_screening, insights, recommendations, risk_level, analysis_summary, last_updated
		FROM user_states WHERE user_id = $1`
	return scanUserState(p.db.QueryRowContext(ctx, query, userID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserState(row rowScanner) (*models.UserState, error) {
	var st models.UserState
	var metricsJSON, insightsJSON, recsJSON, summaryJSON []byte
	var lastScreening sql.NullTime
	var riskLevel sql.NullString

	err := row.Scan(&st.UserID, &metricsJSON, &lastScreening, &insightsJSON, &recsJSON, &riskLevel, &summaryJSON, &st.LastUpdated)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &st.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
	}
	if len(insightsJSON) > 0 {
		if err := json.Unmarshal(insightsJSON, &st.Insights); err != nil {
			return nil, fmt.Errorf("unmarshal insights: %w", err)
		}
	}
	if len(recsJSON) > 0 {
		if err := json.Unmarshal(recsJSON, &st.Recommendations); err != nil {
			return nil, fmt.Errorf("unmarshal recommendations: %w", err)
		}
	}
	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &st.AnalysisSummary); err != nil {
			return nil, fmt.Errorf("unmarshal analysis summary: %w", err)
		}
	}
	if lastScreening.Valid {
		t := lastScreening.Time
		st.LastScreeningTimestamp = &t
	}
	if riskLevel.Valid {
		st.RiskLevel = models.RiskLevel(riskLevel.String)
	}
	return &st, nil
}

func (p *PostgresStore) SetUserState(ctx context.Context, st *models.UserState) error {
	metricsJSON, insightsJSON, recsJSON, summaryJSON, err := marshalUserState(st)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO user_states (user_id, metrics, last_screening, insights, recommendations, risk_level, analysis_summary, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			metrics = $2,
			last_screening = $3,
			insights = $4,
			recommendations = $5,
			risk_level = $6,
			analysis_summary = $7,
			last_updated = now()
	`
	_, err = p.db.ExecContext(ctx, query,
		st.UserID, metricsJSON, nullTime(st.LastScreeningTimestamp), insightsJSON, recsJSON,
		nullString(string(st.RiskLevel)), summaryJSON)
	return err
}

func (p *PostgresStore) MergeUserState(ctx context.Context, userID string, patch models.UserStatePatch) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT user_id, metrics, last_screening, insights, recommendations, risk_level, analysis_summary, last_updated
		FROM user_states WHERE user_id = $1 FOR UPDATE`, userID)
	st, err := scanUserState(row)
	if err == ErrNotFound {
		st = &models.UserState{UserID: userID}
	} else if err != nil {
		return err
	}
	applyPatch(st, patch)

	metricsJSON, insightsJSON, recsJSON, summaryJSON, err := marshalUserState(st)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_states (user_id, metrics, last_screening, insights, recommendations, risk_level, analysis_summary, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			metrics = $2,
			last_screening = $3,
			insights = $4,
			recommendations = $5,
			risk_level = $6,
			analysis_summary = $7,
			last_updated = now()
	`, st.UserID, metricsJSON, nullTime(st.LastScreeningTimestamp), insightsJSON, recsJSON,
		nullString(string(st.RiskLevel)), summaryJSON)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func marshalUserState(st *models.UserState) (metrics, insights, recs, summary []byte, err error) {
	if st.Metrics != nil {
		if metrics, err = json.Marshal(st.Metrics); err != nil {
			return
		}
	}
	if st.Insights != nil {
		if insights, err = json.Marshal(st.Insights); err != nil {
			return
		}
	}
	if st.Recommendations != nil {
		if recs, err = json.Marshal(st.Recommendations); err != nil {
			return
		}
	}
	if st.AnalysisSummary != nil {
		if summary, err = json.Marshal(st.AnalysisSummary); err != nil {
			return
		}
	}
	return
}

func (p *PostgresStore) DeleteUserState(ctx context.Context, userID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM user_states WHERE user_id = $1`, userID)
	return err
}

func (p *PostgresStore) ListUserStates(ctx context.Context) ([]*models.UserState, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT user_id, metrics, last_screening, insights, recommendations, risk_level, analysis_summary, last_updated
		FROM user_states ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UserState
	for rows.Next() {
		st, err := scanUserState(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetScreeningSession(ctx context.Context, userID string) (*models.ScreeningSession, error) {
	var s models.ScreeningSession
	var questionsJSON, scoresJSON []byte
	err := p.db.QueryRowContext(ctx, `SELECT user_id, current_question_index, questions, scores, started_at
		FROM screening_sessions WHERE user_id = $1`, userID).
		Scan(&s.UserID, &s.CurrentQuestionIndex, &questionsJSON, &scoresJSON, &s.StartedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(questionsJSON, &s.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(scoresJSON, &s.Scores); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}
	return &s, nil
}

func (p *PostgresStore) SetScreeningSession(ctx context.Context, s *models.ScreeningSession) error {
	questionsJSON, err := json.Marshal(s.Questions)
	if err != nil {
		return err
	}
	if s.Scores == nil {
		s.Scores = map[string]int{}
	}
	scoresJSON, err := json.Marshal(s.Scores)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO screening_sessions (user_id, current_question_index, questions, scores, started_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			current_question_index = $2,
			questions = $3,
			scores = $4,
			started_at = $5
	`
	_, err = p.db.ExecContext(ctx, query, s.UserID, s.CurrentQuestionIndex, questionsJSON, scoresJSON, s.StartedAt)
	return err
}

func (p *PostgresStore) DeleteScreeningSession(ctx context.Context, userID string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM screening_sessions WHERE user_id = $1`, userID)
	return err
}

func (p *PostgresStore) CreateSession(ctx context.Context, userID string) (*models.ConversationSession, error) {
	s := &models.ConversationSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: time.Now(),
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO user_sessions (id, user_id, start_time) VALUES ($1, $2, $3)`,
		s.ID, s.UserID, s.StartTime)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *PostgresStore) GetSession(ctx context.Context, sessionID string) (*models.ConversationSession, error) {
	var s models.ConversationSession
	err := p.db.QueryRowContext(ctx, `SELECT id, user_id, start_time FROM user_sessions WHERE id = $1`, sessionID).
		Scan(&s.ID, &s.UserID, &s.StartTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) LatestSessionForUser(ctx context.Context, userID string) (*models.ConversationSession, error) {
	var s models.ConversationSession
	err := p.db.QueryRowContext(ctx, `SELECT id, user_id, start_time FROM user_sessions
		WHERE user_id = $1 ORDER BY start_time DESC LIMIT 1`, userID).
		Scan(&s.ID, &s.UserID, &s.StartTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) ListSessionsForUser(ctx context.Context, userID string) ([]*models.ConversationSession, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, user_id, start_time FROM user_sessions
		WHERE user_id = $1 ORDER BY start_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ConversationSession
	for rows.Next() {
		var s models.ConversationSession
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartTime); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (p *PostgresStore) AppendTurn(ctx context.Context, sessionID string, turn models.ChatTurn) error {
	var resourceJSON []byte
	if turn.ResourceData != nil {
		resourceJSON = turn.ResourceData
	}
	_, err := p.db.ExecContext(ctx, `INSERT INTO chat_turns (session_id, user_message, ai_response, agent_tag, resource_data, ts)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		sessionID, turn.UserMessage, turn.AIResponse, turn.AgentTag, resourceJSON, turn.Timestamp)
	return err
}

func (p *PostgresStore) RecentTurns(ctx context.Context, sessionID string, limit int) ([]models.ChatTurn, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT user_message, ai_response, agent_tag, resource_data, ts
		FROM chat_turns WHERE session_id = $1 ORDER BY ts DESC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTurns(rows)
}

func (p *PostgresStore) Turns(ctx context.Context, sessionID string) ([]models.ChatTurn, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT user_message, ai_response, agent_tag, resource_data, ts
		FROM chat_turns WHERE session_id = $1 ORDER BY ts ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTurns(rows)
}

func (p *PostgresStore) RecentUserTurns(ctx context.Context, userID string, limit int) ([]models.ChatTurn, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT t.user_message, t.ai_response, t.agent_tag, t.resource_data, t.ts
		FROM chat_turns t JOIN user_sessions s ON t.session_id = s.id
		WHERE s.user_id = $1 ORDER BY t.ts DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTurns(rows)
}

func scanTurns(rows *sql.Rows) ([]models.ChatTurn, error) {
	var out []models.ChatTurn
	for rows.Next() {
		var t models.ChatTurn
		var userMsg sql.NullString
		var resourceJSON []byte
		if err := rows.Scan(&userMsg, &t.AIResponse, &t.AgentTag, &resourceJSON, &t.Timestamp); err != nil {
			return nil, err
		}
		if userMsg.Valid {
			msg := userMsg.String
			t.UserMessage = &msg
		}
		if len(resourceJSON) > 0 {
			t.ResourceData = resourceJSON
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (p *PostgresStore) AddFeedback(ctx context.Context, fb models.Feedback) error {
	_, err := p.db.ExecContext(ctx, `INSERT INTO feedback (user_id, rating, ts) VALUES ($1, $2, $3)`,
		fb.UserID, fb.Rating, fb.Timestamp)
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
