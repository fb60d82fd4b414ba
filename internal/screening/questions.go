package screening

import "aura-backend/internal/models"

// ResponseOptions are the fixed answer labels; the submitted answer index is
// the position in this list.
var ResponseOptions = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

var baseQuestions = []models.Question{
	{ID: "q1", Text: "Over the last 2 weeks, how often have you been bothered by having little interest or pleasure in doing things?"},
	{ID: "q2", Text: "Over the last 2 weeks, how often have you been bothered by feeling down, depressed, or hopeless?"},
	{ID: "q9", Text: "Thoughts that you would be better off dead or of hurting yourself in some way?"},
}

var ageBracketQuestions = map[string][]models.Question{
	"6-18": {
		{ID: "age_q1", Text: "How often have you felt worried about school, grades, or fitting in with friends?"},
		{ID: "age_q2", Text: "Have you had trouble concentrating or staying still in class more than usual?"},
	},
	"18-30": {
		{ID: "age_q1", Text: "How often have you felt overwhelmed by pressure from work, college, or making major life decisions?"},
		{ID: "age_q2", Text: "Have you experienced intense mood swings, from feeling very high and energetic to very low and sad?"},
	},
	"30-60": {
		{ID: "age_q1", Text: "How often have you felt 'burnt out' or emotionally drained from work or family responsibilities?"},
		{ID: "age_q2", Text: "Have you worried excessively about financial security or the health of your loved ones?"},
	},
	"60+": {
		{ID: "age_q1", Text: "How often have you felt lonely or isolated from others?"},
		{ID: "age_q2", Text: "Have you been worried about your physical health or coping with the loss of loved ones or independence?"},
	},
}

// Insight-conditional questions, appended only when the analyzer left the
// matching tag on the user's state at screening start.
var insightQuestions = map[string]models.Question{
	"social_anxiety": {ID: "insight_q1", Text: "Lately, how often have you felt worried about what other people think of you?"},
	"low_self_worth": {ID: "insight_q2", Text: "How often have you been feeling critical of yourself or that you aren't good enough?"},
}

// insightQuestionOrder fixes the append order regardless of tag order.
var insightQuestionOrder = []string{"social_anxiety", "low_self_worth"}

func ageBracket(age int) string {
	switch {
	case age >= 6 && age <= 18:
		return "6-18"
	case age > 18 && age <= 30:
		return "18-30"
	case age > 30 && age <= 60:
		return "30-60"
	case age > 60:
		return "60+"
	default:
		return ""
	}
}

// ResolveQuestions builds the question list for one screening session:
// base questions, then the age bracket's questions, then any
// insight-conditional questions. The result is snapshotted into the session
// record and never recomputed mid-flow.
func ResolveQuestions(age int, insightTags []string) []models.Question {
	questions := make([]models.Question, 0, len(baseQuestions)+4)
	questions = append(questions, baseQuestions...)

	if bracket := ageBracket(age); bracket != "" {
		questions = append(questions, ageBracketQuestions[bracket]...)
	}

	tags := make(map[string]bool, len(insightTags))
	for _, t := range insightTags {
		tags[t] = true
	}
	for _, tag := range insightQuestionOrder {
		if tags[tag] {
			questions = append(questions, insightQuestions[tag])
		}
	}
	return questions
}
