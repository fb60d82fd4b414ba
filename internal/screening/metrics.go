package screening

import "aura-backend/internal/models"

// maxAnswerScore is the highest selectable response option (options are
// indexed 0..3).
const maxAnswerScore = 3

// Per-dimension scale coefficients applied to the normalized 0-100 score.
// Negative-affect dimensions scale directly; positive-affect dimensions are
// inverted (100 - scale*normalized, floored at 0).
const (
	scaleDepression       = 0.8
	scaleAnxiety          = 0.6
	scaleStress           = 0.5
	scaleSocialAnxiety    = 0.4
	scaleSocialSupport    = 0.3
	scaleSelfWorth        = 0.7
	scaleLifeSatisfaction = 0.6
	scaleSleepQuality     = 0.4
	scaleEnergyLevel      = 0.5
	scaleCopingSkills     = 0.6
	scaleResilience       = 0.5
)

// NeutralDefaultMetrics is returned for an empty score set. The overall
// score and status are the formula applied to these defaults.
func NeutralDefaultMetrics() models.MetricsRecord {
	return models.MetricsRecord{
		Depression:          40,
		Anxiety:             40,
		Stress:              40,
		SocialAnxiety:       30,
		SelfWorth:           60,
		SleepQuality:        50,
		EnergyLevel:         50,
		CopingSkills:        50,
		SocialSupport:       50,
		LifeSatisfaction:    50,
		Resilience:          50,
		OverallMentalHealth: 57,
		Status:              models.StatusModerate,
	}
}

// DeriveMetrics maps raw answer scores (question id -> 0..3) to the full
// metrics record. Pure and deterministic; negative raw values count as 0.
func DeriveMetrics(scores map[string]int) models.MetricsRecord {
	if len(scores) == 0 {
		return NeutralDefaultMetrics()
	}

	total := 0
	for _, v := range scores {
		if v < 0 {
			v = 0
		}
		total += v
	}
	normalized := float64(total) / float64(len(scores)*maxAnswerScore) * 100
	if normalized > 100 {
		normalized = 100
	}

	m := models.MetricsRecord{
		Depression:       clamp100(int(normalized * scaleDepression)),
		Anxiety:          clamp100(int(normalized * scaleAnxiety)),
		Stress:           clamp100(int(normalized * scaleStress)),
		SocialAnxiety:    clamp100(int(normalized * scaleSocialAnxiety)),
		SocialSupport:    clamp100(invert(normalized, scaleSocialSupport)),
		SelfWorth:        clamp100(invert(normalized, scaleSelfWorth)),
		LifeSatisfaction: clamp100(invert(normalized, scaleLifeSatisfaction)),
		SleepQuality:     clamp100(invert(normalized, scaleSleepQuality)),
		EnergyLevel:      clamp100(invert(normalized, scaleEnergyLevel)),
		CopingSkills:     clamp100(invert(normalized, scaleCopingSkills)),
		Resilience:       clamp100(invert(normalized, scaleResilience)),
	}

	negativeAvg := float64(m.Depression+m.Anxiety+m.Stress+m.SocialAnxiety) / 4
	positiveAvg := float64(m.SelfWorth+m.LifeSatisfaction+m.SocialSupport+m.CopingSkills+m.Resilience) / 5

	overall := (100 - negativeAvg + positiveAvg) / 2
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	m.OverallMentalHealth = int(overall)
	m.Status = statusFor(overall)
	return m
}

func statusFor(overall float64) models.MentalHealthStatus {
	switch {
	case overall >= 80:
		return models.StatusExcellent
	case overall >= 60:
		return models.StatusGood
	case overall >= 40:
		return models.StatusModerate
	case overall >= 20:
		return models.StatusConcerning
	default:
		return models.StatusCritical
	}
}

func invert(normalized, scale float64) int {
	v := 100 - int(normalized*scale)
	if v < 0 {
		v = 0
	}
	return v
}

func clamp100(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
