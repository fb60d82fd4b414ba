package insight

import "aura-backend/internal/models"

// bandRecommendations holds one metric dimension's suggestion bundles per
// severity band.
type bandRecommendations struct {
	moderate models.Recommendation
	high     models.Recommendation
	severe   models.Recommendation
}

var depressionRecs = bandRecommendations{
	severe: models.Recommendation{
		Priority: "critical",
		Suggestions: []string{
			"Immediate professional help recommended",
			"Crisis intervention may be needed",
			"Monitor for suicidal thoughts",
			"Encourage medical consultation",
		},
	},
	high: models.Recommendation{
		Priority: "high",
		Suggestions: []string{
			"Professional counseling recommended",
			"Consider medication evaluation",
			"Increase social support",
			"Regular mood tracking",
		},
	},
	moderate: models.Recommendation{
		Priority: "medium",
		Suggestions: []string{
			"Light therapy and exercise",
			"Social activities",
			"Mindfulness practices",
			"Regular sleep schedule",
		},
	},
}

var anxietyRecs = bandRecommendations{
	severe: models.Recommendation{
		Priority: "critical",
		Suggestions: []string{
			"Immediate professional intervention",
			"Consider medication options",
			"Crisis management techniques",
			"Emergency contact information",
		},
	},
	high: models.Recommendation{
		Priority: "high",
		Suggestions: []string{
			"Cognitive behavioral therapy",
			"Breathing exercises",
			"Progressive muscle relaxation",
			"Limit caffeine and stimulants",
		},
	},
	moderate: models.Recommendation{
		Priority: "medium",
		Suggestions: []string{
			"Regular exercise",
			"Meditation practices",
			"Time management skills",
			"Social support networks",
		},
	},
}

var stressRecs = bandRecommendations{
	severe: models.Recommendation{
		Priority: "critical",
		Suggestions: []string{
			"Immediate stress relief needed",
			"Consider medical leave",
			"Professional stress management",
			"Lifestyle changes required",
		},
	},
	high: models.Recommendation{
		Priority: "high",
		Suggestions: []string{
			"Work-life balance assessment",
			"Regular breaks and downtime",
			"Physical exercise routine",
			"Stress management techniques",
		},
	},
	moderate: models.Recommendation{
		Priority: "medium",
		Suggestions: []string{
			"Time management skills",
			"Relaxation techniques",
			"Healthy coping mechanisms",
			"Support system building",
		},
	},
}

var socialAnxietyRec = models.Recommendation{
	Priority: "medium",
	Suggestions: []string{
		"Gradual exposure therapy",
		"Social skills training",
		"Support groups",
		"Professional counseling",
	},
}

var crisisRec = models.Recommendation{
	Priority: "critical",
	Suggestions: []string{
		"Immediate crisis intervention",
		"Emergency contact information",
		"Safety planning",
		"Professional help required",
	},
}

var sleepRec = models.Recommendation{
	Priority: "medium",
	Suggestions: []string{
		"Sleep hygiene practices",
		"Regular sleep schedule",
		"Relaxation techniques",
		"Medical evaluation if persistent",
	},
}

var relationshipRec = models.Recommendation{
	Priority: "medium",
	Suggestions: []string{
		"Communication skills",
		"Boundary setting",
		"Couples therapy",
		"Individual counseling",
	},
}

var moodRec = models.Recommendation{
	Priority: "high",
	Suggestions: []string{
		"Positive psychology techniques",
		"Gratitude practices",
		"Activity scheduling",
		"Professional support",
	},
}
