// Package resources provides the static technique/exercise lookup the
// dispatcher hands off to, plus the resource-intent classifier.
package resources

import "strings"

// intentKeywords mark a message as a resource request. Checked only after
// the crisis and helpline classifiers have not fired.
var intentKeywords = []string{
	"resource", "link", "guide", "reference", "article", "tutorial",
	"reading", "where can i", "provide me", "send me", "resource:", "help me",
	"technique", "exercise", "method", "strategy", "tool", "tip",
}

// IsResourceRequest reports whether the message asks for a resource.
func IsResourceRequest(message string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range intentKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Resource is one structured technique or exercise.
type Resource struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source"`
	SourceURL   string   `json:"source_url"`
	Steps       []string `json:"steps"`
}

// ResultKind tags the shape a lookup produced, so callers normalize
// exhaustively instead of type-switching at runtime.
type ResultKind int

const (
	KindSingle ResultKind = iota
	KindList
	KindText
)

// Result is the tagged variant returned by Lookup: exactly one of Item,
// Items or Text is meaningful, selected by Kind.
type Result struct {
	Kind  ResultKind
	Item  *Resource
	Items []Resource
	Text  string
}

// Lookup finds the best-matching resource for a free-text query. The region
// is accepted for future region-specific content; the current catalog is
// global. Always returns a usable result.
func Lookup(query, region string) Result {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "stress") || strings.Contains(q, "anxiety"):
		return Result{Kind: KindSingle, Item: &boxBreathing}
	case strings.Contains(q, "focus") || strings.Contains(q, "concentration"):
		return Result{Kind: KindSingle, Item: &pomodoro}
	case strings.Contains(q, "sad") || strings.Contains(q, "depression"):
		return Result{Kind: KindSingle, Item: &gratitudeListing}
	default:
		return Result{Kind: KindSingle, Item: &grounding}
	}
}

var boxBreathing = Resource{
	Type:        "technique",
	Title:       "Box Breathing Technique",
	Description: "A simple breathing exercise used by Navy SEALs to reduce stress and anxiety",
	Source:      "Sourced from: Navy SEALs and healthcare professionals",
	SourceURL:   "https://www.webmd.com/balance/what-is-box-breathing",
	Steps: []string{
		"Find a comfortable, quiet place to sit or lie down.",
		"Close your eyes and slowly exhale all the air from your lungs.",
		"Inhale slowly through your nose for a count of 4.",
		"Hold your breath for a count of 4.",
		"Exhale slowly through your mouth for a count of 4.",
		"Hold the empty breath for a count of 4.",
		"Repeat the cycle for at least 5 minutes to feel the calming effects.",
	},
}

var pomodoro = Resource{
	Type:        "technique",
	Title:       "Pomodoro Technique",
	Description: "A time management method to improve focus and productivity",
	Source:      "Sourced from: Francesco Cirillo",
	SourceURL:   "https://francescocirillo.com/pages/pomodoro-technique",
	Steps: []string{
		"Choose a task you want to work on.",
		"Set a timer for 25 minutes.",
		"Work on the task until the timer rings.",
		"Take a 5-minute break.",
		"After 4 pomodoros, take a longer 15-30 minute break.",
		"Repeat the cycle as needed.",
	},
}

var gratitudeListing = Resource{
	Type:        "exercise",
	Title:       "Gratitude Listing Exercise",
	Description: "A simple exercise to shift perspective and improve mood",
	Source:      "Sourced from: PositivePsychology.com",
	SourceURL:   "https://positivepsychology.com/gratitude-exercises/",
	Steps: []string{
		"Find a quiet moment to sit comfortably.",
		"Take a few deep breaths to center yourself.",
		"Write down three specific things you are grateful for today.",
		"Be as specific as possible (e.g., 'the warm sunlight on my face' rather than 'the weather').",
		"Reflect on why each item brings you gratitude.",
		"Repeat this exercise daily for best results.",
	},
}

var grounding = Resource{
	Type:        "technique",
	Title:       "5-4-3-2-1 Grounding Technique",
	Description: "A sensory grounding exercise to help with overwhelming feelings",
	Source:      "Sourced from: Healthline",
	SourceURL:   "https://www.healthline.com/health/grounding-techniques",
	Steps: []string{
		"Look around and name 5 things you can see.",
		"Touch and name 4 things you can feel.",
		"Listen and name 3 things you can hear.",
		"Smell and name 2 things you can smell.",
		"Taste and name 1 thing you can taste.",
		"Take a deep breath and notice how you feel.",
	},
}
