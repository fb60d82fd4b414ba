package safety

import (
	"regexp"
	"strings"
)

// crisisTriggers are matched with word boundaries: "killmyself" must not
// fire where "kill myself" does.
var crisisTriggers = []string{
	"suicide",
	"kill myself",
	"want to die",
	"hurting myself",
	"better off dead",
	"end it all",
	"no reason to live",
	"tired of living",
}

// helplineAskKeywords mark an explicit, non-crisis request for contact
// information. Plain substring matching is enough here.
var helplineAskKeywords = []string{
	"crisis line",
	"helpline",
	"help line",
	"phone number",
	"emergency number",
	"contact",
}

var crisisPatterns = compileTriggerPatterns(crisisTriggers)

func compileTriggerPatterns(triggers []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(triggers))
	for _, t := range triggers {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(t))+`\b`))
	}
	return patterns
}

// IsCrisisMessage reports whether the message contains a self-harm trigger
// phrase. Case-insensitive, word-boundary matched.
func IsCrisisMessage(message string) bool {
	lowered := strings.ToLower(message)
	for _, p := range crisisPatterns {
		if p.MatchString(lowered) {
			return true
		}
	}
	return false
}

// IsHelplineAsk reports whether the message explicitly asks for helpline
// contact details. Evaluated only after the crisis check.
func IsHelplineAsk(message string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range helplineAskKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
