package chat

import (
	"regexp"
	"strings"
)

// maxSentences caps every outgoing reply.
const maxSentences = 3

var (
	selfLabelRe     = regexp.MustCompile(`(?i)^\s*` + personaName + `[:\-\s]+`)
	userLabelRe     = regexp.MustCompile(`(?i)^\s*User[:\-\s]+`)
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
)

// SanitizeReply reduces a raw generation to a single clean assistant reply.
// It strips quote noise and self-identifying labels, cuts at the first sign
// of a simulated second turn (a repeated self label, a "User:" line, or a
// paragraph break) and caps the result at three sentences.
func SanitizeReply(raw string) string {
	t := strings.Trim(strings.TrimSpace(raw), "`\"' \n\r")
	t = selfLabelRe.ReplaceAllString(t, "")

	lines := strings.Split(t, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	var kept []string
	for _, ln := range lines {
		switch {
		case selfLabelRe.MatchString(ln):
			if len(kept) == 0 {
				kept = append(kept, selfLabelRe.ReplaceAllString(ln, ""))
				continue
			}
			// A second self label means the model started another turn.
		case userLabelRe.MatchString(ln):
		default:
			kept = append(kept, ln)
			continue
		}
		break
	}
	if len(kept) > 0 {
		t = strings.TrimSpace(strings.Join(kept, "\n"))
	} else {
		t = strings.TrimSpace(t)
	}

	if i := strings.Index(t, "\n\n"); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}

	sentences := splitSentences(t)
	if len(sentences) > maxSentences {
		t = strings.TrimSpace(strings.Join(sentences[:maxSentences], " "))
	}

	return strings.TrimSpace(trailingSpaceRe.ReplaceAllString(t, "\n"))
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with its sentence.
func splitSentences(s string) []string {
	var out []string
	runes := []rune(s)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Consume a run of terminators ("?!", "...").
		j := i
		for j+1 < len(runes) && isSentenceEnd(runes[j+1]) {
			j++
		}
		if j+1 < len(runes) && isSpace(runes[j+1]) {
			out = append(out, string(runes[start:j+1]))
			i = j + 1
			for i < len(runes) && isSpace(runes[i]) {
				i++
			}
			start = i
			i--
		} else {
			i = j
		}
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
