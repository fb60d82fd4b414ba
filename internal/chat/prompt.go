package chat

import (
	"fmt"
	"strings"

	"aura-backend/internal/models"
)

// personaName is the assistant's self-identifying label, used both in
// prompts and when cutting runaway generations.
const personaName = "Aura"

// historyTurns bounds the sliding context window.
const historyTurns = 5

const personaPrompt = `
<persona>
You are Aura, a caring AI companion. Your voice is warm, empathetic, and natural. You are not a robot. Use conversational language, be curious, and gently guide the conversation. Avoid clichés like "I'm sorry to hear that" on every message. Instead, ask open-ended questions, validate feelings ("That sounds incredibly tough."), and show you're listening.
</persona>
<instructions>
- Identify the user's core problem (e.g., stress, sadness).
- If you identify a problem, offer to find a technique using the format: [ACTION:find_technique|problem].
- Respond briefly (2-3 sentences max). Do not summarize the entire conversation unless the user asks.
</instructions>
`

// buildSystemPrompt appends the tone-stage instruction for the number of
// prior user turns in the context window: formal at first, fully casual
// from the fifth user turn on.
func buildSystemPrompt(numPrevUserTurns int) string {
	var stage string
	switch {
	case numPrevUserTurns == 0:
		stage = "Begin with a formal, respectful greeting. Introduce yourself as Aura and warmly acknowledge the user's presence."
	case numPrevUserTurns == 1:
		stage = "Continue formal and respectful tone; begin gentle comfort."
	case numPrevUserTurns < 4:
		stage = "Gradually shift toward a casual, supportive, and friendly tone."
	default:
		stage = "Now speak casually and comfortably, matching the user's style."
	}
	return personaPrompt + "\n<instructions>" + stage + "</instructions>"
}

// renderHistory renders the context window oldest to newest. Turns without
// a user message (system-initiated openers) become assistant-only lines.
func renderHistory(turns []models.ChatTurn) string {
	var b strings.Builder
	for _, t := range turns {
		if t.UserMessage == nil {
			fmt.Fprintf(&b, "%s: %q\n", personaName, t.AIResponse)
			continue
		}
		fmt.Fprintf(&b, "User: %q\n%s: %q\n", *t.UserMessage, personaName, t.AIResponse)
	}
	return b.String()
}

// buildChatPrompt assembles the full generation prompt for one turn.
func buildChatPrompt(turns []models.ChatTurn, userMessage string) string {
	numPrevUserTurns := 0
	for _, t := range turns {
		if t.UserMessage != nil {
			numPrevUserTurns++
		}
	}
	return fmt.Sprintf(
		"%s\n\n%sUser: %q\n<instructions>Respond with ONLY ONE %s message. Do NOT include multiple '%s:' lines or simulate future turns. Keep it brief (1-3 sentences).</instructions>\n%s:",
		buildSystemPrompt(numPrevUserTurns), renderHistory(turns), userMessage, personaName, personaName, personaName)
}

// buildGreetingPrompt frames a metrics-aware opener without exposing the
// scores themselves.
func buildGreetingPrompt(metrics *models.MetricsRecord) string {
	m := map[string]int{"anxiety": 50, "depression": 50, "stress": 50}
	if metrics != nil {
		m["anxiety"] = metrics.Anxiety
		m["depression"] = metrics.Depression
		m["stress"] = metrics.Stress
	}
	return fmt.Sprintf(`
<role>You are Aura, a caring AI companion starting a conversation.</role>
<instructions>
Based on the user's long-term mental health metrics (0-100 scale), generate a SINGLE, short, natural, and welcoming greeting message.
- If depression is high, be gentle and reassuring.
- If anxiety is high, be calm and grounding.
- If stress is high, be supportive and acknowledge their pressure.
- DO NOT mention the scores. Be human.
</instructions>
<user_metrics>
depression: %d, anxiety: %d, stress: %d
</user_metrics>
Your welcoming message:
`, m["depression"], m["anxiety"], m["stress"])
}

// fallbackReply is the deterministic responder used when no generation
// back end is configured or the call fails. The greeting flag covers
// openers and first contact; otherwise the user's own words pick the reply.
func fallbackReply(userMessage string, greeting bool) string {
	lowered := strings.ToLower(userMessage)
	switch {
	case greeting:
		return "Hello! I'm Aura, your AI companion. I'm here to listen and support you. What's on your mind today?"
	case strings.Contains(lowered, "stress") || strings.Contains(lowered, "anxiety"):
		return "I can sense you're feeling overwhelmed. That's completely understandable. " +
			"Would you like to talk about what's causing this stress, or try a brief breathing exercise?"
	case strings.Contains(lowered, "sad") || strings.Contains(lowered, "depression"):
		return "I hear that you're feeling down, and I want you to know that your feelings are valid. " +
			"What's been on your mind lately?"
	default:
		return "I'm here to listen and support you. Tell me more about what you're experiencing."
	}
}
