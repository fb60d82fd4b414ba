package resources

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"

	"aura-backend/internal/genai"
)

var fallbackTips = []string{
	"Take a moment to breathe deeply - it can help reduce stress and anxiety.",
	"Remember, it's okay to not be okay. Reach out to someone you trust.",
	"Small acts of self-care can make a big difference in your mental health.",
	"Practice gratitude by writing down three things you're thankful for today.",
	"Physical activity, even a short walk, can boost your mood significantly.",
	"Set aside 5 minutes today to do something that brings you joy.",
	"Connect with nature - even looking out the window can be grounding.",
	"Be kind to yourself today. You're doing better than you think.",
}

const tipPrompt = `<role>
You are a compassionate mental health expert providing daily wellness tips.
</role>
<instructions>
Generate a single, encouraging, and actionable mental health tip. Keep it brief (1-2 sentences) and positive. Focus on practical self-care, mindfulness, or emotional wellness.
</instructions>

Your daily mental health tip:
`

// TipService produces a daily wellness tip, generated when a back end is
// configured and otherwise picked deterministically by date.
type TipService struct {
	gen genai.Generator
	log *slog.Logger
	now func() time.Time
}

func NewTipService(gen genai.Generator, log *slog.Logger) *TipService {
	return &TipService{gen: gen, log: log, now: time.Now}
}

func (s *TipService) DailyTip(ctx context.Context) string {
	if s.gen != nil {
		tip, err := s.gen.Generate(ctx, tipPrompt)
		if err == nil {
			if tip = strings.TrimSpace(strings.Trim(strings.TrimSpace(tip), `"`)); tip != "" {
				return tip
			}
		} else {
			s.log.Warn("tip generation failed, using fallback", "error", err)
		}
	}
	h := fnv.New32a()
	h.Write([]byte(s.now().Format("2006-01-02")))
	return fallbackTips[h.Sum32()%uint32(len(fallbackTips))]
}
