package resources

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestIsResourceRequest(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"can you give me a breathing technique", true},
		{"help me with my focus", true},
		{"do you have a tip for sleeping", true},
		{"where can i read more about this", true},
		{"I had a long day", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsResourceRequest(c.message); got != c.want {
			t.Fatalf("IsResourceRequest(%q) = %v, want %v", c.message, got, c.want)
		}
	}
}

func TestLookupMatchesQueryTopic(t *testing.T) {
	cases := []struct {
		query string
		title string
	}{
		{"something for stress please", "Box Breathing Technique"},
		{"my anxiety is bad", "Box Breathing Technique"},
		{"I can't focus on anything", "Pomodoro Technique"},
		{"feeling sad and low", "Gratitude Listing Exercise"},
		{"anything at all", "5-4-3-2-1 Grounding Technique"},
	}
	for _, c := range cases {
		res := Lookup(c.query, "US")
		if res.Kind != KindSingle {
			t.Fatalf("Lookup(%q) kind = %d, want single", c.query, res.Kind)
		}
		if res.Item == nil || res.Item.Title != c.title {
			t.Fatalf("Lookup(%q) = %+v, want title %q", c.query, res.Item, c.title)
		}
		if len(res.Item.Steps) == 0 {
			t.Fatalf("Lookup(%q) returned a resource without steps", c.query)
		}
	}
}

type stubGen struct {
	reply string
	err   error
}

func (g *stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDailyTipGenerated(t *testing.T) {
	svc := NewTipService(&stubGen{reply: `"Take a short walk today."`}, discardLogger())
	if got := svc.DailyTip(context.Background()); got != "Take a short walk today." {
		t.Fatalf("DailyTip = %q, want unquoted generated tip", got)
	}
}

func TestDailyTipFallbackIsDeterministicPerDay(t *testing.T) {
	svc := NewTipService(nil, discardLogger())
	day := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	first := svc.DailyTip(context.Background())
	if first == "" {
		t.Fatal("fallback tip is empty")
	}
	for i := 0; i < 5; i++ {
		if got := svc.DailyTip(context.Background()); got != first {
			t.Fatalf("same day produced different tips: %q vs %q", got, first)
		}
	}

	// The time of day must not change the pick.
	svc.now = func() time.Time { return day.Add(10 * time.Hour) }
	if got := svc.DailyTip(context.Background()); got != first {
		t.Fatalf("tip changed within the same day: %q vs %q", got, first)
	}
}

func TestDailyTipGenerationErrorFallsBack(t *testing.T) {
	svc := NewTipService(&stubGen{err: errors.New("backend down")}, discardLogger())
	if got := svc.DailyTip(context.Background()); got == "" {
		t.Fatal("expected a fallback tip on generation error")
	}
}
