package safety

import (
	"strings"
	"testing"
)

func TestIsCrisisMessage(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"I want to kill myself", true},
		{"sometimes I think about suicide", true},
		{"I'm so tired of living like this", true},
		{"I just want to end it all", true},
		{"everyone would be better off dead without me", true},
		{"I WANT TO DIE", true},

		// Word boundaries: concatenations and lookalikes must not fire.
		{"I want to killmyself", false},
		{"the suicidesquad movie was fine", false},
		{"I killed it at work today", false},
		{"", false},
		{"I had a rough day", false},
	}
	for _, c := range cases {
		if got := IsCrisisMessage(c.message); got != c.want {
			t.Fatalf("IsCrisisMessage(%q) = %v, want %v", c.message, got, c.want)
		}
	}
}

func TestIsHelplineAsk(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"can you give me a helpline?", true},
		{"what's the crisis line phone number", true},
		{"do you have an emergency number for Germany", true},
		{"who can I contact about this", true},
		{"I feel a bit lonely today", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsHelplineAsk(c.message); got != c.want {
			t.Fatalf("IsHelplineAsk(%q) = %v, want %v", c.message, got, c.want)
		}
	}
}

func TestHelplinesForRegion(t *testing.T) {
	us := HelplinesForRegion("US")
	if us.Crisis.Phone != "988" {
		t.Fatalf("US crisis phone = %q, want 988", us.Crisis.Phone)
	}

	// Lowercase codes are accepted.
	if got := HelplinesForRegion("de"); got.Crisis.Name != "Telefonseelsorge" {
		t.Fatalf("region lookup not case-insensitive: %+v", got.Crisis)
	}

	// Unknown regions fall back to the global entry.
	unknown := HelplinesForRegion("XX")
	global := HelplinesForRegion(GlobalRegion)
	if unknown.Crisis.Name != global.Crisis.Name {
		t.Fatalf("unknown region did not fall back to global: %+v", unknown.Crisis)
	}
}

func TestFormatHelplineResponseFraming(t *testing.T) {
	h := HelplinesForRegion("US")

	crisis := FormatHelplineResponse(h, true)
	if !strings.Contains(crisis, "CRISIS SUPPORT") {
		t.Fatalf("crisis framing missing urgency banner:\n%s", crisis)
	}
	if !strings.Contains(crisis, "You are not alone") {
		t.Fatalf("crisis framing missing supportive closing:\n%s", crisis)
	}
	if !strings.Contains(crisis, "988") {
		t.Fatalf("crisis response missing primary phone:\n%s", crisis)
	}

	info := FormatHelplineResponse(h, false)
	if strings.Contains(info, "CRISIS SUPPORT") {
		t.Fatalf("informational framing must not carry the urgency banner:\n%s", info)
	}
	if !strings.Contains(info, "988") {
		t.Fatalf("informational response missing primary phone:\n%s", info)
	}
}

func TestRegionsDirectory(t *testing.T) {
	regions := Regions()
	if _, ok := regions[GlobalRegion]; !ok {
		t.Fatal("directory missing the global entry")
	}
	for code, crisis := range regions {
		if crisis.Name == "" {
			t.Fatalf("region %s has no crisis contact name", code)
		}
	}
}
