// Package safety holds the crisis classifier and the region-keyed helpline
// directory. Everything here is static data and pure functions: crisis
// handling must keep working when storage and generation are down.
package safety

import (
	"fmt"
	"strings"
)

// Helpline is one support contact.
type Helpline struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Text        string `json:"text,omitempty"`
	URL         string `json:"url,omitempty"`
	Hours       string `json:"hours,omitempty"`
	Description string `json:"description,omitempty"`
}

// RegionHelplines is the helpline set for one region: a primary crisis
// contact plus secondary resources.
type RegionHelplines struct {
	Crisis  Helpline   `json:"crisis"`
	General []Helpline `json:"general"`
}

// GlobalRegion is the fallback key for unknown regions.
const GlobalRegion = "GLOBAL"

var helplines = map[string]RegionHelplines{
	"US": {
		Crisis: Helpline{Name: "National Suicide Prevention Lifeline", Phone: "988", Text: "Text HOME to 741741 (Crisis Text Line)", URL: "https://suicidepreventionlifeline.org/", Hours: "24/7"},
		General: []Helpline{
			{Name: "SAMHSA National Helpline", Phone: "1-800-662-HELP (4357)", URL: "https://www.samhsa.gov/find-help/national-helpline", Description: "Treatment referral and information service"},
			{Name: "Crisis Text Line", Text: "Text HOME to 741741", URL: "https://www.crisistextline.org/", Description: "Free, 24/7 crisis counseling via text"},
		},
	},
	"CA": {
		Crisis: Helpline{Name: "Crisis Services Canada", Phone: "1-833-456-4566", Text: "Text 45645", URL: "https://www.crisisservicescanada.ca/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Canadian Mental Health Association", Phone: "1-800-875-6213", URL: "https://cmha.ca/", Description: "Mental health support and resources"},
		},
	},
	"GB": {
		Crisis: Helpline{Name: "Samaritans", Phone: "116 123", URL: "https://www.samaritans.org/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Mind", Phone: "0300 123 3393", URL: "https://www.mind.org.uk/", Description: "Mental health information and support"},
		},
	},
	"DE": {
		Crisis: Helpline{Name: "Telefonseelsorge", Phone: "0800 111 0 111", URL: "https://www.telefonseelsorge.de/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Deutsche DepressionsLiga", Phone: "0800 3344533", URL: "https://www.deutsche-depressionsliga.de/", Description: "Depression support and information"},
		},
	},
	"FR": {
		Crisis: Helpline{Name: "SOS Amitié", Phone: "09 72 39 40 50", URL: "https://www.sos-amitie.com/", Hours: "24/7"},
		General: []Helpline{
			{Name: "UNAFAM", Phone: "01 42 63 03 03", URL: "https://www.unafam.org/", Description: "Support for families and friends of mentally ill"},
		},
	},
	"IN": {
		Crisis: Helpline{Name: "KIRAN Mental Health Helpline", Phone: "1800-599-0019", URL: "https://www.mohfw.gov.in/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Vandrevala Foundation", Phone: "1860 2662 345", URL: "https://www.vandrevalafoundation.com/", Description: "Mental health support and counseling"},
		},
	},
	"AU": {
		Crisis: Helpline{Name: "Lifeline Australia", Phone: "13 11 14", URL: "https://www.lifeline.org.au/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Beyond Blue", Phone: "1300 22 4636", URL: "https://www.beyondblue.org.au/", Description: "Depression and anxiety support"},
		},
	},
	"JP": {
		Crisis: Helpline{Name: "Tokyo English Life Line", Phone: "03-5774-0992", URL: "https://telljp.com/", Hours: "9:00 AM - 11:00 PM"},
		General: []Helpline{
			{Name: "Japan Helpline", Phone: "0570-000-911", URL: "https://jhelp.com/", Description: "General support and information"},
		},
	},
	"BR": {
		Crisis: Helpline{Name: "Centro de Valorização da Vida (CVV)", Phone: "188", URL: "https://www.cvv.org.br/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Sistema Único de Saúde (SUS)", Phone: "136", URL: "https://www.gov.br/saude/", Description: "Public health system mental health support"},
		},
	},
	"MX": {
		Crisis: Helpline{Name: "Línea de la Vida", Phone: "800 911 2000", URL: "https://www.gob.mx/salud/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Instituto Nacional de Psiquiatría", Phone: "55 4160 5000", URL: "https://www.gob.mx/inprfm/", Description: "National psychiatric institute"},
		},
	},
	"ZA": {
		Crisis: Helpline{Name: "South African Depression and Anxiety Group", Phone: "0800 456 789", URL: "https://www.sadag.org/", Hours: "8:00 AM - 8:00 PM"},
		General: []Helpline{
			{Name: "Lifeline South Africa", Phone: "0861 322 322", URL: "https://lifeline.org.za/", Description: "Crisis intervention and counseling"},
		},
	},
	"NG": {
		Crisis: Helpline{Name: "Mental Health Foundation Nigeria", Phone: "0800 888 8888", URL: "https://mentalhealthfoundationng.org/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Nigerian Mental Health", Phone: "0800 888 8888", URL: "https://nigerianmentalhealth.org/", Description: "Mental health support and resources"},
		},
	},
	"AE": {
		Crisis: Helpline{Name: "Emirates Foundation", Phone: "800 46342", URL: "https://www.emiratesfoundation.ae/", Hours: "24/7"},
		General: []Helpline{
			{Name: "Al Amal Psychiatric Hospital", Phone: "04 337 1200", URL: "https://www.dha.gov.ae/", Description: "Mental health services"},
		},
	},
	GlobalRegion: {
		Crisis: Helpline{Name: "International Association for Suicide Prevention", Phone: "112", URL: "https://www.iasp.info/resources/Crisis_Centres/", Hours: "24/7", Description: "Global crisis center directory"},
		General: []Helpline{
			{Name: "Befrienders Worldwide", URL: "https://www.befrienders.org/", Description: "International emotional support network"},
			{Name: "International Federation of Red Cross", URL: "https://www.ifrc.org/", Description: "Emergency and crisis support"},
		},
	},
}

// HelplinesForRegion returns the region's helpline set, falling back to the
// global entry for unknown region codes.
func HelplinesForRegion(region string) RegionHelplines {
	if h, ok := helplines[strings.ToUpper(region)]; ok {
		return h
	}
	return helplines[GlobalRegion]
}

// Regions lists every region code with a dedicated helpline entry.
func Regions() map[string]Helpline {
	out := make(map[string]Helpline, len(helplines))
	for code, h := range helplines {
		out[code] = h.Crisis
	}
	return out
}

// FormatHelplineResponse renders the helpline set as a user-facing reply.
// Crisis framing adds the urgency banner and the supportive closing.
func FormatHelplineResponse(h RegionHelplines, isCrisis bool) string {
	var b strings.Builder

	if isCrisis {
		b.WriteString("🚨 **CRISIS SUPPORT** 🚨\n\n")
		b.WriteString("If you are in immediate danger, please call emergency services right away.\n\n")
	}

	b.WriteString("**Primary Crisis Helpline:**\n")
	fmt.Fprintf(&b, "📞 %s\n", h.Crisis.Name)
	fmt.Fprintf(&b, "☎️ Phone: %s\n", h.Crisis.Phone)
	if h.Crisis.Text != "" {
		fmt.Fprintf(&b, "💬 Text: %s\n", h.Crisis.Text)
	}
	if h.Crisis.Hours != "" {
		fmt.Fprintf(&b, "⏰ Hours: %s\n", h.Crisis.Hours)
	}
	if h.Crisis.URL != "" {
		fmt.Fprintf(&b, "🌐 More info: %s\n", h.Crisis.URL)
	}
	b.WriteString("\n")

	if len(h.General) > 0 {
		b.WriteString("**Additional Support Resources:**\n\n")
		for i, res := range h.General {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, res.Name)
			if res.Phone != "" {
				fmt.Fprintf(&b, "   ☎️ Phone: %s\n", res.Phone)
			}
			if res.Text != "" {
				fmt.Fprintf(&b, "   💬 Text: %s\n", res.Text)
			}
			if res.Description != "" {
				fmt.Fprintf(&b, "   📝 %s\n", res.Description)
			}
			if res.URL != "" {
				fmt.Fprintf(&b, "   🌐 Website: %s\n", res.URL)
			}
			b.WriteString("\n")
		}
	}

	if isCrisis {
		b.WriteString("💙 **You are not alone.** Help is available 24/7. Please reach out to any of these resources if you need immediate support.\n\n")
		b.WriteString("Remember: Your life has value, and there are people who care about you and want to help.")
	} else {
		b.WriteString("💙 These resources are here to support you whenever you need them. Don't hesitate to reach out.")
	}
	return b.String()
}
