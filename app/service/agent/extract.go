package agent

import (
	"regexp"
	"strconv"
	"strings"

	"ariatravel/app/model"

	"github.com/elliotchance/pie/v2"
)

// gazetteer is ordered; the first hit becomes the remembered destination.
var gazetteer = []string{
	"delhi",
	"agra",
	"jaipur",
	"mumbai",
	"goa",
	"kerala",
	"rajasthan",
	"himalayas",
	"manali",
	"rishikesh",
	"varanasi",
	"golden triangle",
	"taj mahal",
	"backwaters",
	"darjeeling",
	"ladakh",
	"kashmir",
	"udaipur",
	"jodhpur",
	"amritsar",
	"kolkata",
	"chennai",
	"bangalore",
	"hyderabad",
	"andaman",
	"lakshadweep",
	"sikkim",
	"meghalaya",
	"assam",
	"uttarakhand",
	"hampi",
	"khajuraho",
}

var followUpPhrases = []string{
	"show dates",
	"when to visit",
	"best time",
	"weather",
	"climate",
	"how much",
	"cost",
	"price",
	"budget",
	"itinerary",
	"plan",
	"tell me more",
	"details",
	"more info",
}

var interestKeywords = []struct {
	tag      string
	keywords []string
}{
	{"adventure", []string{"adventure"}},
	{"culture", []string{"culture", "heritage"}},
	{"food", []string{"food"}},
	{"beach", []string{"beach"}},
	{"mountain", []string{"mountain", "hill"}},
	{"spiritual", []string{"spiritual", "temple"}},
	{"nature", []string{"nature", "wildlife"}},
}

var (
	amountPattern    = regexp.MustCompile(`₹?(\d+(?:,\d+)*)`)
	daySuffixPattern = regexp.MustCompile(`(?i)^[\s-]*days?\b`)
	durationPattern  = regexp.MustCompile(`(?i)(\d+)[\s-]*days?\b`)

	itineraryPattern = regexp.MustCompile(`itinerary|plan\s+(?:(?:a|an|my)\s+)?(?:[\w-]+\s+){0,4}?(?:trip|visit|vacation|tour)`)
	budgetPattern    = regexp.MustCompile(`\b(?:budget|cost|price|afford|expensive|cheap|money)`)
	foodPattern      = regexp.MustCompile(`\b(?:food|eat|cuisine|restaurant|dish|meal)`)
	culturePattern   = regexp.MustCompile(`\b(?:culture|festival|tradition|celebration|event|history|heritage)`)
	timingPattern    = regexp.MustCompile(`\b(?:weather|season|rain|temperature|climate|when to (?:go|visit)|best time)`)
)

// updatePreferences folds whatever the message reveals into prefs. Fields the
// message says nothing about keep their previous value.
func updatePreferences(prefs *model.Preferences, message string) {
	lower := strings.ToLower(message)

	if budget, ok := extractBudget(message); ok {
		prefs.Budget = budget
	}

	if duration, ok := extractDuration(message); ok {
		prefs.Duration = duration
	}

	if entities := extractEntities(lower); len(entities) > 0 {
		prefs.LastMentionedDestination = entities[0]
	}

	if interests := extractInterests(lower); len(interests) > 0 {
		prefs.Interests = interests
	}
}

// analyzeIntent classifies the current query of state. Keyword priority is
// fixed: itinerary, budget, food, culture, timing, entity, general.
func analyzeIntent(state *ConversationState) Intent {
	message := strings.ToLower(state.CurrentQuery)
	remembered := state.Preferences.LastMentionedDestination

	intent := Intent{
		Type:        IntentGeneral,
		Entities:    extractEntities(message),
		Preferences: state.Preferences.Clone(),
		Contextual:  remembered != "" && containsAny(message, followUpPhrases...),
	}

	if intent.Contextual {
		if !pie.Contains(intent.Entities, remembered) {
			intent.Entities = append(intent.Entities, remembered)
		}

		switch {
		case containsAny(message, "date", "time", "weather"):
			intent.Type = IntentTiming
		case containsAny(message, "cost", "budget", "price"):
			intent.Type = IntentBudget
		case containsAny(message, "plan", "itinerary"):
			intent.Type = IntentItinerary
		default:
			intent.Type = IntentDestination
		}

		return intent
	}

	switch {
	case itineraryPattern.MatchString(message):
		intent.Type = IntentItinerary
	case budgetPattern.MatchString(message):
		intent.Type = IntentBudget
	case foodPattern.MatchString(message):
		intent.Type = IntentFood
	case culturePattern.MatchString(message):
		intent.Type = IntentCulture
	case timingPattern.MatchString(message):
		intent.Type = IntentTiming
	case len(intent.Entities) > 0:
		intent.Type = IntentDestination
	}

	return intent
}

// extractBudget returns the first amount that is not a day count.
func extractBudget(message string) (int, bool) {
	for _, loc := range amountPattern.FindAllStringSubmatchIndex(message, -1) {
		if daySuffixPattern.MatchString(message[loc[1]:]) {
			continue
		}

		value, err := strconv.Atoi(strings.ReplaceAll(message[loc[2]:loc[3]], ",", ""))
		if err != nil || value <= 0 {
			continue
		}

		return value, true
	}

	return 0, false
}

func extractDuration(message string) (int, bool) {
	match := durationPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}

	value, err := strconv.Atoi(match[1])
	if err != nil || value <= 0 {
		return 0, false
	}

	return value, true
}

func extractEntities(lower string) []string {
	return pie.Filter(gazetteer, func(name string) bool {
		return strings.Contains(lower, name)
	})
}

func extractInterests(lower string) []string {
	var interests []string

	for _, item := range interestKeywords {
		if containsAny(lower, item.keywords...) {
			interests = append(interests, item.tag)
		}
	}

	return interests
}

func containsAny(s string, substrings ...string) bool {
	return pie.Any(substrings, func(sub string) bool {
		return strings.Contains(s, sub)
	})
}
