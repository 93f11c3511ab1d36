package agent

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"ariatravel/app/model"
	"ariatravel/app/service/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sharePattern    = regexp.MustCompile(`\d+% \(₹([\d,]+)\)`)
	dayRangePattern = regexp.MustCompile(`\*\*Days (\d+)-(\d+): `)
)

func sample() []model.Destination {
	return catalog.Sample(model.DestinationQuery{})
}

func atoi(t *testing.T, s string) int {
	value, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	require.NoError(t, err)
	return value
}

func TestBudgetSharesAddUp(t *testing.T) {
	for _, budget := range []int{20000, 12345, 50000, 999} {
		reply := budgetResponse(model.Preferences{Budget: budget}, sample())

		matches := sharePattern.FindAllStringSubmatch(reply, -1)
		require.Len(t, matches, 3)

		sum := 0
		for _, m := range matches {
			sum += atoi(t, m[1])
		}

		assert.InDelta(t, budget, sum, 3)
	}
}

func TestBudgetDefaults(t *testing.T) {
	reply := generateLocalResponse(Intent{Type: IntentBudget}, model.Preferences{}, sample())

	assert.Contains(t, reply, "Budget ₹50,000 for 7 days")
	assert.Contains(t, reply, "Accommodation: 35% (₹17,500)")
	assert.Contains(t, reply, "Food & Transport: 50% (₹25,000)")
	assert.Contains(t, reply, "Activities: 15% (₹7,500)")
	assert.Contains(t, reply, "**Golden Temple** - ₹3,000+ | ⭐4.9")
}

func TestBudgetFiltersByPrice(t *testing.T) {
	reply := budgetResponse(model.Preferences{Budget: 5500}, sample())

	assert.Contains(t, reply, "Golden Temple")
	assert.Contains(t, reply, "Taj Mahal")
	assert.NotContains(t, reply, "Himalayan Trek")
	assert.NotContains(t, reply, "Goa Beaches")
}

func TestItineraryDayRanges(t *testing.T) {
	for duration := 1; duration <= 14; duration++ {
		reply := itineraryResponse(model.Preferences{Duration: duration}, sample())

		matches := dayRangePattern.FindAllStringSubmatch(reply, -1)
		require.NotEmpty(t, matches, "duration %d", duration)

		total := 0
		for _, m := range matches {
			total += atoi(t, m[2]) - atoi(t, m[1]) + 1
		}

		selected := len(matches)
		assert.Equal(t, duration/selected*selected, total, "duration %d", duration)
		assert.LessOrEqual(t, total, duration)
		assert.LessOrEqual(t, selected, 3)
	}
}

func TestItineraryGoldenTriangle(t *testing.T) {
	intent := Intent{
		Type:       IntentItinerary,
		Entities:   []string{"golden triangle"},
		Contextual: true,
	}
	prefs := model.Preferences{Duration: 7, LastMentionedDestination: "golden triangle"}

	reply := generateLocalResponse(intent, prefs, sample())

	assert.Contains(t, reply, "7-day")
	assert.Contains(t, reply, "**Days 1-2: Golden Temple**")
	assert.Contains(t, reply, "**Days 3-4: Taj Mahal**")
	assert.Contains(t, reply, "**Days 5-6: Himalayan Trek**")
}

func TestItineraryNothingAffordable(t *testing.T) {
	reply := itineraryResponse(model.Preferences{Budget: 1000, Duration: 4}, sample())
	assert.Equal(t, noItineraryMessage, reply)
}

func TestContextualResponses(t *testing.T) {
	prefs := model.Preferences{LastMentionedDestination: "goa"}

	reply := generateLocalResponse(Intent{Type: IntentTiming, Contextual: true}, prefs, sample())
	assert.Contains(t, reply, "Best time for Goa Beaches")
	assert.Contains(t, reply, "Nov-Feb (perfect beach weather)")
	assert.Contains(t, reply, "₹6,000 | ⭐ 4.6/5.0")

	reply = generateLocalResponse(Intent{Type: IntentBudget, Contextual: true}, prefs, sample())
	assert.Contains(t, reply, "Your budget: ₹30,000 (₹6,000/day)")
	assert.Contains(t, reply, "Perfect fit for your budget!")

	prefs.Budget = 4000
	prefs.Duration = 3
	reply = generateLocalResponse(Intent{Type: IntentBudget, Contextual: true}, prefs, sample())
	assert.Contains(t, reply, "Your budget: ₹4,000 (₹1,333/day)")
	assert.Contains(t, reply, "Might need budget adjustment")

	reply = generateLocalResponse(Intent{Type: IntentItinerary, Contextual: true}, prefs, sample())
	assert.Contains(t, reply, "3-day Goa Beaches plan")
	assert.Contains(t, reply, "**Day 3+:** Local experiences & departure")

	prefs.Duration = 2
	reply = generateLocalResponse(Intent{Type: IntentItinerary, Contextual: true}, prefs, sample())
	assert.Contains(t, reply, "**Day 2:** Local experiences & departure")

	reply = generateLocalResponse(Intent{Type: IntentDestination, Contextual: true}, prefs, sample())
	assert.Contains(t, reply, "🏛️ **Goa Beaches** in Panaji")
	assert.Contains(t, reply, "Sunscreen mandatory")
}

func TestClimateBands(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"Rajasthan", "Oct-Mar (cool & pleasant)"},
		{"Uttar Pradesh", "Oct-Mar (cool & pleasant)"},
		{"Kerala", "Nov-Feb (comfortable)"},
		{"Himachal Pradesh", "Mar-Jun, Sep-Nov"},
		{"Goa", "Nov-Feb (perfect beach weather)"},
		{"Punjab", "Oct-Mar (generally pleasant)"},
	}

	for _, tt := range tests {
		assert.Contains(t, climateFor(tt.state), tt.want, tt.state)
	}
}

func TestDestinationLookup(t *testing.T) {
	reply := destinationResponse([]string{"kerala"}, sample())
	assert.Contains(t, reply, "🏛️ **Kerala Backwaters** in Alleppey")
	assert.Contains(t, reply, "💰 Starting at: ₹8,000 | ⭐ 4.7/5.0 | 🏷️ Nature")
	assert.Contains(t, reply, "Experience the serene beauty of Kerala's backwaters with traditional houseboat stays....")

	reply = destinationResponse([]string{"historical"}, sample())
	assert.Contains(t, reply, "**Taj Mahal** in Agra")

	reply = destinationResponse([]string{"ladakh"}, sample())
	assert.Contains(t, reply, "Top destinations")
	assert.Contains(t, reply, "• **Golden Temple** (Amritsar) - ₹3,000+ | ⭐4.9")
}

func TestUnresolvedContextFallsThrough(t *testing.T) {
	prefs := model.Preferences{LastMentionedDestination: "ladakh"}

	reply := generateLocalResponse(Intent{Type: IntentTiming, Contextual: true}, prefs, sample())
	assert.Equal(t, timingMessage, reply)
}

func TestGeneralResponse(t *testing.T) {
	reply := generateLocalResponse(Intent{Type: IntentGeneral}, model.Preferences{}, sample())
	assert.Contains(t, reply, "Featured destinations")
	assert.Contains(t, reply, "Taj Mahal")
	assert.NotContains(t, reply, "Golden Temple")

	reply = generateLocalResponse(Intent{Type: IntentGeneral}, model.Preferences{}, []model.Destination{{ID: 1, Name: "Plain"}})
	assert.Equal(t, welcomeMessage, reply)
}

func TestFixedBlocks(t *testing.T) {
	assert.Equal(t, foodMessage, generateLocalResponse(Intent{Type: IntentFood}, model.Preferences{}, sample()))
	assert.Equal(t, cultureMessage, generateLocalResponse(Intent{Type: IntentCulture}, model.Preferences{}, sample()))
	assert.Equal(t, timingMessage, generateLocalResponse(Intent{Type: IntentTiming}, model.Preferences{}, sample()))
}

func TestTips(t *testing.T) {
	assert.Contains(t, tipsFor("Historical"), "Hire local guides")
	assert.Contains(t, tipsFor("Religious"), "Remove shoes at temples")
	assert.Equal(t, defaultTips, tipsFor("Wellness"))
}

func TestRankByRatingIsStable(t *testing.T) {
	ranked := rankByRating(sample())

	names := make([]string, 0, len(ranked))
	for _, d := range ranked {
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{
		"Golden Temple", "Taj Mahal", "Himalayan Trek", "Kerala Backwaters", "Goa Beaches", "Rajasthan Palaces",
	}, names)
}
