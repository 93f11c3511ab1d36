package agent

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ariatravel/app/model"

	"github.com/dustin/go-humanize"
	"github.com/elliotchance/pie/v2"
)

const (
	defaultBudget           = 50000
	defaultBudgetDuration   = 7
	defaultItineraryBudget  = 40000
	defaultItineraryDays    = 7
	defaultContextualBudget = 30000
	defaultContextualDays   = 5
	defaultPlanDays         = 3

	itineraryBudgetShare = 0.7
	maxItineraryStops    = 3
	topListSize          = 3
	detailDescriptionLen = 120
)

const fallbackMessage = `🤖 I'm here to help with India travel!

Ask me about:
• Destinations & prices
• Budget planning
• Itineraries
• Best times to visit

What would you like to know? 🎯`

const welcomeMessage = `🇮🇳 **Welcome to ARIA!**

I'm your India travel assistant. Ask me about:
• Destinations & prices
• Budget planning
• Itineraries
• Best travel times

What interests you? 🎯`

const foodMessage = `🍽️ **Indian cuisine highlights:**

**🌶️ North:** Butter Chicken, Naan, Kebabs
**🥥 South:** Dosa, Idli, Coconut Curry
**🦐 Coastal:** Fish Curry, Seafood

**💡 Food tips:**
• Try thalis for variety
• Street food at busy places
• Start mild, build spice tolerance

Which region's food interests you? 🍛`

const cultureMessage = `🎭 **Cultural experiences:**

**🎊 Festivals:** Diwali (Oct-Nov), Holi (Mar)
**🏛️ Heritage:** Rajasthan palaces, Kerala arts
**🎨 Crafts:** Block printing, weaving

**💡 Culture tips:**
• Dress modestly at temples
• Ask before photographing
• Learn basic local greetings

Which cultural aspect interests you? 🪔`

const timingMessage = `🌤️ **India travel timing:**

**🏙️ North (Delhi, Rajasthan):** Oct-Mar
**🏝️ South (Kerala, Goa):** Nov-Feb
**🏔️ Mountains:** Mar-Jun, Sep-Nov
**🏖️ Beaches:** Nov-Feb

Which region interests you? 🎯`

const noItineraryMessage = "Tell me your budget and interests for a perfect itinerary! 🎯"

var climateBands = []struct {
	states []string
	text   string
}{
	{[]string{"rajasthan", "delhi", "uttar pradesh"}, "**Best:** Oct-Mar (cool & pleasant)\n**Avoid:** May-Jun (extreme heat)"},
	{[]string{"kerala", "tamil nadu", "karnataka"}, "**Best:** Nov-Feb (comfortable)\n**Monsoon:** Jun-Sep (heavy rain)"},
	{[]string{"himachal", "uttarakhand"}, "**Best:** Mar-Jun, Sep-Nov\n**Winter:** Dec-Feb (snow, cold)"},
	{[]string{"goa"}, "**Best:** Nov-Feb (perfect beach weather)\n**Avoid:** Jun-Sep (monsoon)"},
}

const defaultClimate = "**Best:** Oct-Mar (generally pleasant)\n**Check:** Local weather patterns"

var categoryTips = map[string]string{
	"heritage":   "• Visit early morning\n• Hire local guides\n• Respect photography rules",
	"historical": "• Visit early morning\n• Hire local guides\n• Respect photography rules",
	"nature":     "• Comfortable shoes essential\n• Best in pleasant weather\n• Book eco-stays",
	"beach":      "• Sunscreen mandatory\n• Try local seafood\n• Respect dress codes",
	"spiritual":  "• Dress modestly\n• Remove shoes at temples\n• Maintain silence",
	"religious":  "• Dress modestly\n• Remove shoes at temples\n• Maintain silence",
	"adventure":  "• Book activities ahead\n• Check weather\n• Follow safety rules",
}

const defaultTips = "• Plan ahead\n• Try local experiences\n• Stay flexible"

// generateLocalResponse renders a reply from templates. It never fails and
// never returns an empty string.
func generateLocalResponse(intent Intent, prefs model.Preferences, destinations []model.Destination) string {
	if intent.Contextual && prefs.LastMentionedDestination != "" {
		if dest, ok := resolveDestination(destinations, prefs.LastMentionedDestination); ok {
			return contextualResponse(intent.Type, dest, prefs)
		}
	}

	switch intent.Type {
	case IntentDestination:
		return destinationResponse(intent.Entities, destinations)
	case IntentBudget:
		return budgetResponse(prefs, destinations)
	case IntentItinerary:
		return itineraryResponse(prefs, destinations)
	case IntentFood:
		return foodMessage
	case IntentCulture:
		return cultureMessage
	case IntentTiming:
		return timingMessage
	default:
		return generalResponse(destinations)
	}
}

func contextualResponse(intentType IntentType, dest model.Destination, prefs model.Preferences) string {
	switch intentType {
	case IntentTiming:
		return timingForDestination(dest)
	case IntentBudget:
		return budgetForDestination(dest, prefs)
	case IntentItinerary:
		return itineraryForDestination(dest, prefs)
	default:
		return destinationDetails(dest)
	}
}

// resolveDestination finds the first record whose name, location or state
// mentions the remembered place.
func resolveDestination(destinations []model.Destination, place string) (model.Destination, bool) {
	place = strings.ToLower(place)

	index := pie.FindFirstUsing(destinations, func(d model.Destination) bool {
		return containsFold(d.Name, place) ||
			containsFold(d.Location, place) ||
			containsFold(d.State, place)
	})
	if index < 0 {
		return model.Destination{}, false
	}

	return destinations[index], true
}

func timingForDestination(dest model.Destination) string {
	return fmt.Sprintf(`🌤️ **Best time for %s:**

%s

💰 Starting at: %s | ⭐ %s/5.0`,
		dest.Name, climateFor(dest.State), rupees(dest.PriceFrom), rating(dest.Rating))
}

func budgetForDestination(dest model.Destination, prefs model.Preferences) string {
	budget := valueOr(prefs.Budget, defaultContextualBudget)
	duration := valueOr(prefs.Duration, defaultContextualDays)
	daily := int(math.Round(float64(budget) / float64(duration)))

	verdict := "⚠️ Might need budget adjustment"
	if budget >= dest.PriceFrom {
		verdict = "✅ Perfect fit for your budget!"
	}

	return fmt.Sprintf(`💰 **Budget for %s:**

Starting at: %s+ per person
Your budget: %s (%s/day)

%s

**💡 Tips:**
• Book 2-3 weeks ahead for better rates
• Consider shoulder season for savings`,
		dest.Name, rupees(dest.PriceFrom), rupees(budget), rupees(daily), verdict)
}

func itineraryForDestination(dest model.Destination, prefs model.Preferences) string {
	duration := valueOr(prefs.Duration, defaultPlanDays)

	lastDays := "2"
	if duration > 2 {
		lastDays = "3+"
	}

	return fmt.Sprintf(`📅 **%d-day %s plan:**

**Day 1-2:** Arrival & main attractions
**Day %s:** Local experiences & departure

💰 Budget: %s+ per person
⭐ Rating: %s/5.0

Need detailed day-wise plan? 🎯`,
		duration, dest.Name, lastDays, rupees(dest.PriceFrom), rating(dest.Rating))
}

func destinationResponse(entities []string, destinations []model.Destination) string {
	matches := pie.Filter(destinations, func(d model.Destination) bool {
		return pie.Any(entities, func(entity string) bool {
			return containsFold(d.Name, entity) ||
				containsFold(d.Location, entity) ||
				containsFold(d.State, entity) ||
				containsFold(d.Category, entity)
		})
	})

	if len(matches) > 0 {
		return destinationDetails(rankByRating(matches)[0])
	}

	return fmt.Sprintf(`🇮🇳 **Top destinations:**

%s

Which interests you? 🎯`, listWithLocation(top(rankByRating(destinations), topListSize)))
}

func destinationDetails(dest model.Destination) string {
	return fmt.Sprintf(`🏛️ **%s** in %s
💰 Starting at: %s | ⭐ %s/5.0 | 🏷️ %s

**Why Visit:**
%s...

**💡 Travel Tips:**
%s

Need itinerary or timing details? 🎯`,
		dest.Name, dest.Location, rupees(dest.PriceFrom), rating(dest.Rating), dest.Category,
		truncate(dest.Description, detailDescriptionLen), tipsFor(dest.Category))
}

func budgetResponse(prefs model.Preferences, destinations []model.Destination) string {
	budget := valueOr(prefs.Budget, defaultBudget)
	duration := valueOr(prefs.Duration, defaultBudgetDuration)

	affordable := pie.Filter(destinations, func(d model.Destination) bool {
		return d.PriceFrom <= budget
	})

	list := "No destination fits this budget yet, a little more would open up options."
	if picks := top(rankByRating(affordable), topListSize); len(picks) > 0 {
		list = strings.Join(pie.Map(picks, func(d model.Destination) string {
			return fmt.Sprintf("• **%s** - %s+ | ⭐%s", d.Name, rupees(d.PriceFrom), rating(d.Rating))
		}), "\n")
	}

	return fmt.Sprintf(`💰 **Budget %s for %d days:**

%s

**💡 Budget Tips:**
• Accommodation: 35%% (%s)
• Food & Transport: 50%% (%s)
• Activities: 15%% (%s)

Which destination interests you? 🎯`,
		rupees(budget), duration, list,
		rupees(share(budget, 0.35)), rupees(share(budget, 0.5)), rupees(share(budget, 0.15)))
}

func itineraryResponse(prefs model.Preferences, destinations []model.Destination) string {
	duration := valueOr(prefs.Duration, defaultItineraryDays)
	budget := valueOr(prefs.Budget, defaultItineraryBudget)
	limit := float64(budget) * itineraryBudgetShare

	candidates := pie.Filter(destinations, func(d model.Destination) bool {
		return float64(d.PriceFrom) <= limit
	})

	stops := min(maxItineraryStops, (duration+1)/2)
	selected := top(rankByRating(candidates), stops)
	if len(selected) == 0 {
		return noItineraryMessage
	}

	days := duration / len(selected)

	blocks := make([]string, 0, len(selected))
	for i, d := range selected {
		blocks = append(blocks, fmt.Sprintf("**Days %d-%d: %s**\n%s+ | ⭐%s | %s",
			i*days+1, (i+1)*days, d.Name, rupees(d.PriceFrom), rating(d.Rating), d.Category))
	}

	return fmt.Sprintf(`📅 **%d-day itinerary:**

%s

**💡 Pro tip:** Book trains early for better prices!

Need specific destination details? 🎯`, duration, strings.Join(blocks, "\n\n"))
}

func generalResponse(destinations []model.Destination) string {
	featured := pie.Filter(destinations, func(d model.Destination) bool {
		return d.Featured
	})
	if len(featured) == 0 {
		return welcomeMessage
	}

	return fmt.Sprintf(`🇮🇳 **Featured destinations:**

%s

What would you like to explore? 🎯`, listWithLocation(top(rankByRating(featured), topListSize)))
}

func listWithLocation(destinations []model.Destination) string {
	return strings.Join(pie.Map(destinations, func(d model.Destination) string {
		return fmt.Sprintf("• **%s** (%s) - %s+ | ⭐%s", d.Name, d.Location, rupees(d.PriceFrom), rating(d.Rating))
	}), "\n")
}

func climateFor(state string) string {
	for _, band := range climateBands {
		if containsAny(strings.ToLower(state), band.states...) {
			return band.text
		}
	}

	return defaultClimate
}

func tipsFor(category string) string {
	if tips, ok := categoryTips[strings.ToLower(category)]; ok {
		return tips
	}

	return defaultTips
}

// rankByRating sorts by rating descending, ties by id. The input is not
// modified.
func rankByRating(destinations []model.Destination) []model.Destination {
	return pie.SortUsing(destinations, func(a, b model.Destination) bool {
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ID < b.ID
	})
}

func top(destinations []model.Destination, n int) []model.Destination {
	if n <= 0 {
		return nil
	}

	return pie.Top(destinations, n)
}

func share(amount int, part float64) int {
	return int(math.Round(float64(amount) * part))
}

func rupees(amount int) string {
	return "₹" + humanize.Comma(int64(amount))
}

func rating(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func valueOr(value, fallback int) int {
	if value > 0 {
		return value
	}

	return fallback
}
