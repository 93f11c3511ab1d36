package agent

import (
	"fmt"
	"strings"

	"ariatravel/app/model"

	_ "embed"

	"github.com/elliotchance/pie/v2"
)

//go:embed system_prompt.txt
var systemPromptTemplate string

const (
	promptDestinations   = 10
	promptHistory        = 3
	promptDescriptionLen = 100
	notSpecified         = "Not specified"
	noneValue            = "None"
)

func buildSystemContext(state *ConversationState, intent Intent) string {
	prefs := state.Preferences

	budget := notSpecified
	if prefs.Budget > 0 {
		budget = rupees(prefs.Budget)
	}

	duration := notSpecified
	if prefs.Duration > 0 {
		duration = fmt.Sprintf("%d days", prefs.Duration)
	}

	contextual := "No"
	if intent.Contextual {
		contextual = "Yes"
	}

	templateValues := []string{
		"query", state.CurrentQuery,
		"intent", string(intent.Type),
		"contextual", contextual,
		"entities", joinOr(intent.Entities, "none"),
		"budget", budget,
		"duration", duration,
		"interests", joinOr(prefs.Interests, noneValue),
		"last_destination", valueOrString(prefs.LastMentionedDestination, noneValue),
		"destinations", formatDestinations(state.Destinations),
		"history", formatHistory(state.Messages),
	}

	// single pass: substituted values are never scanned for placeholders
	pairs := make([]string, 0, len(templateValues))
	for i := 0; i < len(templateValues); i += 2 {
		pairs = append(pairs, "{"+templateValues[i]+"}", templateValues[i+1])
	}

	return strings.NewReplacer(pairs...).Replace(systemPromptTemplate)
}

func formatDestinations(destinations []model.Destination) string {
	if len(destinations) == 0 {
		return "No destination data available"
	}

	lines := pie.Map(top(destinations, promptDestinations), func(d model.Destination) string {
		return fmt.Sprintf("- %s in %s, %s: %s... (%s+ | Rating: %s | Category: %s)",
			d.Name, d.Location, d.State, truncate(d.Description, promptDescriptionLen),
			rupees(d.PriceFrom), rating(d.Rating), d.Category)
	})

	return strings.Join(lines, "\n")
}

func formatHistory(messages []model.Message) string {
	recent := model.TrimTail(messages, promptHistory)
	if len(recent) == 0 {
		return "No recent messages"
	}

	var builder strings.Builder

	for _, msg := range recent {
		builder.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}

	return strings.TrimRight(builder.String(), "\n")
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}

	return strings.Join(values, ", ")
}

func valueOrString(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
