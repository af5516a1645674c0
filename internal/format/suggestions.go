package format

import (
	"fmt"
	"strconv"
	"strings"

	"storyteller/internal/snapshot"
)

// Food supply below this many days counts as scarce.
const foodScarcityDays = 5.0

// genericSuggestions is the fallback when nothing in the snapshot stands out.
var genericSuggestions = []string{
	"A stranger arrives at the colony gates asking for shelter",
	"An old cache is discovered beneath the colony grounds",
	"A dispute breaks out over how the colony should be run",
}

// ChoiceSuggestions derives candidate dilemma topics from snapshot state:
// deaths, prisoners, relationship drama, food scarcity, faction standings,
// active threats and stressed colonists. Falls back to three generic prompts
// when nothing notable is found.
func ChoiceSuggestions(s snapshot.Snapshot) []string {
	var out []string

	history := s.History()
	if len(history.Deaths) > 0 {
		last := history.Deaths[len(history.Deaths)-1]
		out = append(out, fmt.Sprintf("The colony is still reeling from the death of %s", last.Name))
	}

	if prisoners := s.Prisoners(); len(prisoners) > 0 {
		out = append(out, fmt.Sprintf("A decision must be made about the prisoner %s", prisoners[0].Name))
	}

	if drama, ok := findRelationshipDrama(s.Colonists()); ok {
		out = append(out, drama)
	}

	if days, ok := parseLeadingFloat(s.Resources().Food); ok && days < foodScarcityDays {
		out = append(out, fmt.Sprintf("Food stores are down to %s - rationing may be needed", s.Resources().Food))
	}

	for _, f := range s.Factions() {
		if f.Hostile {
			out = append(out, fmt.Sprintf("The hostile faction %s is stirring", f.Name))
			break
		}
	}
	for _, f := range s.Factions() {
		if !f.Hostile && f.Goodwill > 50 {
			out = append(out, fmt.Sprintf("An envoy from the friendly faction %s arrives with a request", f.Name))
			break
		}
	}

	if threats := s.Threats(); len(threats) > 0 {
		out = append(out, fmt.Sprintf("The colony must respond to an active threat: %s", threats[0].Description))
	}

	for _, c := range s.Colonists() {
		if c.Stressed {
			out = append(out, fmt.Sprintf("%s is close to a breakdown and needs relief", c.Name))
			break
		}
	}

	if len(out) == 0 {
		out = append(out, genericSuggestions...)
	}
	return out
}

// findRelationshipDrama looks for a strongly negative bond between
// colonists worth building a dilemma around.
func findRelationshipDrama(colonists []snapshot.ColonistInfo) (string, bool) {
	for _, c := range colonists {
		for _, r := range c.Relationships {
			if r.Opinion <= -20 {
				return fmt.Sprintf("Tension between %s and %s is boiling over", c.Name, r.Other), true
			}
		}
	}
	return "", false
}

// parseLeadingFloat extracts the first number from a human-readable value
// such as "4.2 days worth".
func parseLeadingFloat(s string) (float64, bool) {
	start := -1
	for i, r := range s {
		if (r >= '0' && r <= '9') || (start != -1 && r == '.') {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			v, err := strconv.ParseFloat(strings.TrimSuffix(s[start:i], "."), 64)
			return v, err == nil
		}
	}
	if start != -1 {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s[start:], "."), 64)
		return v, err == nil
	}
	return 0, false
}
