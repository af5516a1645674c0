package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"storyteller/internal/model"
)

// ParseChoiceEventContent runs raw completion text through the tiered
// fallback chain:
//
//  1. slice the first '{' .. last '}' span as a JSON candidate;
//  2. decode it as the {"Events": [...]} envelope and keep events with
//     non-empty narrative and at least one option;
//  3. decode the same span as a single legacy event object, folding the
//     singular "Consequence" field into Consequences;
//  4. with no JSON span at all, fall back to structured text: first line as
//     narrative, numbered/bulleted lines as options.
//
// An event with zero options is never returned as a success — a dilemma
// with no options is not a dilemma. RawContent is always retained on the
// result for diagnostics.
func ParseChoiceEventContent(raw string) model.ChoiceEventResult {
	result := model.ChoiceEventResult{
		RawContent: raw,
		Events:     []model.ChoiceEvent{},
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		if ev, ok := parseStructuredText(raw); ok {
			result.Success = true
			result.Events = []model.ChoiceEvent{ev}
			return result
		}
		result.Error = fmt.Sprintf("No JSON object found in response (length=%d)", len(raw))
		return result
	}
	candidate := raw[start : end+1]

	if events, ok := parseEnvelope(candidate); ok {
		result.Success = true
		result.Events = events
		return result
	}
	if ev, ok := parseSingleEvent(candidate); ok {
		result.Success = true
		result.Events = []model.ChoiceEvent{ev}
		return result
	}

	result.Error = "JSON object found but Events/NarrativeText missing or empty"
	return result
}

// parseEnvelope attempts the preferred multi-event shape.
func parseEnvelope(candidate string) ([]model.ChoiceEvent, bool) {
	var env model.ChoiceEventEnvelope
	if err := json.Unmarshal([]byte(candidate), &env); err != nil {
		return nil, false
	}
	valid := make([]model.ChoiceEvent, 0, len(env.Events))
	for _, ev := range env.Events {
		foldLegacyConsequences(&ev)
		if strings.TrimSpace(ev.NarrativeText) != "" && len(ev.Options) > 0 {
			valid = append(valid, ev)
		}
	}
	if len(valid) == 0 {
		return nil, false
	}
	return valid, true
}

// parseSingleEvent attempts the legacy non-enveloped single event.
func parseSingleEvent(candidate string) (model.ChoiceEvent, bool) {
	var ev model.ChoiceEvent
	if err := json.Unmarshal([]byte(candidate), &ev); err != nil {
		return model.ChoiceEvent{}, false
	}
	foldLegacyConsequences(&ev)
	if strings.TrimSpace(ev.NarrativeText) == "" || len(ev.Options) == 0 {
		return model.ChoiceEvent{}, false
	}
	return ev, true
}

// foldLegacyConsequences moves a singular Consequence field into the modern
// Consequences list. Older producers emit the singular form.
func foldLegacyConsequences(ev *model.ChoiceEvent) {
	for i := range ev.Options {
		opt := &ev.Options[i]
		if opt.Consequence != nil {
			opt.Consequences = append(opt.Consequences, *opt.Consequence)
			opt.Consequence = nil
		}
	}
}

// parseStructuredText derives a best-effort event from plain text: the
// first non-empty line becomes the narrative, subsequent numbered or
// bulleted lines become options. Fails when no options can be derived.
func parseStructuredText(raw string) (model.ChoiceEvent, bool) {
	var ev model.ChoiceEvent
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if ev.NarrativeText == "" {
			ev.NarrativeText = line
			continue
		}
		if label, ok := stripOptionPrefix(line); ok {
			ev.Options = append(ev.Options, model.ChoiceOption{Label: label})
		}
	}
	if ev.NarrativeText == "" || len(ev.Options) == 0 {
		return model.ChoiceEvent{}, false
	}
	return ev, true
}

// stripOptionPrefix recognizes "1. foo", "2) foo", "- foo" and "* foo"
// option lines and returns the bare label.
func stripOptionPrefix(line string) (string, bool) {
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		label := strings.TrimSpace(line[2:])
		return label, label != ""
	}
	for i, r := range line {
		if r >= '0' && r <= '9' {
			continue
		}
		if i > 0 && (r == '.' || r == ')') {
			label := strings.TrimSpace(line[i+1:])
			return label, label != ""
		}
		break
	}
	return "", false
}

// RandRange returns an int in [min, max). Injected so event selection is
// deterministic under test; production callers pass a rand-backed func.
type RandRange func(min, max int) int

// GetRandomEvent picks exactly one event from a successful parse result,
// uniformly via randRange. Selection is a caller operation: the engine
// always exposes the full list.
func GetRandomEvent(result model.ChoiceEventResult, randRange RandRange) (model.ChoiceEvent, bool) {
	if !result.Success || len(result.Events) == 0 {
		return model.ChoiceEvent{}, false
	}
	if len(result.Events) == 1 {
		return result.Events[0], true
	}
	idx := randRange(0, len(result.Events))
	if idx < 0 || idx >= len(result.Events) {
		idx = 0
	}
	return result.Events[idx], true
}
