// Package format serializes a world snapshot into the bounded prompt text
// the engine sends ahead of narration and choice requests. Output is
// deterministic for a given snapshot: sections appear in fixed order, lists
// are capped and stably sorted, and empty sections are omitted entirely.
package format

import (
	"fmt"
	"sort"
	"strings"

	"storyteller/internal/journal"
	"storyteller/internal/snapshot"
)

// Section caps. "Take last N" lists keep chronological order and drop the
// oldest entries; ranked lists sort stably before cutting.
const (
	narrationColonistCap = 6
	narrationFactionCap  = 5
	choiceFactionCap     = 8
	recentEventCap       = 5
	deathCap             = 5
	battleCap            = 5
	significantCap       = 5
	socialCap            = 5
	nemesisCap           = 5
	legendCap            = 3
	timelineCap          = 10
)

// NarrationContext renders the light context document used ahead of
// atmospheric flavor text.
func NarrationContext(s snapshot.Snapshot) string {
	var sb strings.Builder

	writeColonySection(&sb, s.Colony())

	colonists := s.Colonists()
	if len(colonists) > 0 {
		sb.WriteString(fmt.Sprintf("Colonists (%d):\n", len(colonists)))
		shown := colonists
		if len(shown) > narrationColonistCap {
			shown = shown[:narrationColonistCap]
		}
		for _, c := range shown {
			sb.WriteString(colonistDetailLine(c))
			sb.WriteString("\n")
		}
		if extra := len(colonists) - narrationColonistCap; extra > 0 {
			sb.WriteString(fmt.Sprintf("...and %d more colonists\n", extra))
		}
		sb.WriteString("\n")
	}

	writeResourceSection(&sb, s.Resources())
	writeEnvironmentSection(&sb, s.Environment())
	writeFactionSection(&sb, s.Factions(), narrationFactionCap)

	if recent := takeLast(s.History().RecentEvents, recentEventCap); len(recent) > 0 {
		sb.WriteString("Recent Events:\n")
		for _, ev := range recent {
			sb.WriteString("- " + ev + "\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String())
}

// ChoiceContext renders the heavy context document used ahead of dilemma
// generation. currentEvent, when non-empty, is appended as the situation the
// dilemma should grow out of.
func ChoiceContext(s snapshot.Snapshot, currentEvent string) string {
	var sb strings.Builder

	writeColonySection(&sb, s.Colony())

	colonists := s.Colonists()
	if len(colonists) > 0 {
		sb.WriteString(fmt.Sprintf("Colonists (%d):\n", len(colonists)))
		for _, c := range colonists {
			writeColonistFull(&sb, c)
		}
		sb.WriteString("\n")
	}

	if prisoners := s.Prisoners(); len(prisoners) > 0 {
		sb.WriteString(fmt.Sprintf("Prisoners (%d):\n", len(prisoners)))
		for _, p := range prisoners {
			line := "- " + p.Name
			if p.Faction != "" {
				line += " (of " + p.Faction + ")"
			}
			if p.Status != "" {
				line += ": " + p.Status
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	writeResourceSection(&sb, s.Resources())
	writeEnvironmentSection(&sb, s.Environment())

	if threats := s.Threats(); len(threats) > 0 {
		sb.WriteString("Active Threats:\n")
		for _, t := range threats {
			line := "- " + t.Description
			if t.Severity != "" {
				line += " [" + t.Severity + "]"
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	writeFactionSection(&sb, s.Factions(), choiceFactionCap)

	history := s.History()
	if social := takeLast(history.Social, socialCap); len(social) > 0 {
		sb.WriteString("Recent Social Interactions:\n")
		for _, line := range social {
			sb.WriteString("- " + line + "\n")
		}
		sb.WriteString("\n")
	}

	writeHistorySection(&sb, history)
	writeTimelineSection(&sb, s.Journal())

	if currentEvent != "" {
		sb.WriteString("Current Event:\n" + currentEvent + "\n")
	}

	return strings.TrimSpace(sb.String())
}

func writeColonySection(sb *strings.Builder, colony snapshot.ColonyInfo) {
	if colony.Name == "" {
		return
	}
	sb.WriteString("Colony: " + colony.Name)
	if colony.DateString != "" {
		sb.WriteString(fmt.Sprintf(" (%s, day %d)", colony.DateString, colony.DaysPassed))
	} else if colony.DaysPassed > 0 {
		sb.WriteString(fmt.Sprintf(" (day %d)", colony.DaysPassed))
	}
	sb.WriteString("\n\n")
}

func writeResourceSection(sb *strings.Builder, res snapshot.ResourceInfo) {
	if res.Food == "" && res.Medicine == "" && res.Wealth == "" && len(res.Notable) == 0 {
		return
	}
	sb.WriteString("Resources:\n")
	if res.Food != "" {
		sb.WriteString("  Food: " + res.Food + "\n")
	}
	if res.Medicine != "" {
		sb.WriteString("  Medicine: " + res.Medicine + "\n")
	}
	if res.Wealth != "" {
		sb.WriteString("  Wealth: " + res.Wealth + "\n")
	}
	for _, item := range res.Notable {
		sb.WriteString("  " + item + "\n")
	}
	sb.WriteString("\n")
}

func writeEnvironmentSection(sb *strings.Builder, env snapshot.EnvironmentInfo) {
	if env.Biome == "" && env.Season == "" && env.Weather == "" && env.Temperature == "" {
		return
	}
	sb.WriteString("Environment:\n")
	if env.Biome != "" {
		sb.WriteString("  Biome: " + env.Biome + "\n")
	}
	if env.Season != "" {
		sb.WriteString("  Season: " + env.Season + "\n")
	}
	if env.Weather != "" {
		sb.WriteString("  Weather: " + env.Weather + "\n")
	}
	if env.Temperature != "" {
		sb.WriteString("  Temperature: " + env.Temperature + "\n")
	}
	sb.WriteString("\n")
}

// writeFactionSection emits relations filtered to relevant factions
// (non-zero goodwill or explicitly hostile), ordered by descending absolute
// goodwill, capped at limit.
func writeFactionSection(sb *strings.Builder, factions []snapshot.FactionInfo, limit int) {
	relevant := make([]snapshot.FactionInfo, 0, len(factions))
	for _, f := range factions {
		if f.Goodwill != 0 || f.Hostile {
			relevant = append(relevant, f)
		}
	}
	if len(relevant) == 0 {
		return
	}
	sort.SliceStable(relevant, func(i, j int) bool {
		return abs(relevant[i].Goodwill) > abs(relevant[j].Goodwill)
	})
	if len(relevant) > limit {
		relevant = relevant[:limit]
	}

	sb.WriteString("Faction Relations:\n")
	for _, f := range relevant {
		line := fmt.Sprintf("  %s: goodwill %+d", f.Name, f.Goodwill)
		if f.Hostile {
			line += " (hostile)"
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

func writeHistorySection(sb *strings.Builder, history snapshot.HistoryInfo) {
	if significant := rankSignificant(history.Significant); len(significant) > 0 {
		sb.WriteString("Notable History:\n")
		for _, ev := range significant {
			sb.WriteString("- " + ev.Text + "\n")
		}
		sb.WriteString("\n")
	}

	if deaths := takeLast(history.Deaths, deathCap); len(deaths) > 0 {
		sb.WriteString("Deaths:\n")
		for _, d := range deaths {
			line := "- " + d.Name
			if d.Cause != "" {
				line += " (" + d.Cause + ")"
			}
			if d.When != "" {
				line += ", " + d.When
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	if battles := takeLast(history.Battles, battleCap); len(battles) > 0 {
		sb.WriteString("Battle History:\n")
		for _, b := range battles {
			sb.WriteString("- " + b + "\n")
		}
		sb.WriteString("\n")
	}

	nemeses := make([]snapshot.NemesisInfo, 0, len(history.Nemeses))
	for _, n := range history.Nemeses {
		if !n.Retired {
			nemeses = append(nemeses, n)
		}
	}
	if len(nemeses) > nemesisCap {
		nemeses = nemeses[:nemesisCap]
	}
	if len(nemeses) > 0 {
		sb.WriteString("Known Nemeses:\n")
		for _, n := range nemeses {
			line := "- " + n.Name
			if n.Title != "" {
				line += ", " + n.Title
			}
			if n.Grudge != "" {
				line += " (" + n.Grudge + ")"
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	legends := make([]snapshot.LegendInfo, 0, len(history.Legends))
	for _, l := range history.Legends {
		if !l.Destroyed && l.Summary != "" {
			legends = append(legends, l)
		}
	}
	if len(legends) > legendCap {
		legends = legends[:legendCap]
	}
	if len(legends) > 0 {
		sb.WriteString("Colony Legends:\n")
		for _, l := range legends {
			sb.WriteString("- " + l.Name + ": " + l.Summary + "\n")
		}
		sb.WriteString("\n")
	}
}

// writeTimelineSection renders the recent story timeline from the journal.
// Degrades to silently absent when the journal is unavailable: formatting
// must never fail because history is missing.
func writeTimelineSection(sb *strings.Builder, reader snapshot.TimelineReader) {
	if reader == nil {
		return
	}
	entries := reader.RecentTimeline(timelineCap)
	if len(entries) == 0 {
		return
	}
	sb.WriteString("Recent Story Timeline:\n")
	for _, e := range entries {
		marker := "[EVENT]"
		if e.Type == journal.EntryTypeChoice {
			marker = "[CHOICE]"
		}
		line := marker + " "
		if e.DateString != "" {
			line += e.DateString + ": "
		}
		line += e.Text
		if e.ChoiceMade != "" {
			line += " (chose: " + e.ChoiceMade + ")"
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// rankSignificant sorts stably by significance descending and cuts to cap.
func rankSignificant(events []snapshot.HistoryEvent) []snapshot.HistoryEvent {
	ranked := make([]snapshot.HistoryEvent, len(events))
	copy(ranked, events)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Significance > ranked[j].Significance
	})
	if len(ranked) > significantCap {
		ranked = ranked[:significantCap]
	}
	return ranked
}

// takeLast keeps the newest n items of a chronological list without
// reversing it, so continuity reads oldest-to-newest.
func takeLast[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
