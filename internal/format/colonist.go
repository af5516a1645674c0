package format

import (
	"fmt"
	"sort"
	"strings"

	"storyteller/internal/snapshot"
)

const (
	topSkills        = 3
	topRelationships = 3
)

// colonistDetailLine renders the one-line form used in narration context:
// name, age, gender, role and traits, with health and mood only when they
// are worth mentioning.
func colonistDetailLine(c snapshot.ColonistInfo) string {
	var parts []string

	head := c.Name
	if c.Age > 0 || c.Gender != "" {
		var meta []string
		if c.Age > 0 {
			meta = append(meta, fmt.Sprintf("%d", c.Age))
		}
		if c.Gender != "" {
			meta = append(meta, c.Gender)
		}
		head += " (" + strings.Join(meta, ", ") + ")"
	}
	if c.Role != "" {
		head += ", " + c.Role
	}
	parts = append(parts, head)

	if len(c.Traits) > 0 {
		parts = append(parts, "traits: "+strings.Join(c.Traits, ", "))
	}
	if c.Health != "" {
		parts = append(parts, "health: "+c.Health)
	}
	if c.Mood != "" {
		parts = append(parts, "mood: "+c.Mood)
	}

	return "- " + strings.Join(parts, " | ")
}

// writeColonistFull renders the multi-line form used in choice context,
// adding backstory, top skills and relationships, and current activity.
func writeColonistFull(sb *strings.Builder, c snapshot.ColonistInfo) {
	sb.WriteString(colonistDetailLine(c) + "\n")

	if c.Backstory != "" {
		sb.WriteString("    Backstory: " + c.Backstory + "\n")
	}

	if len(c.Skills) > 0 {
		skills := make([]snapshot.SkillInfo, len(c.Skills))
		copy(skills, c.Skills)
		sort.SliceStable(skills, func(i, j int) bool { return skills[i].Level > skills[j].Level })
		if len(skills) > topSkills {
			skills = skills[:topSkills]
		}
		rendered := make([]string, 0, len(skills))
		for _, s := range skills {
			entry := fmt.Sprintf("%s %d", s.Name, s.Level)
			if s.Passion != "" {
				entry += " (" + s.Passion + ")"
			}
			rendered = append(rendered, entry)
		}
		sb.WriteString("    Skills: " + strings.Join(rendered, ", ") + "\n")
	}

	if len(c.Relationships) > 0 {
		rels := make([]snapshot.RelationInfo, len(c.Relationships))
		copy(rels, c.Relationships)
		// Strongest bonds first, positive or negative.
		sort.SliceStable(rels, func(i, j int) bool { return abs(rels[i].Opinion) > abs(rels[j].Opinion) })
		if len(rels) > topRelationships {
			rels = rels[:topRelationships]
		}
		rendered := make([]string, 0, len(rels))
		for _, r := range rels {
			rendered = append(rendered, fmt.Sprintf("%s of %s (%+d)", r.Kind, r.Other, r.Opinion))
		}
		sb.WriteString("    Relationships: " + strings.Join(rendered, ", ") + "\n")
	}

	if c.CurrentActivity != "" && !strings.EqualFold(c.CurrentActivity, "idle") {
		sb.WriteString("    Currently: " + c.CurrentActivity + "\n")
	}
}
