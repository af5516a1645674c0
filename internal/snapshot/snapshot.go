// Package snapshot defines the read-only view of world state the formatter
// consumes. The host gathers these values from its simulation; this package
// only fixes the shape. Nothing here is ever mutated by the core.
package snapshot

import "storyteller/internal/journal"

// TimelineReader is the journal capability the formatter needs. A nil
// reader means history is unavailable, which the formatter tolerates.
type TimelineReader interface {
	RecentTimeline(limit int) []journal.Entry
}

// Snapshot is the fixed capability set driving context formatting. Any
// object satisfying this shape can drive the formatter; Data below is the
// plain-struct implementation hosts and tests usually reach for.
type Snapshot interface {
	Colony() ColonyInfo
	Colonists() []ColonistInfo
	Prisoners() []PrisonerInfo
	Resources() ResourceInfo
	Factions() []FactionInfo
	Environment() EnvironmentInfo
	Threats() []ThreatInfo
	History() HistoryInfo
	Journal() TimelineReader
}

// ColonyInfo identifies the settlement and its clock.
type ColonyInfo struct {
	Name       string
	DateString string
	DaysPassed int
}

// SkillInfo is one labeled skill with its level and passion marker.
type SkillInfo struct {
	Name    string
	Level   int
	Passion string
}

// RelationInfo is one social bond seen from the owning colonist.
type RelationInfo struct {
	Kind    string
	Other   string
	Opinion int
}

// ColonistInfo describes one colonist. Health and Mood are empty when
// unremarkable (healthy, content); CurrentActivity is empty or "idle" when
// the colonist is doing nothing worth narrating.
type ColonistInfo struct {
	Name            string
	Age             int
	Gender          string
	Role            string
	Traits          []string
	Health          string
	Mood            string
	Stressed        bool
	Backstory       string
	Skills          []SkillInfo
	Relationships   []RelationInfo
	CurrentActivity string
}

// PrisonerInfo describes one held prisoner.
type PrisonerInfo struct {
	Name    string
	Faction string
	Status  string
}

// ResourceInfo summarizes the stockpile. Food is a human-readable supply
// estimate such as "4.2 days worth".
type ResourceInfo struct {
	Food     string
	Medicine string
	Wealth   string
	Notable  []string
}

// FactionInfo is one known faction and its standing toward the colony.
type FactionInfo struct {
	Name     string
	Goodwill int
	Hostile  bool
}

// EnvironmentInfo describes the map surroundings.
type EnvironmentInfo struct {
	Biome       string
	Season      string
	Weather     string
	Temperature string
}

// ThreatInfo is one active danger on or near the map.
type ThreatInfo struct {
	Description string
	Severity    string
}

// DeathRecord is one colonist death, oldest first in HistoryInfo.Deaths.
type DeathRecord struct {
	Name  string
	Cause string
	When  string
}

// HistoryEvent is one notable past happening ranked by significance.
type HistoryEvent struct {
	Text         string
	Significance int
}

// NemesisInfo is a recurring hostile character from the colony's past.
type NemesisInfo struct {
	Name    string
	Title   string
	Grudge  string
	Retired bool
}

// LegendInfo is a storied artifact or figure of colony lore.
type LegendInfo struct {
	Name      string
	Summary   string
	Destroyed bool
}

// HistoryInfo collects the colony's past. The slice fields are supplied in
// chronological order; the formatter applies its own caps and ordering.
type HistoryInfo struct {
	RecentEvents []string
	Deaths       []DeathRecord
	Battles      []string
	Significant  []HistoryEvent
	Nemeses      []NemesisInfo
	Legends      []LegendInfo
	Social       []string
}

// Data is the plain value implementation of Snapshot.
type Data struct {
	ColonyInfo      ColonyInfo
	ColonistInfos   []ColonistInfo
	PrisonerInfos   []PrisonerInfo
	ResourceInfo    ResourceInfo
	FactionInfos    []FactionInfo
	EnvironmentInfo EnvironmentInfo
	ThreatInfos     []ThreatInfo
	HistoryInfo     HistoryInfo
	JournalReader   TimelineReader
}

func (d *Data) Colony() ColonyInfo           { return d.ColonyInfo }
func (d *Data) Colonists() []ColonistInfo    { return d.ColonistInfos }
func (d *Data) Prisoners() []PrisonerInfo    { return d.PrisonerInfos }
func (d *Data) Resources() ResourceInfo      { return d.ResourceInfo }
func (d *Data) Factions() []FactionInfo      { return d.FactionInfos }
func (d *Data) Environment() EnvironmentInfo { return d.EnvironmentInfo }
func (d *Data) Threats() []ThreatInfo        { return d.ThreatInfos }
func (d *Data) History() HistoryInfo         { return d.HistoryInfo }
func (d *Data) Journal() TimelineReader      { return d.JournalReader }
