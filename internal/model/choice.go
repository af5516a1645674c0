package model

// Consequence describes one mechanical effect attached to a choice option.
// Type is an open string tag (spawn_pawn, spawn_items, mood_effect,
// faction_relation, trigger_raid, nothing, ...); unknown tags are kept as-is
// and interpreted (or ignored) by the consumer, never rejected here.
type Consequence struct {
	Type       string         `json:"Type"`
	Parameters map[string]any `json:"Parameters"`
}

// ChoiceOption представляет одну из опций выбора.
// Consequence (singular) is the legacy field older producers emit; parsing
// folds it into Consequences.
type ChoiceOption struct {
	Label        string        `json:"Label"`
	HintText     string        `json:"HintText"`
	Consequences []Consequence `json:"Consequences"`
	Consequence  *Consequence  `json:"Consequence,omitempty"`
}

// ChoiceEvent is one dilemma: narrative text plus the options offered.
type ChoiceEvent struct {
	NarrativeText string         `json:"NarrativeText"`
	Options       []ChoiceOption `json:"Options"`
}

// ChoiceEventEnvelope is the preferred multi-event payload shape.
type ChoiceEventEnvelope struct {
	Events []ChoiceEvent `json:"Events"`
}

// ChoiceEventResult is the outcome of parsing a choice completion.
// RawContent is always retained for diagnostics; Events is never nil and
// holds at least one event when Success is true.
type ChoiceEventResult struct {
	Success    bool
	Error      string
	RawContent string
	Events     []ChoiceEvent
}
