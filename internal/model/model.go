package model

// Event type keys as delivered by the NHL api-web play-by-play feed.
const (
	TypeGoal        = "goal"
	TypeShotOnGoal  = "shot-on-goal"
	TypeMissedShot  = "missed-shot"
	TypeBlockedShot = "blocked-shot"
	TypeFaceoff     = "faceoff"
	TypeTakeaway    = "takeaway"
	TypeGiveaway    = "giveaway"
	TypeHit         = "hit"
	TypeStoppage    = "stoppage"
)

// IsShotType reports whether the key is one of the four shot-attempt types.
func IsShotType(typeKey string) bool {
	switch typeKey {
	case TypeGoal, TypeShotOnGoal, TypeMissedShot, TypeBlockedShot:
		return true
	}
	return false
}

// ---- Raw per-game records produced by the ingestion layer ----

// Event is one play-by-play occurrence. Coordinates are rink units:
// x in [-100, 100], y in [-42.5, 42.5], goals at x = ±89. Events without
// usable coordinates carry HasCoords=false and are skipped by every
// spatial scan.
type Event struct {
	EventID      int
	Period       int    // 1..N; N > 3 is overtime
	TimeInPeriod string // "MM:SS" elapsed within the period
	TypeKey      string
	TeamID       int // 0 when the event has no owning team (e.g. stoppage)
	PlayerID     int // 0 when absent
	X, Y         float64
	HasCoords    bool
}

// ShotEvent is an Event restricted to shot-attempt types, with the
// shooter and the on-ice skater lists for both teams at the moment of
// the shot.
type ShotEvent struct {
	Event
	ShooterID int
	Result    string // goal, shot-on-goal, missed-shot, blocked-shot
	ShotType  string // wrist, slap, snap, tip-in, ...
	HomeOnIce []int
	AwayOnIce []int
}

// Shift is a player's continuous on-ice interval. Only the chemistry
// aggregator reads shifts, and only when present.
type Shift struct {
	PlayerID  int
	TeamID    int
	Period    int
	StartTime string // "MM:SS" elapsed
	EndTime   string
}

// GameRecord is one game's container as normalized by internal/nhl.
// Events are chronologically ordered; Shots is a denormalized subset of
// Events; Shifts may be empty.
type GameRecord struct {
	GameID     int
	GameDate   string // YYYY-MM-DD
	HomeTeamID int
	AwayTeamID int
	Events     []Event
	Shots      []ShotEvent
	Shifts     []Shift
}

// RosterEntry is one player on a team's stored roster.
type RosterEntry struct {
	PlayerID int
	Name     string
	Sweater  int
	Position string
}

// GameSummary is a lightweight record for list/show commands.
type GameSummary struct {
	GameID     int
	GameDate   string
	TeamAbbrev string // abbreviation the game was fetched under
	HomeTeamID int
	AwayTeamID int
	HomeScore  int
	AwayScore  int
	EventCount int
	ShotCount  int
	HasShifts  bool
}

// ---- Derived structures (recomputed per query, never persisted) ----

// Game-state situations from the analyzed team's perspective.
const (
	StateTied     = "tied"
	StateLeading  = "leading"
	StateTrailing = "trailing"
)

// GameState is the qualitative score situation at a moment, from the
// querying team's perspective. Diff is the signed goal differential.
type GameState struct {
	Situation string
	Diff      int
}

// EnrichedShot is a ShotEvent with derived per-shot context attached.
// Unlocated shots (no coordinates) carry Distance 0 and HighDanger false.
type EnrichedShot struct {
	ShotEvent
	Distance      float64
	HighDanger    bool
	TimeRemaining int // seconds left in the period
	LateGame      bool
	State         GameState
}

// Zone entry/exit classifications.
const (
	EntryControlled   = "controlled"
	EntryDump         = "dump"
	ExitControlled    = "controlled"
	ExitClear         = "clear"
	EntryUnclassified = "unclassified"
)

// ZoneEntry is a derived crossing into an end zone by the acting team.
type ZoneEntry struct {
	EventID      int
	PlayerID     int
	TeamID       int
	Period       int
	TimeInPeriod string
	EntryType    string
	X, Y         float64
	Success      bool
}

// ZoneExit is a derived crossing out of an end zone.
type ZoneExit struct {
	EventID      int
	PlayerID     int
	TeamID       int
	Period       int
	TimeInPeriod string
	ExitType     string
	X, Y         float64
	Success      bool
}

// Attack archetypes. Exactly one is assigned to every sequence;
// ArchetypeCycleHigh doubles as the fixed default.
const (
	ArchetypeRebound        = "rebound"
	ArchetypeBreakaway      = "breakaway"
	ArchetypeOddmanRush     = "oddman-rush"
	ArchetypeRushStandard   = "rush-standard"
	ArchetypeFaceoffPlay    = "faceoff-play"
	ArchetypePointShot      = "point-shot"
	ArchetypeNetScramble    = "net-scramble"
	ArchetypeCycleLow       = "cycle-low"
	ArchetypeCycleHigh      = "cycle-high"
	ArchetypeTransQuick     = "transition-quick"
	ArchetypeTransSustained = "transition-sustained"
)

// Archetypes lists every assignable archetype tag.
var Archetypes = []string{
	ArchetypeRebound,
	ArchetypeBreakaway,
	ArchetypeOddmanRush,
	ArchetypeRushStandard,
	ArchetypeFaceoffPlay,
	ArchetypePointShot,
	ArchetypeNetScramble,
	ArchetypeCycleLow,
	ArchetypeCycleHigh,
	ArchetypeTransQuick,
	ArchetypeTransSustained,
}

// Origin zones relative to the attacking direction.
const (
	ZoneOffensive = "offensive"
	ZoneNeutral   = "neutral"
	ZoneDefensive = "defensive"
)

// Possession origin trigger classifications.
const (
	TriggerFaceoff  = "faceoff"
	TriggerTakeaway = "takeaway"
	TriggerTurnover = "turnover"
)

// SequenceOrigin marks where a possession began.
type SequenceOrigin struct {
	Zone         string // offensive / neutral / defensive
	Trigger      string // faceoff / takeaway / turnover
	X, Y         float64
	TimeInPeriod string
}

// Waypoint is one coordinate-bearing team event inside a sequence.
type Waypoint struct {
	X, Y         float64
	EventType    string
	TimeInPeriod string
}

// SequenceEntry is a zone entry detected inside one sequence's waypoints.
type SequenceEntry struct {
	EntryType string
	Success   bool
}

// SequenceOutcome is the shot that terminated the sequence.
type SequenceOutcome struct {
	Result   string
	X, Y     float64
	Distance float64
}

// AttackSequence is the reconstructed possession behind one shot. It is
// a view over Events: period and clock fields are copied from the
// triggering events, never invented.
type AttackSequence struct {
	SequenceID      int
	TeamID          int
	PlayerID        int // 0 unless filtered to one shooter
	Period          int
	StartTime       string
	EndTime         string
	DurationSeconds int
	Origin          SequenceOrigin
	Waypoints       []Waypoint
	ZoneEntry       *SequenceEntry
	Rebound         bool
	Outcome         SequenceOutcome
	Archetype       string
}

// ---- Aggregate outputs ----

// ShotPartition is the decision-quality breakdown for one slice of shots.
type ShotPartition struct {
	Shots         int
	Goals         int
	HighDanger    int
	HighDangerPct float64
	MeanDistance  float64
	ShootingPct   float64
}

// DecisionMetrics is the game-state-aware decision quality report.
type DecisionMetrics struct {
	TotalShots    int
	Overall       ShotPartition
	ByState       map[string]ShotPartition // tied / leading / trailing
	LateGame      ShotPartition
	RushShots     int
	CycleShots    int
	OtherShots    int
	RushPct       float64
	CyclePct      float64
	OtherPct      float64
	Patience      float64 // 0-100
	Awareness     float64 // 0-100
	LateGamePoise float64 // 0-100
}

// StyleFingerprint is the multi-axis attacking signature.
type StyleFingerprint struct {
	Sequences       int
	RushPct         float64
	CyclePct        float64
	PointPct        float64
	NetFrontPct     float64
	TransitionPct   float64
	TransitionSpeed float64 // 0-100
	EntryAggression float64 // 0-100, controlled-entry rate; 50 when no entries
	PrimaryStyle    string
}

// FlowCell is one cell of the 10x8 rink flow grid.
type FlowCell struct {
	Col, Row   int
	Events     int
	Direction  float64 // mean step direction, radians
	Magnitude  float64 // 0-1, relative to the busiest cell
	SuccessPct float64
	Shots      int
	Turnovers  int
	Passes     int
}

// FlowField is the full grid. Cells with zero events are present with
// zero values so callers can render a complete rink.
type FlowField struct {
	Cols, Rows int
	Cells      []FlowCell // row-major, len Cols*Rows
}

// RibbonPoint is one point of an averaged attack path.
type RibbonPoint struct {
	X, Y float64
}

// AttackRibbon is an averaged path for one archetype group. The path is
// literal coordinate averaging of origins and outcomes with a midpoint
// control point: a visual approximation, not a shot location or a true
// curve fit.
type AttackRibbon struct {
	Archetype     string
	Frequency     int
	Percentage    float64
	ConversionPct float64
	Path          [3]RibbonPoint // origin, control, outcome
}

// BehaviorProfile is one rolling window's behavioral summary.
type BehaviorProfile struct {
	Games         int
	TotalShots    int
	HighDangerPct float64
	AvgDistance   float64
	ShootingPct   float64
	RushPct       float64
	CyclePct      float64
	Patience      float64
}

// Change significance labels.
const (
	ChangeMinor    = "minor"
	ChangeModerate = "moderate"
	ChangeMajor    = "major"
)

// MetricChange is one reported behavioral shift between windows.
type MetricChange struct {
	Metric       string
	Previous     float64
	Current      float64
	PctChange    float64 // capped to ±100
	Significance string
	Improved     bool
}

// Overall trend labels.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
	TrendMixed     = "mixed"
)

// EvolutionReport compares a current window against a previous one.
type EvolutionReport struct {
	Current  BehaviorProfile
	Previous BehaviorProfile
	Changes  []MetricChange
	Trend    string
}

// PairSharedStats is the raw shared-ice evidence for a player pair.
type PairSharedStats struct {
	Shots         int // shots with both players on the ice
	ShotsByPair   int // of those, shots taken by either pair member
	Goals         int
	ShiftOverlaps int // overlapping shift intervals (0 without shift data)
}

// ChemistryPair is one unordered roster pair with its chemistry index.
// Player1ID < Player2ID always (canonical ordering).
type ChemistryPair struct {
	Player1ID      int
	Player2ID      int
	Together       PairSharedStats
	ChemistryIndex float64 // 0-100
}

// TeamBasics holds the simple possession-proxy team stats.
type TeamBasics struct {
	ShotAttempts     int
	CorsiPct         float64 // 50 when neither team has an attempt
	FenwickPct       float64
	ShootingPct      float64
	PDO              float64
	ZoneDistribution ZoneDistribution
}

// Shot zone categories for the six-way spatial distribution.
const (
	ShotZoneCrease      = "crease"
	ShotZoneSlot        = "slot"
	ShotZoneLeftCircle  = "left-circle"
	ShotZoneRightCircle = "right-circle"
	ShotZonePoint       = "point"
	ShotZonePerimeter   = "perimeter"
)

// ShotZones lists the six categories in display order.
var ShotZones = []string{
	ShotZoneCrease,
	ShotZoneSlot,
	ShotZoneLeftCircle,
	ShotZoneRightCircle,
	ShotZonePoint,
	ShotZonePerimeter,
}

// ZoneDistribution is the six-category shot location breakdown.
// Percentages sum to ~100 for non-empty input, all zero for empty input.
type ZoneDistribution struct {
	Counts      map[string]int
	Percentages map[string]float64
}
