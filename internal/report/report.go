package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pable/go-nhl-metrics/internal/model"
)

// newTable returns a table with the house style: right-aligned rows,
// centered headers.
func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintGameList prints the stored-game overview table.
func PrintGameList(w io.Writer, games []model.GameSummary) {
	table := newTable(w)
	table.Header("GAME_ID", "DATE", "TEAM", "HOME", "AWAY", "SCORE", "EVENTS", "SHOTS", "SHIFTS")

	for _, g := range games {
		shifts := "no"
		if g.HasShifts {
			shifts = "yes"
		}
		table.Append(
			strconv.Itoa(g.GameID),
			g.GameDate,
			g.TeamAbbrev,
			strconv.Itoa(g.HomeTeamID),
			strconv.Itoa(g.AwayTeamID),
			fmt.Sprintf("%d–%d", g.HomeScore, g.AwayScore),
			strconv.Itoa(g.EventCount),
			strconv.Itoa(g.ShotCount),
			shifts,
		)
	}
	table.Render()
}

// PrintGameHeader prints a one-line summary header for one game.
func PrintGameHeader(w io.Writer, g model.GameSummary) {
	fmt.Fprintf(w, "\nGame %d  |  Date: %s  |  Home %d – Away %d (%d–%d)  |  Events: %d  |  Shots: %d\n\n",
		g.GameID, g.GameDate, g.HomeTeamID, g.AwayTeamID, g.HomeScore, g.AwayScore, g.EventCount, g.ShotCount)
}

// PrintEnrichedShots prints the per-shot context table for one team.
func PrintEnrichedShots(w io.Writer, shots []model.EnrichedShot) {
	table := newTable(w)
	table.Header("P", "TIME", "SHOOTER", "RESULT", "TYPE", "DIST", "HD", "STATE", "LATE")

	for _, s := range shots {
		dist := "—"
		if s.HasCoords {
			dist = fmt.Sprintf("%.1f", s.Distance)
		}
		table.Append(
			strconv.Itoa(s.Period),
			s.TimeInPeriod,
			strconv.Itoa(s.ShooterID),
			s.Result,
			s.ShotType,
			dist,
			yesNo(s.HighDanger),
			s.State.Situation,
			yesNo(s.LateGame),
		)
	}
	table.Render()
}

// PrintDecisions prints the game-state decision quality report.
func PrintDecisions(w io.Writer, m model.DecisionMetrics) {
	table := newTable(w)
	table.Header("SLICE", "SHOTS", "GOALS", "HD", "HD%", "AVG_DIST", "SH%")

	appendPartition := func(label string, p model.ShotPartition) {
		table.Append(
			label,
			strconv.Itoa(p.Shots),
			strconv.Itoa(p.Goals),
			strconv.Itoa(p.HighDanger),
			fmt.Sprintf("%.1f%%", p.HighDangerPct),
			fmt.Sprintf("%.1f", p.MeanDistance),
			fmt.Sprintf("%.1f%%", p.ShootingPct),
		)
	}
	appendPartition("overall", m.Overall)
	for _, state := range []string{model.StateTied, model.StateLeading, model.StateTrailing} {
		appendPartition(state, m.ByState[state])
	}
	appendPartition("late-game", m.LateGame)
	table.Render()

	fmt.Fprintf(w, "\nStyle: rush %.1f%%  cycle %.1f%%  other %.1f%%  (n=%d)\n",
		m.RushPct, m.CyclePct, m.OtherPct, m.TotalShots)
	fmt.Fprintf(w, "Scores: patience %.0f  awareness %.0f  late-game poise %.0f\n\n",
		m.Patience, m.Awareness, m.LateGamePoise)
}

// PrintSequences prints reconstructed attack sequences, newest last,
// plus an archetype frequency footer.
func PrintSequences(w io.Writer, seqs []model.AttackSequence) {
	table := newTable(w)
	table.Header("SEQ", "P", "START", "END", "DUR", "ORIGIN", "TRIGGER", "ENTRY", "WPTS", "RESULT", "ARCHETYPE")

	for _, s := range seqs {
		entry := "—"
		if s.ZoneEntry != nil {
			entry = s.ZoneEntry.EntryType
		}
		table.Append(
			strconv.Itoa(s.SequenceID),
			strconv.Itoa(s.Period),
			s.StartTime,
			s.EndTime,
			fmt.Sprintf("%ds", s.DurationSeconds),
			s.Origin.Zone,
			s.Origin.Trigger,
			entry,
			strconv.Itoa(len(s.Waypoints)),
			s.Outcome.Result,
			s.Archetype,
		)
	}
	table.Render()

	counts := make(map[string]int)
	for _, s := range seqs {
		counts[s.Archetype]++
	}
	if len(seqs) == 0 {
		return
	}
	fmt.Fprintln(w, "\nArchetypes:")
	for _, tag := range model.Archetypes {
		if counts[tag] == 0 {
			continue
		}
		fmt.Fprintf(w, "  %-22s %3d  (%.1f%%)\n", tag, counts[tag],
			float64(counts[tag])/float64(len(seqs))*100)
	}
	fmt.Fprintln(w)
}

// PrintEntries prints zone entries and exits side by side.
func PrintEntries(w io.Writer, entries []model.ZoneEntry, exits []model.ZoneExit) {
	table := newTable(w)
	table.Header("KIND", "P", "TIME", "PLAYER", "TYPE", "X", "Y", "SUCCESS")

	for _, e := range entries {
		table.Append("entry", strconv.Itoa(e.Period), e.TimeInPeriod,
			strconv.Itoa(e.PlayerID), e.EntryType,
			fmt.Sprintf("%.0f", e.X), fmt.Sprintf("%.0f", e.Y), yesNo(e.Success))
	}
	for _, e := range exits {
		table.Append("exit", strconv.Itoa(e.Period), e.TimeInPeriod,
			strconv.Itoa(e.PlayerID), e.ExitType,
			fmt.Sprintf("%.0f", e.X), fmt.Sprintf("%.0f", e.Y), yesNo(e.Success))
	}
	table.Render()

	var controlled, total int
	for _, e := range entries {
		if e.EntryType == model.EntryControlled {
			controlled++
		}
		total++
	}
	if total > 0 {
		fmt.Fprintf(w, "\nControlled entry rate: %.1f%% (%d/%d)\n\n",
			float64(controlled)/float64(total)*100, controlled, total)
	}
}

// PrintFingerprint prints the style fingerprint axes and the dominant label.
func PrintFingerprint(w io.Writer, fp model.StyleFingerprint) {
	table := newTable(w)
	table.Header("AXIS", "VALUE")
	table.Append("rush", fmt.Sprintf("%.1f%%", fp.RushPct))
	table.Append("cycle", fmt.Sprintf("%.1f%%", fp.CyclePct))
	table.Append("point volume", fmt.Sprintf("%.1f%%", fp.PointPct))
	table.Append("net front", fmt.Sprintf("%.1f%%", fp.NetFrontPct))
	table.Append("transition", fmt.Sprintf("%.1f%%", fp.TransitionPct))
	table.Append("transition speed", fmt.Sprintf("%.0f", fp.TransitionSpeed))
	table.Append("entry aggression", fmt.Sprintf("%.0f", fp.EntryAggression))
	table.Render()

	fmt.Fprintf(w, "\nPrimary style: %s  (%d sequences)\n\n", fp.PrimaryStyle, fp.Sequences)
}

// flowGlyph maps a mean step direction to one of eight arrows.
func flowGlyph(direction float64) string {
	glyphs := []string{"→", "↗", "↑", "↖", "←", "↙", "↓", "↘"}
	// Shift by half an octant so each arrow covers 45° centered on its axis.
	octant := int((direction+2*math.Pi)/(math.Pi/4)+0.5) % 8
	return glyphs[octant]
}

// PrintFlowField renders the rink flow grid as arrows scaled by traffic.
// Rows print top-down so positive y is at the top.
func PrintFlowField(w io.Writer, field model.FlowField) {
	for row := field.Rows - 1; row >= 0; row-- {
		var b strings.Builder
		for col := 0; col < field.Cols; col++ {
			cell := field.Cells[row*field.Cols+col]
			switch {
			case cell.Events == 0:
				b.WriteString(" · ")
			case cell.Magnitude < 0.34:
				b.WriteString(" " + flowGlyph(cell.Direction) + " ")
			default:
				b.WriteString("[" + flowGlyph(cell.Direction) + "]")
			}
		}
		fmt.Fprintln(w, b.String())
	}

	table := newTable(w)
	table.Header("CELL", "EVENTS", "SHOTS", "TURNOVERS", "PASSES", "SUCCESS%")
	for _, cell := range field.Cells {
		if cell.Events == 0 {
			continue
		}
		table.Append(
			fmt.Sprintf("(%d,%d)", cell.Col, cell.Row),
			strconv.Itoa(cell.Events),
			strconv.Itoa(cell.Shots),
			strconv.Itoa(cell.Turnovers),
			strconv.Itoa(cell.Passes),
			fmt.Sprintf("%.0f%%", cell.SuccessPct),
		)
	}
	fmt.Fprintln(w)
	table.Render()
}

// PrintRibbons prints the averaged attack paths per archetype.
func PrintRibbons(w io.Writer, ribbons []model.AttackRibbon) {
	table := newTable(w)
	table.Header("ARCHETYPE", "N", "SHARE", "CONV%", "ORIGIN", "CONTROL", "OUTCOME")

	for _, r := range ribbons {
		table.Append(
			r.Archetype,
			strconv.Itoa(r.Frequency),
			fmt.Sprintf("%.1f%%", r.Percentage),
			fmt.Sprintf("%.1f%%", r.ConversionPct),
			fmt.Sprintf("(%.0f,%.0f)", r.Path[0].X, r.Path[0].Y),
			fmt.Sprintf("(%.0f,%.0f)", r.Path[1].X, r.Path[1].Y),
			fmt.Sprintf("(%.0f,%.0f)", r.Path[2].X, r.Path[2].Y),
		)
	}
	table.Render()
}

// PrintEvolution prints the window-over-window behavioral comparison.
func PrintEvolution(w io.Writer, rep model.EvolutionReport) {
	fmt.Fprintf(w, "\nPrevious: %d games, %d shots  |  Current: %d games, %d shots\n\n",
		rep.Previous.Games, rep.Previous.TotalShots, rep.Current.Games, rep.Current.TotalShots)

	table := newTable(w)
	table.Header("METRIC", "PREV", "CURR", "CHANGE", "SIGNIFICANCE", "DIR")

	for _, c := range rep.Changes {
		dir := "worse"
		if c.Improved {
			dir = "better"
		}
		table.Append(
			c.Metric,
			fmt.Sprintf("%.1f", c.Previous),
			fmt.Sprintf("%.1f", c.Current),
			fmt.Sprintf("%+.1f%%", c.PctChange),
			c.Significance,
			dir,
		)
	}
	table.Render()

	fmt.Fprintf(w, "\nTrend: %s\n\n", rep.Trend)
}

// PrintChemistry prints pair chemistry rows. nameOf resolves player IDs
// to display names; it may return empty strings.
func PrintChemistry(w io.Writer, pairs []model.ChemistryPair, nameOf func(int) string) {
	table := newTable(w)
	table.Header("PLAYER_1", "PLAYER_2", "SHOTS_TOG", "BY_PAIR", "GOALS", "SHIFT_OVL", "INDEX")

	for _, p := range pairs {
		table.Append(
			playerLabel(p.Player1ID, nameOf),
			playerLabel(p.Player2ID, nameOf),
			strconv.Itoa(p.Together.Shots),
			strconv.Itoa(p.Together.ShotsByPair),
			strconv.Itoa(p.Together.Goals),
			strconv.Itoa(p.Together.ShiftOverlaps),
			fmt.Sprintf("%.1f", p.ChemistryIndex),
		)
	}
	table.Render()
}

// PrintTeamBasics prints the possession proxies and shot-zone mix.
func PrintTeamBasics(w io.Writer, basics model.TeamBasics) {
	table := newTable(w)
	table.Header("METRIC", "VALUE")
	table.Append("shot attempts", strconv.Itoa(basics.ShotAttempts))
	table.Append("corsi%", fmt.Sprintf("%.1f%%", basics.CorsiPct))
	table.Append("fenwick%", fmt.Sprintf("%.1f%%", basics.FenwickPct))
	table.Append("shooting%", fmt.Sprintf("%.1f%%", basics.ShootingPct))
	table.Append("pdo", fmt.Sprintf("%.1f", basics.PDO))
	table.Render()

	zone := newTable(w)
	zone.Header("ZONE", "SHOTS", "SHARE")
	for _, z := range model.ShotZones {
		zone.Append(z,
			strconv.Itoa(basics.ZoneDistribution.Counts[z]),
			fmt.Sprintf("%.1f%%", basics.ZoneDistribution.Percentages[z]))
	}
	fmt.Fprintln(w)
	zone.Render()
}

func playerLabel(id int, nameOf func(int) string) string {
	if nameOf != nil {
		if name := nameOf(id); name != "" {
			return name
		}
	}
	return strconv.Itoa(id)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
