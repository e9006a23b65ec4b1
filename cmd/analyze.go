package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-nhl-metrics/internal/aggregator"
	"github.com/pable/go-nhl-metrics/internal/model"
	"github.com/pable/go-nhl-metrics/internal/storage"
	"github.com/pable/go-nhl-metrics/internal/zones"
)

const analyzeSystemPrompt = `You are a hockey analytics assistant. You are given structured data
computed from NHL play-by-play feeds and a question from a coach or analyst.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable — focus on patterns the team can exploit or fix.
- Avoid generic hockey advice unless it directly explains a pattern in the data.

Metrics glossary:
- High-danger %: share of shots taken within 25 ft of the net and inside the slot. League average sits near 28%.
- Corsi%: share of all shot attempts (for vs against). 50% is break-even.
- Fenwick%: Corsi excluding blocked shots.
- PDO: shooting % + save %. Drifts back toward 100 over time.
- Patience: 0-100 score of shot selectivity; higher means more high-danger looks.
- Awareness: 0-100; above 50 means better shot quality when trailing than when leading.
- Late-game poise: 0-100; above 50 means shot quality holds up in the final five minutes.
- Rush shot: generated within 8 seconds of a defensive-zone touch.
- Cycle shot: sustained offensive-zone possession (15+ seconds).
- Controlled entry: carried or passed into the zone; dump-in is the alternative.
- Archetypes: rebound, breakaway, oddman-rush, rush-standard, faceoff-play,
  point-shot, net-scramble, cycle-low, cycle-high, transition-quick, transition-sustained.`

var (
	analyzeModel  string
	analyzeAPIKey string
	analyzeLast   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzeTeamCmd = &cobra.Command{
	Use:   "team <team-id> <question>",
	Short: "Analyze a team's stored games with AI",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeTeam,
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <team-id> <player-id> <question>",
	Short: "Analyze one shooter's stored games with AI",
	Args:  cobra.ExactArgs(3),
	RunE:  runAnalyzePlayer,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.PersistentFlags().IntVar(&analyzeLast, "last", 0, "only use the N most recent games")

	analyzeCmd.AddCommand(analyzeTeamCmd)
	analyzeCmd.AddCommand(analyzePlayerCmd)
}

func runAnalyzeTeam(cmd *cobra.Command, args []string) error {
	teamID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid team ID %q: %w", args[0], err)
	}
	return analyzeSubject(cmd.Context(), teamID, 0, args[1])
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	teamID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid team ID %q: %w", args[0], err)
	}
	playerID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid player ID %q: %w", args[1], err)
	}
	return analyzeSubject(cmd.Context(), teamID, playerID, args[2])
}

func analyzeSubject(ctx context.Context, teamID, playerID int, question string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, err := loadTeamGames(db, teamID, analyzeLast)
	if err != nil {
		return err
	}

	contextJSON, err := buildAnalysisContext(games, teamID, playerID)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	return callAnthropic(ctx, analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildAnalysisContext serialises the computed metrics into compact JSON.
func buildAnalysisContext(games []model.GameRecord, teamID, playerID int) (string, error) {
	decisions := aggregator.ComputeDecisions(games, teamID, playerID)
	seqs := collectSequences(games, teamID, playerID)
	var entries []model.ZoneEntry
	for i := range games {
		e, _ := zones.DetectTransitions(games[i].Events, teamID)
		entries = append(entries, e...)
	}
	fp := aggregator.ComputeFingerprint(seqs, entries)
	basics := aggregator.ComputeTeamBasics(games, teamID)
	league := aggregator.DefaultLeagueAverages()

	archetypes := make(map[string]int)
	for _, s := range seqs {
		archetypes[s.Archetype]++
	}

	subject := "team"
	if playerID != 0 {
		subject = "player"
	}
	doc := map[string]interface{}{
		"subject":        subject,
		"team_id":        teamID,
		"player_id":      playerID,
		"games_analyzed": len(games),
		"decisions": map[string]interface{}{
			"total_shots":     decisions.TotalShots,
			"overall_hd_pct":  round2(decisions.Overall.HighDangerPct),
			"tied_hd_pct":     round2(decisions.ByState[model.StateTied].HighDangerPct),
			"leading_hd_pct":  round2(decisions.ByState[model.StateLeading].HighDangerPct),
			"trailing_hd_pct": round2(decisions.ByState[model.StateTrailing].HighDangerPct),
			"late_hd_pct":     round2(decisions.LateGame.HighDangerPct),
			"rush_pct":        round2(decisions.RushPct),
			"cycle_pct":       round2(decisions.CyclePct),
			"patience":        round2(decisions.Patience),
			"awareness":       round2(decisions.Awareness),
			"late_game_poise": round2(decisions.LateGamePoise),
		},
		"fingerprint": map[string]interface{}{
			"primary_style":    fp.PrimaryStyle,
			"rush_pct":         round2(fp.RushPct),
			"cycle_pct":        round2(fp.CyclePct),
			"point_pct":        round2(fp.PointPct),
			"net_front_pct":    round2(fp.NetFrontPct),
			"transition_pct":   round2(fp.TransitionPct),
			"transition_speed": round2(fp.TransitionSpeed),
			"entry_aggression": round2(fp.EntryAggression),
		},
		"basics": map[string]interface{}{
			"shot_attempts": basics.ShotAttempts,
			"corsi_pct":     round2(basics.CorsiPct),
			"fenwick_pct":   round2(basics.FenwickPct),
			"shooting_pct":  round2(basics.ShootingPct),
			"pdo":           round2(basics.PDO),
			"zone_mix":      basics.ZoneDistribution.Percentages,
		},
		"archetypes": archetypes,
		"league_averages": map[string]interface{}{
			"high_danger_pct":  league.HighDangerPct,
			"shooting_pct":     league.ShootingPct,
			"rush_share_pct":   league.RushSharePct,
			"cycle_share_pct":  league.CycleSharePct,
			"controlled_entry": league.ControlledEntry,
		},
	}

	b, err := json.Marshal(doc)
	return string(b), err
}

// round2 rounds a float64 to 2 decimal places.
func round2(v float64) float64 {
	// Use integer arithmetic to avoid floating-point drift.
	return float64(int(v*100+0.5)) / 100
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── Scouting Report ─────────────────────────────────")

	// Reports citing several metric tables run long; 1024 tokens was
	// routinely truncating the late-game section.
	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		// Provide a cleaner error message for common API errors.
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
