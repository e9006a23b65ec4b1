package aggregator

import (
	"math"

	"github.com/pable/go-nhl-metrics/internal/model"
)

// Flow field grid dimensions over the rink surface.
const (
	FlowCols = 10
	FlowRows = 8

	rinkMinX, rinkMaxX = -100.0, 100.0
	rinkMinY, rinkMaxY = -42.5, 42.5
)

// ComputeFlowField buckets every waypoint-to-waypoint step into the
// 10x8 rink grid. Each step accumulates its direction, a success flag
// (did the whole sequence end in goal or save), and an event-type tally
// in the cell of the step's origin. Directions are normalized by event
// count and magnitudes by the busiest cell.
func ComputeFlowField(seqs []model.AttackSequence) model.FlowField {
	type cellAccum struct {
		events    int
		dirSum    float64
		successes int
		shots     int
		turnovers int
		passes    int
	}
	cells := make([]cellAccum, FlowCols*FlowRows)

	for _, seq := range seqs {
		success := seq.Outcome.Result == model.TypeGoal || seq.Outcome.Result == model.TypeShotOnGoal
		for i := 1; i < len(seq.Waypoints); i++ {
			from, to := seq.Waypoints[i-1], seq.Waypoints[i]
			idx := cellIndex(from.X, from.Y)
			acc := &cells[idx]

			acc.events++
			acc.dirSum += math.Atan2(to.Y-from.Y, to.X-from.X)
			if success {
				acc.successes++
			}
			switch {
			case model.IsShotType(from.EventType):
				acc.shots++
			case from.EventType == model.TypeGiveaway || from.EventType == model.TypeTakeaway:
				acc.turnovers++
			default:
				acc.passes++
			}
		}
	}

	maxEvents := 0
	for i := range cells {
		if cells[i].events > maxEvents {
			maxEvents = cells[i].events
		}
	}

	field := model.FlowField{
		Cols:  FlowCols,
		Rows:  FlowRows,
		Cells: make([]model.FlowCell, len(cells)),
	}
	for i := range cells {
		acc := cells[i]
		cell := model.FlowCell{
			Col:       i % FlowCols,
			Row:       i / FlowCols,
			Events:    acc.events,
			Shots:     acc.shots,
			Turnovers: acc.turnovers,
			Passes:    acc.passes,
		}
		if acc.events > 0 {
			cell.Direction = acc.dirSum / float64(acc.events)
			cell.SuccessPct = float64(acc.successes) / float64(acc.events) * 100
			cell.Magnitude = float64(acc.events) / float64(maxEvents)
		}
		field.Cells[i] = cell
	}
	return field
}

// cellIndex maps rink coordinates to a row-major grid index, clamping
// out-of-range coordinates to the border cells.
func cellIndex(x, y float64) int {
	col := int((x - rinkMinX) / (rinkMaxX - rinkMinX) * FlowCols)
	if col < 0 {
		col = 0
	}
	if col >= FlowCols {
		col = FlowCols - 1
	}
	row := int((y - rinkMinY) / (rinkMaxY - rinkMinY) * FlowRows)
	if row < 0 {
		row = 0
	}
	if row >= FlowRows {
		row = FlowRows - 1
	}
	return row*FlowCols + col
}
