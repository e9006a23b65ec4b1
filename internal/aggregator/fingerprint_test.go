package aggregator

import (
	"testing"

	"github.com/pable/go-nhl-metrics/internal/model"
)

func archSeqs(archetype string, count, duration int) []model.AttackSequence {
	seqs := make([]model.AttackSequence, count)
	for i := range seqs {
		seqs[i] = model.AttackSequence{Archetype: archetype, DurationSeconds: duration}
	}
	return seqs
}

func TestComputeFingerprintEmpty(t *testing.T) {
	fp := ComputeFingerprint(nil, nil)

	if fp.Sequences != 0 {
		t.Errorf("Sequences = %d, want 0", fp.Sequences)
	}
	if fp.PrimaryStyle != StyleBalanced {
		t.Errorf("PrimaryStyle = %q, want Balanced", fp.PrimaryStyle)
	}
	if fp.EntryAggression != 50 {
		t.Errorf("EntryAggression = %f, want neutral 50", fp.EntryAggression)
	}
	if fp.RushPct != 0 || fp.CyclePct != 0 || fp.TransitionSpeed != 0 {
		t.Errorf("empty fingerprint carries nonzero axes: %+v", fp)
	}
}

func TestComputeFingerprintRushDominant(t *testing.T) {
	seqs := archSeqs(model.ArchetypeRushStandard, 8, 4)
	seqs = append(seqs, archSeqs(model.ArchetypeCycleHigh, 2, 4)...)

	fp := ComputeFingerprint(seqs, nil)

	if !approxEq(fp.RushPct, 80) || !approxEq(fp.CyclePct, 20) {
		t.Errorf("RushPct/CyclePct = %f/%f, want 80/20", fp.RushPct, fp.CyclePct)
	}
	// Mean duration 4s: 100 - 5*4.
	if !approxEq(fp.TransitionSpeed, 80) {
		t.Errorf("TransitionSpeed = %f, want 80", fp.TransitionSpeed)
	}
	if fp.PrimaryStyle != StyleRushAttack {
		t.Errorf("PrimaryStyle = %q, want Rush Attack", fp.PrimaryStyle)
	}
}

func TestComputeFingerprintBalancedMargin(t *testing.T) {
	// 50/50 rush versus cycle at mean duration 10 scores both axes
	// identically; neither clears the margin over the other.
	seqs := archSeqs(model.ArchetypeRushStandard, 5, 10)
	seqs = append(seqs, archSeqs(model.ArchetypeCycleLow, 5, 10)...)

	fp := ComputeFingerprint(seqs, nil)
	if fp.PrimaryStyle != StyleBalanced {
		t.Errorf("PrimaryStyle = %q, want Balanced", fp.PrimaryStyle)
	}
}

func TestComputeFingerprintArchetypeGrouping(t *testing.T) {
	seqs := []model.AttackSequence{
		{Archetype: model.ArchetypeBreakaway},
		{Archetype: model.ArchetypeOddmanRush},
		{Archetype: model.ArchetypeRebound},
		{Archetype: model.ArchetypeNetScramble},
		{Archetype: model.ArchetypeFaceoffPlay},
		{Archetype: model.ArchetypePointShot},
		{Archetype: model.ArchetypeTransQuick},
		{Archetype: model.ArchetypeTransSustained},
	}

	fp := ComputeFingerprint(seqs, nil)
	if !approxEq(fp.RushPct, 25) {
		t.Errorf("RushPct = %f, want 25 (breakaway + odd-man)", fp.RushPct)
	}
	if !approxEq(fp.NetFrontPct, 25) {
		t.Errorf("NetFrontPct = %f, want 25 (rebound + scramble)", fp.NetFrontPct)
	}
	if !approxEq(fp.PointPct, 25) {
		t.Errorf("PointPct = %f, want 25 (faceoff play + point shot)", fp.PointPct)
	}
	if !approxEq(fp.TransitionPct, 25) {
		t.Errorf("TransitionPct = %f, want 25", fp.TransitionPct)
	}
}

func TestComputeFingerprintEntryAggression(t *testing.T) {
	entries := []model.ZoneEntry{
		{EntryType: model.EntryControlled},
		{EntryType: model.EntryControlled},
		{EntryType: model.EntryControlled},
		{EntryType: model.EntryDump},
	}

	fp := ComputeFingerprint(archSeqs(model.ArchetypeCycleHigh, 4, 10), entries)
	if !approxEq(fp.EntryAggression, 75) {
		t.Errorf("EntryAggression = %f, want 75", fp.EntryAggression)
	}
}
