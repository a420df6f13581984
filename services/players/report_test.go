package players

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDistributions(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	seed(t, store, []Record{
		{PlayerId: "a01", FullName: "Player A", Shoots: str("Left"), DraftRound: num(1)},
		{PlayerId: "b01", FullName: "Player B", Shoots: str("Right"), DraftRound: num(2)},
		{PlayerId: "c01", FullName: "Player C", Shoots: str("Right"), DraftRound: num(2)},
		{PlayerId: "d01", FullName: "Player D"},
	})

	shoots, err := store.ShootsDistribution(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]Bucket{
		{Null: true, Count: 1},
		{Value: "Left", Count: 1},
		{Value: "Right", Count: 2},
	}, shoots); diff != "" {
		t.Fatal(diff)
	}

	rounds, err := store.DraftRoundDistribution(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]Bucket{
		{Null: true, Count: 1},
		{Value: "1", Count: 1},
		{Value: "2", Count: 2},
	}, rounds); diff != "" {
		t.Fatal(diff)
	}

	report := RenderDistributions(shoots, rounds)
	require.Contains(t, report, "shoots distribution")
	require.Contains(t, report, "draft round distribution")
	require.Contains(t, report, "NULL (undrafted)")
	require.Contains(t, report, "Left")
}

func TestRenderRepairResult(t *testing.T) {
	out := RenderRepairResult(RepairResult{
		RoundFixes:   []RoundFix{{PlayerId: "duranke01", FullName: "Kevin Durant", Old: 5}},
		RoundsCapped: 1,
		ShootsFixes: []ShootsFix{
			{PlayerId: "jamesle01", FullName: "LeBron James", Old: "LeftRight", New: "Left"},
		},
		ShootsFixed: 1,
		Undrafted:   3,
	})
	require.Contains(t, out, "draft rounds capped: 1")
	require.Contains(t, out, "Kevin Durant")
	require.Contains(t, out, "shooting hands normalized: 1")
	require.Contains(t, out, "LeftRight")
	require.Contains(t, out, "players without a draft round: 3")
}
