package players

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"hoopsdb/lib/nba"
	"hoopsdb/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestRepair(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()

	tracer := otel.Tracer("players_test")
	ctx, span := tracer.Start(context.Background(), "TestRepair")
	defer span.End()

	seed(t, store, []Record{
		{PlayerId: "bryanko01", FullName: "Kobe Bryant", Shoots: str("Right"), DraftRound: num(1)},
		{PlayerId: "jamesle01", FullName: "LeBron James", Shoots: str("LeftRight"), DraftRound: num(1)},
		{PlayerId: "curryst01", FullName: "Stephen Curry", Shoots: str("RightLeft"), DraftRound: num(1)},
		{PlayerId: "doncilu01", FullName: "Luka Doncic", Shoots: str("left"), DraftRound: num(1)},
		{PlayerId: "jokicni01", FullName: "Nikola Jokic", Shoots: str("right handed"), DraftRound: num(2)},
		{PlayerId: "greendr01", FullName: "Draymond Green", Shoots: str("Both"), DraftRound: num(2)},
		{PlayerId: "duranke01", FullName: "Kevin Durant", DraftRound: num(5)},
		{PlayerId: "embiijo01", FullName: "Joel Embiid", Shoots: str("Right"), DraftRound: num(7)},
		{PlayerId: "hardeja01", FullName: "James Harden", Shoots: str("Right")},
		{PlayerId: "westbru01", FullName: "Russell Westbrook", Shoots: str("Right"), DraftRound: num(1)},
	})

	res, err := store.Repair(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, res.RoundsCapped)
	require.EqualValues(t, 4, res.ShootsFixed)
	require.EqualValues(t, 1, res.Undrafted)

	sort.Slice(res.RoundFixes, func(i, j int) bool {
		return res.RoundFixes[i].PlayerId < res.RoundFixes[j].PlayerId
	})
	if diff := cmp.Diff([]RoundFix{
		{PlayerId: "duranke01", FullName: "Kevin Durant", Old: 5},
		{PlayerId: "embiijo01", FullName: "Joel Embiid", Old: 7},
	}, res.RoundFixes); diff != "" {
		t.Fatal(diff)
	}

	sort.Slice(res.ShootsFixes, func(i, j int) bool {
		return res.ShootsFixes[i].PlayerId < res.ShootsFixes[j].PlayerId
	})
	if diff := cmp.Diff([]ShootsFix{
		// "left" wins over "right" no matter where it sits in the value
		{PlayerId: "curryst01", FullName: "Stephen Curry", Old: "RightLeft", New: "Left"},
		{PlayerId: "doncilu01", FullName: "Luka Doncic", Old: "left", New: "Left"},
		{PlayerId: "jamesle01", FullName: "LeBron James", Old: "LeftRight", New: "Left"},
		{PlayerId: "jokicni01", FullName: "Nikola Jokic", Old: "right handed", New: "Right"},
	}, res.ShootsFixes); diff != "" {
		t.Fatal(diff)
	}

	for _, c := range []struct {
		playerId string
		shoots   sql.NullString
		round    sql.NullInt64
	}{
		{"bryanko01", str("Right"), num(1)},
		{"jamesle01", str("Left"), num(1)},
		{"curryst01", str("Left"), num(1)},
		{"doncilu01", str("Left"), num(1)},
		{"jokicni01", str("Right"), num(2)},
		{"greendr01", str("Both"), num(2)},
		{"duranke01", sql.NullString{}, num(2)},
		{"embiijo01", str("Right"), num(2)},
		{"hardeja01", str("Right"), sql.NullInt64{}},
		{"westbru01", str("Right"), num(1)},
	} {
		rec, err := store.Player(ctx, c.playerId)
		require.NoError(t, err)
		if rec.Shoots != c.shoots {
			t.Fatalf("%s: shoots %+v, expected %+v", c.playerId, rec.Shoots, c.shoots)
		}
		if rec.DraftRound != c.round {
			t.Fatalf("%s: draft round %+v, expected %+v", c.playerId, rec.DraftRound, c.round)
		}
	}

	// the table is already canonical, a second run has nothing to do
	again, err := store.Repair(ctx)
	require.NoError(t, err)
	require.Empty(t, again.RoundFixes)
	require.Empty(t, again.ShootsFixes)
	require.Zero(t, again.RoundsCapped)
	require.Zero(t, again.ShootsFixed)
	require.EqualValues(t, 1, again.Undrafted)
}

func TestRepairRandomized(t *testing.T) {
	store, cleanup := setup(t)
	defer cleanup()
	ctx := context.Background()

	rndm := rand.New(rand.NewSource(0x5eed))
	shootsVariant := testutil.RandomSwitch(4, 4, 2, 1, 1, 1, 1, 2)
	roundVariant := testutil.RandomSwitch(2, 4, 3, 3)

	type expectation struct {
		shoots sql.NullString
		round  sql.NullInt64
	}
	expected := make(map[string]expectation)
	var wantShootsFixed, wantCapped, wantUndrafted int

	const total = 200
	for i := range total {
		id, err := random.String(8)
		require.NoError(t, err)
		id = fmt.Sprintf("%s%03d", id, i)

		rec := Record{
			PlayerId: id,
			FullName: fmt.Sprintf(
				"%s %s",
				testutil.RandomString(rndm, 6),
				testutil.RandomString(rndm, 8),
			),
		}
		var exp expectation

		switch shootsVariant(rndm) {
		case 0:
			rec.Shoots = str("Right")
			exp.shoots = str("Right")
		case 1:
			rec.Shoots = str("Left")
			exp.shoots = str("Left")
		case 2:
			// no shooting hand on record
		case 3:
			rec.Shoots = str("LeftRight")
			exp.shoots = str("Left")
			wantShootsFixed++
		case 4:
			rec.Shoots = str("RightLeft")
			exp.shoots = str("Left")
			wantShootsFixed++
		case 5:
			rec.Shoots = str("left")
			exp.shoots = str("Left")
			wantShootsFixed++
		case 6:
			rec.Shoots = str(" Right-handed ")
			exp.shoots = str("Right")
			wantShootsFixed++
		case 7:
			rec.Shoots = str("Both")
			exp.shoots = str("Both")
		}

		switch roundVariant(rndm) {
		case 0:
			wantUndrafted++
		case 1:
			rec.DraftRound = num(1)
			exp.round = num(1)
		case 2:
			rec.DraftRound = num(2)
			exp.round = num(2)
		case 3:
			rec.DraftRound = num(int64(rndm.Intn(7) + 3))
			exp.round = num(2)
			wantCapped++
		}

		expected[id] = exp
		err = store.Upsert(ctx, rec)
		require.NoError(t, err)
	}

	res, err := store.Repair(ctx)
	require.NoError(t, err)
	require.EqualValues(t, wantCapped, res.RoundsCapped)
	require.Len(t, res.RoundFixes, wantCapped)
	require.EqualValues(t, wantShootsFixed, res.ShootsFixed)
	require.Len(t, res.ShootsFixes, wantShootsFixed)
	require.EqualValues(t, wantUndrafted, res.Undrafted)

	for id, exp := range expected {
		rec, err := store.Player(ctx, id)
		require.NoError(t, err)
		if rec.Shoots != exp.shoots || rec.DraftRound != exp.round {
			t.Fatalf(
				"%s: got (%+v, %+v), expected (%+v, %+v)",
				id, rec.Shoots, rec.DraftRound, exp.shoots, exp.round,
			)
		}
	}

	again, err := store.Repair(ctx)
	require.NoError(t, err)
	require.Zero(t, again.RoundsCapped)
	require.Zero(t, again.ShootsFixed)
	require.EqualValues(t, wantUndrafted, again.Undrafted)

	// repair only moves players between buckets, it never loses any
	shoots, err := store.ShootsDistribution(ctx)
	require.NoError(t, err)
	var shootsTotal int64
	for _, b := range shoots {
		shootsTotal += b.Count
		if b.Null {
			continue
		}
		switch b.Value {
		case nba.HandLeft, nba.HandRight, "Both":
		default:
			t.Fatalf("unexpected shoots bucket after repair: %q", b.Value)
		}
	}
	require.EqualValues(t, total, shootsTotal)

	rounds, err := store.DraftRoundDistribution(ctx)
	require.NoError(t, err)
	var roundsTotal int64
	for _, b := range rounds {
		roundsTotal += b.Count
		if !b.Null && b.Value != "1" && b.Value != "2" {
			t.Fatalf("unexpected draft round bucket after repair: %q", b.Value)
		}
	}
	require.EqualValues(t, total, roundsTotal)
}
