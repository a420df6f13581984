package bbref

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hoopsdb/lib/testutil"

	"github.com/stretchr/testify/require"
)

const testPage = `<html><body>
<h1><span>Kobe Bryant</span></h1>
<div id="meta">
	<p><strong>Shoots:</strong> Right</p>
	<p><strong>Draft:</strong> Los Angeles Lakers, 1st round (13th pick, 13th overall), 1996 NBA Draft</p>
</div>
</body></html>`

func TestPlayerFetch(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "scrapers/bbref"})
	defer cleanup()

	var requests atomic.Int64
	var lastUserAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		lastUserAgent.Store(r.Header.Get("User-Agent"))
		if r.URL.Path != "/players/b/bryanko01.html" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, testPage)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{
		BaseUrl:      server.URL,
		RequestDelay: time.Millisecond * 50,
	})
	require.NoError(t, err)

	start := time.Now()
	profile, err := client.Player(context.Background(), "bryanko01")
	require.NoError(t, err)
	// the fixed delay runs before every request
	require.GreaterOrEqual(t, time.Since(start), time.Millisecond*50)
	require.EqualValues(t, 1, requests.Load())

	require.Equal(t, "Kobe Bryant", profile.Name)
	require.True(t, profile.Shoots.Valid)
	require.Equal(t, "Right", profile.Shoots.String)
	require.EqualValues(t, 1, profile.DraftRound.Int64)
	require.EqualValues(t, 13, profile.DraftPick.Int64)
	require.EqualValues(t, 1996, profile.DraftYear.Int64)
	require.Equal(t, "Los Angeles Lakers", profile.DraftTeam.String)

	ua, _ := lastUserAgent.Load().(string)
	require.Contains(t, ua, "Mozilla/5.0")

	// a page that doesn't resolve is an error, not an empty profile
	_, err = client.Player(context.Background(), "nosuch01")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestPlayerPageEmptyId(t *testing.T) {
	client, err := NewClient(ClientOptions{
		BaseUrl:      "http://127.0.0.1:1",
		RequestDelay: time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.PlayerPage(context.Background(), "")
	require.Error(t, err)
}

func TestPlayerPageCancelledDuringDelay(t *testing.T) {
	client, err := NewClient(ClientOptions{
		BaseUrl:      "http://127.0.0.1:1",
		RequestDelay: time.Second * 30,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
	defer cancel()

	start := time.Now()
	_, err = client.PlayerPage(ctx, "bryanko01")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}
