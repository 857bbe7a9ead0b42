package server

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/cardveil/holdem/internal/client"
	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/protocol"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// callStation checks when it can and calls otherwise; it never folds, so
// every hand reaches showdown.
func callStation() client.Agent {
	return client.AgentFunc(func(req protocol.ActionRequest, hole [2]deck.Card, board []string) (string, uint64) {
		for _, a := range req.ValidActions {
			if a == "check" {
				return "check", 0
			}
		}
		return "call", 0
	})
}

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Server.Address = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ActionTimeout = 5

	srv := New(cfg, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			t.Errorf("server exited: %v", err)
		}
	}()

	require.Eventually(t, func() bool { return srv.Addr() != "" },
		5*time.Second, 10*time.Millisecond, "server never bound")
	return srv, fmt.Sprintf("ws://%s/ws?table=main", srv.Addr())
}

func TestEndToEndHand(t *testing.T) {
	_, url := startTestServer(t)

	alice, err := client.Dial(url, "alice", testLogger())
	require.NoError(t, err)
	defer alice.Close()
	bob, err := client.Dial(url, "bob", testLogger())
	require.NoError(t, err)
	defer bob.Close()

	require.Equal(t, 0, alice.Seat())
	require.Equal(t, 1, bob.Seat())

	go func() { _ = alice.Run(callStation()) }()
	go func() { _ = bob.Run(callStation()) }()

	require.NoError(t, alice.RequestStart())

	var result protocol.HandResult
	select {
	case result = <-alice.Results:
	case <-time.After(10 * time.Second):
		t.Fatal("no hand result within deadline")
	}

	// Neither agent folds, so the hand must have reached the
	// confidential showdown.
	require.Contains(t, []string{"player 1 wins", "player 2 wins", "tie"}, result.Outcome)
	require.Equal(t, uint64(2000), result.Stacks[0]+result.Stacks[1], "chips conserved")

	// Both clients observe the same result.
	select {
	case bobResult := <-bob.Results:
		require.Equal(t, result.Outcome, bobResult.Outcome)
		require.Equal(t, result.Winner, bobResult.Winner)
	case <-time.After(5 * time.Second):
		t.Fatal("bob never saw the result")
	}

	// Closing the connection ends the pump and closes Results, so
	// consumers ranging over it do not hang.
	require.NoError(t, alice.Close())
	select {
	case _, ok := <-alice.Results:
		require.False(t, ok, "results channel should be closed")
	case <-time.After(5 * time.Second):
		t.Fatal("results channel never closed")
	}
}

// An action buffered out of turn is discarded when the next request goes
// out, so it can never answer a bet the player has not seen.
func TestStaleDecisionDiscarded(t *testing.T) {
	pc := &playerConn{decisions: make(chan protocol.Action, 1)}
	pc.decisions <- protocol.Action{Type: protocol.TypeAction, Action: "call"}

	pc.drainStale()
	select {
	case act := <-pc.decisions:
		t.Fatalf("stale action survived the drain: %+v", act)
	default:
	}

	// Draining an empty channel is a no-op.
	pc.drainStale()
}

func TestThirdSeatRejected(t *testing.T) {
	_, url := startTestServer(t)

	a, err := client.Dial(url, "alice", testLogger())
	require.NoError(t, err)
	defer a.Close()
	b, err := client.Dial(url, "bob", testLogger())
	require.NoError(t, err)
	defer b.Close()

	_, err = client.Dial(url, "carol", testLogger())
	require.Error(t, err, "heads-up table seats two")
}

func TestUnknownTable(t *testing.T) {
	srv, _ := startTestServer(t)

	_, err := client.Dial(fmt.Sprintf("ws://%s/ws?table=nope", srv.Addr()), "alice", testLogger())
	require.Error(t, err)
}
