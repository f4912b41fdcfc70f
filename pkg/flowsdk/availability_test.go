package flowsdk

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAvailabilityCheckerSettles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	checker := NewAvailabilityChecker(func(_ context.Context, username string) (bool, error) {
		return username != "taken_name", nil
	})
	checker.Debounce = 5 * time.Millisecond
	defer checker.Close()

	checker.Input(ctx, "Fresh_Name")
	state, _ := checker.State()
	require.Equal(t, AvailabilityChecking, state)

	require.Eventually(t, func() bool {
		state, username := checker.State()
		return state == AvailabilityAvailable && username == "fresh_name"
	}, time.Second, time.Millisecond)

	checker.Input(ctx, "Taken-Name")
	require.Eventually(t, func() bool {
		state, _ := checker.State()
		return state == AvailabilityTaken
	}, time.Second, time.Millisecond)
}

func TestAvailabilityCheckerShortInputIdles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	checker := NewAvailabilityChecker(func(context.Context, string) (bool, error) {
		calls.Add(1)
		return true, nil
	})
	checker.Debounce = 5 * time.Millisecond
	defer checker.Close()

	checker.Input(ctx, "ab")
	state, _ := checker.State()
	require.Equal(t, AvailabilityIdle, state)

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, calls.Load(), "no lookup for names under the minimum length")
}

func TestAvailabilityCheckerDebouncesRapidInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	checker := NewAvailabilityChecker(func(_ context.Context, username string) (bool, error) {
		calls.Add(1)
		return true, nil
	})
	checker.Debounce = 20 * time.Millisecond
	defer checker.Close()

	// Each keystroke lands inside the previous debounce window.
	checker.Input(ctx, "jan")
	checker.Input(ctx, "jane")
	checker.Input(ctx, "janed")

	require.Eventually(t, func() bool {
		state, username := checker.State()
		return state == AvailabilityAvailable && username == "janed"
	}, time.Second, time.Millisecond)
	require.Equal(t, int32(1), calls.Load(), "only the final input triggers a lookup")
}

func TestAvailabilityCheckerStaleLookupIgnored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// The first lookup is slow and reports taken; the second is fast and
	// reports available. The slow result must not overwrite the newer one.
	release := make(chan struct{})
	checker := NewAvailabilityChecker(func(_ context.Context, username string) (bool, error) {
		if username == "slow_name" {
			<-release
			return false, nil
		}
		return true, nil
	})
	checker.Debounce = time.Millisecond
	defer checker.Close()

	checker.Input(ctx, "slow_name")
	time.Sleep(10 * time.Millisecond) // let the slow lookup start
	checker.Input(ctx, "fast_name")

	require.Eventually(t, func() bool {
		state, _ := checker.State()
		return state == AvailabilityAvailable
	}, time.Second, time.Millisecond)

	close(release)
	time.Sleep(20 * time.Millisecond)

	state, username := checker.State()
	require.Equal(t, AvailabilityAvailable, state)
	require.Equal(t, "fast_name", username)
}

func TestAvailabilityCheckerLookupErrorIdles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	checker := NewAvailabilityChecker(func(context.Context, string) (bool, error) {
		return false, errors.New("boom")
	})
	checker.Debounce = time.Millisecond
	defer checker.Close()

	checker.Input(ctx, "some_name")
	require.Eventually(t, func() bool {
		state, _ := checker.State()
		return state == AvailabilityIdle
	}, time.Second, time.Millisecond)
}
