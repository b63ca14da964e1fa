package tripdata_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/tripdata"
)

func TestDebouncerFiresOnceForABurst(t *testing.T) {
	d := tripdata.NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond,
		"a burst of triggers must collapse into one callback")

	// Settled; no further callbacks arrive.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestDebouncerLastCallbackWins(t *testing.T) {
	d := tripdata.NewDebouncer(20 * time.Millisecond)

	var got atomic.Value
	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })

	require.Eventually(t, func() bool { return got.Load() != nil },
		time.Second, 5*time.Millisecond)
	require.Equal(t, "second", got.Load())
}

func TestDebouncerCancel(t *testing.T) {
	d := tripdata.NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, fired.Load())

	// The debouncer stays usable after a cancel.
	d.Trigger(func() { fired.Add(1) })
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
}
