package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/doctest/host"
)

func never() (bool, error) { return false, nil }

func TestWaitTimeout(t *testing.T) {
	const def = 5 * time.Second
	tests := []struct {
		name string
		req  host.WaitRequest
		want time.Duration
	}{
		{
			name: "short duration uses default",
			req:  host.WaitRequest{Cond: host.Duration(100 * time.Millisecond)},
			want: def,
		},
		{
			name: "long duration extends deadline",
			req:  host.WaitRequest{Cond: host.Duration(8 * time.Second)},
			want: 8*time.Second + WaitMargin,
		},
		{
			name: "duration near default",
			req:  host.WaitRequest{Cond: host.Duration(def - 5*time.Millisecond)},
			want: def + 5*time.Millisecond,
		},
		{
			name: "hard timeout covers duration",
			req:  host.WaitRequest{Cond: host.Duration(time.Second), HardTimeout: 2 * time.Second},
			want: 2 * time.Second,
		},
		{
			name: "hard timeout shorter than duration",
			req:  host.WaitRequest{Cond: host.Duration(time.Second), HardTimeout: 500 * time.Millisecond},
			want: time.Second + WaitMargin,
		},
		{
			name: "predicate uses default",
			req:  host.WaitRequest{Cond: host.Until(never)},
			want: def,
		},
		{
			name: "predicate with hard timeout",
			req:  host.WaitRequest{Cond: host.Until(never), HardTimeout: 20 * time.Second},
			want: 20 * time.Second,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, waitTimeout(tt.req, def))
		})
	}
}

func TestSuspension_Duration(t *testing.T) {
	start := time.Unix(1000, 0)
	s := newSuspension(host.WaitRequest{Cond: host.Duration(250 * time.Millisecond)}, start, time.Second)

	state, _, err := s.check(start.Add(100 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, waitPending, state)

	state, elapsed, _ := s.check(start.Add(300 * time.Millisecond))
	assert.Equal(t, waitResolved, state)
	assert.Equal(t, 300*time.Millisecond, elapsed)
}

func TestSuspension_Timeout(t *testing.T) {
	start := time.Unix(1000, 0)
	s := newSuspension(host.WaitRequest{Cond: host.Until(never)}, start, time.Second)

	state, _, _ := s.check(start.Add(time.Second))
	assert.Equal(t, waitPending, state)

	state, elapsed, _ := s.check(start.Add(1100 * time.Millisecond))
	assert.Equal(t, waitTimedOut, state)
	assert.Equal(t, 1100*time.Millisecond, elapsed)
}

func TestSuspension_SatisfiedBeatsDeadline(t *testing.T) {
	start := time.Unix(1000, 0)
	s := newSuspension(host.WaitRequest{
		Cond: host.Until(func() (bool, error) { return true, nil }),
	}, start, time.Second)

	state, _, _ := s.check(start.Add(time.Hour))
	assert.Equal(t, waitResolved, state)
}

func TestSuspension_ConditionError(t *testing.T) {
	boom := errors.New("boom")
	s := newSuspension(host.WaitRequest{
		Cond: host.Until(func() (bool, error) { return false, boom }),
	}, time.Unix(0, 0), time.Second)

	state, _, err := s.check(time.Unix(0, 0))
	assert.Equal(t, waitResolved, state)
	assert.ErrorIs(t, err, boom)
}
