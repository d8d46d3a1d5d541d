package sppfile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func obsAt(offsets ...time.Duration) []Observation {
	obs := make([]Observation, 0, len(offsets))
	for i, off := range offsets {
		obs = append(obs, Observation{Time: t0.Add(off), Sat: i%MaxSat + 1, Code: 2e7})
	}
	return obs
}

func collect(seg *Segmenter) []Epoch {
	var eps []Epoch
	for {
		ep, ok := seg.Next()
		if !ok {
			return eps
		}
		eps = append(eps, ep)
	}
}

func TestSegmenterAnchorsOnFirstRecord(t *testing.T) {
	// 相邻差都小于容差, 但第三条与首条相差 6ms
	obs := obsAt(0, 3*time.Millisecond, 6*time.Millisecond)
	eps := collect(NewSegmenter(obs, 5*time.Millisecond, 100))

	require.Len(t, eps, 2)
	assert.Len(t, eps[0].Obs, 2)
	assert.Len(t, eps[1].Obs, 1)
	assert.Equal(t, 1, eps[0].Index)
	assert.Equal(t, 2, eps[1].Index)
	assert.True(t, eps[1].Start.Equal(t0.Add(6*time.Millisecond)))
}

func TestSegmenterToleranceIsStrict(t *testing.T) {
	obs := obsAt(0, 5*time.Millisecond)
	eps := collect(NewSegmenter(obs, 5*time.Millisecond, 100))
	require.Len(t, eps, 2)
}

func TestSegmenterCoversEveryRecordOnce(t *testing.T) {
	var offsets []time.Duration
	jitter := []time.Duration{0, 1, 4, 2, 3}
	for sec := 0; sec < 30; sec++ {
		for k := 0; k < 7; k++ {
			offsets = append(offsets, time.Duration(sec)*time.Second+jitter[k%len(jitter)]*time.Millisecond)
		}
	}
	obs := obsAt(offsets...)
	SortObservation(obs)

	tol := 5 * time.Millisecond
	seg := NewSegmenter(obs, tol, 1000)
	eps := collect(seg)

	total := 0
	for _, ep := range eps {
		total += len(ep.Obs)
		for _, ob := range ep.Obs {
			dt := ob.Time.Sub(ep.Start)
			if dt < 0 {
				dt = -dt
			}
			assert.Less(t, dt, tol)
		}
	}
	assert.Len(t, eps, 30)
	assert.Equal(t, len(obs), total)
	assert.Equal(t, len(obs), seg.Consumed())
}

func TestSegmenterStopsAtMaxEpochs(t *testing.T) {
	obs := obsAt(0, time.Second, 2*time.Second, 3*time.Second, 4*time.Second)
	seg := NewSegmenter(obs, 5*time.Millisecond, 2)
	eps := collect(seg)

	require.Len(t, eps, 2)
	assert.Equal(t, 2, seg.Consumed())
	_, ok := seg.Next()
	assert.False(t, ok)
}

func TestSegmenterEmptyInput(t *testing.T) {
	_, ok := NewSegmenter(nil, 5*time.Millisecond, 10).Next()
	assert.False(t, ok)
}

func TestSegmenterEpochDoesNotAliasNext(t *testing.T) {
	obs := obsAt(0, time.Second)
	seg := NewSegmenter(obs, 5*time.Millisecond, 10)
	ep, ok := seg.Next()
	require.True(t, ok)
	assert.Equal(t, 1, cap(ep.Obs))
}
