package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single review", []int{4}, 4},
		{"two reviews", []int{5, 4}, 4.5},
		{"three reviews", []int{5, 4, 3}, 4},
		{"repeating fraction", []int{5, 5, 4}, 14.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.ratings), 1e-9)
		})
	}
}

func TestMeanStaysInRange(t *testing.T) {
	ratings := []int{}
	for i := 0; i < 50; i++ {
		ratings = append(ratings, i%MaxStars+MinStars)
		m := Mean(ratings)
		assert.GreaterOrEqual(t, m, float64(MinStars))
		assert.LessOrEqual(t, m, float64(MaxStars))
	}
}

func TestAggregateAddRemove(t *testing.T) {
	a := Aggregate{}
	a = a.Add(5)
	a = a.Add(4)
	assert.Equal(t, Aggregate{Total: 9, Count: 2}, a)
	assert.InDelta(t, 4.5, a.Mean(), 1e-9)

	a = a.Add(3)
	assert.InDelta(t, 4.0, a.Mean(), 1e-9)

	a = a.Remove(3)
	assert.Equal(t, FromRatings([]int{5, 4}), a)

	a = a.Remove(4)
	a = a.Remove(5)
	assert.Equal(t, Aggregate{}, a)
	assert.Equal(t, 0.0, a.Mean())
}

func TestAggregateMatchesRescan(t *testing.T) {
	ratings := []int{1, 5, 3, 3, 2, 4, 5, 5}
	var running Aggregate
	for i, r := range ratings {
		running = running.Add(r)
		assert.InDelta(t, Mean(ratings[:i+1]), running.Mean(), 1e-9)
	}
}

func TestRemoveFromEmpty(t *testing.T) {
	assert.Equal(t, Aggregate{}, Aggregate{}.Remove(3))
}

func TestValid(t *testing.T) {
	assert.False(t, Valid(0))
	assert.True(t, Valid(1))
	assert.True(t, Valid(5))
	assert.False(t, Valid(6))
	assert.False(t, Valid(-1))
}
