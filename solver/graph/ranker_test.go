package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedListRanker_InitialOrder(t *testing.T) {
	r := NewLinkedListRanker(5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, r.Ranking())
}

func TestLinkedListRanker_TouchMovesToFront(t *testing.T) {
	r := NewLinkedListRanker(5)
	r.Touch(3)
	assert.Equal(t, []int{3, 0, 1, 2, 4}, r.Ranking())
}

func TestLinkedListRanker_ExpectedRanking2(t *testing.T) {
	r := NewLinkedListRanker(5)
	for _, v := range []int{3, 2, 4, 1, 0, 4, 2, 3} {
		r.Touch(v)
	}
	assert.Equal(t, []int{3, 2, 4, 0, 1}, r.Ranking())
}

func TestLinkedListRanker_TouchOutOfRangeIsNoop(t *testing.T) {
	r := NewLinkedListRanker(2)
	assert.NotPanics(t, func() { r.Touch(5) })
	assert.Equal(t, []int{0, 1}, r.Ranking())
}

func TestSortRanker_MatchesLinkedListRanker(t *testing.T) {
	touches := []int{3, 2, 4, 1, 0, 4, 2, 3}

	ll := NewLinkedListRanker(5)
	sr := NewSortRanker(5)
	for _, v := range touches {
		ll.Touch(v)
		sr.Touch(v)
	}
	assert.Equal(t, ll.Ranking(), sr.Ranking())
	assert.Equal(t, []int{3, 2, 4, 0, 1}, sr.Ranking())
}

func TestSortRanker_InitialOrder(t *testing.T) {
	r := NewSortRanker(3)
	assert.Equal(t, []int{0, 1, 2}, r.Ranking())
}
