package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotSetsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b []int64
		want bool
	}{
		{"same order", []int64{1, 2}, []int64{1, 2}, true},
		{"reversed order", []int64{1, 2}, []int64{2, 1}, true},
		{"four slots shuffled", []int64{4, 1, 3, 2}, []int64{1, 2, 3, 4}, true},
		{"different member", []int64{1, 3}, []int64{1, 2}, false},
		{"different length", []int64{1, 2, 3}, []int64{1, 2}, false},
		{"both empty", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slotSetsEqual(tt.a, tt.b))
		})
	}
}

func TestSlotSetsEqualDoesNotMutateInputs(t *testing.T) {
	a := []int64{3, 1, 2}
	b := []int64{2, 3, 1}
	slotSetsEqual(a, b)
	assert.Equal(t, []int64{3, 1, 2}, a)
	assert.Equal(t, []int64{2, 3, 1}, b)
}
