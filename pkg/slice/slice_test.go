// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinedex/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
}

/*
TestFilter verifies ordering and that the input is left intact.
*/
func TestFilter(t *testing.T) {
	input := []int{5, 2, 8, 1}
	out := slice.Filter(input, func(v int) bool { return v > 1 })

	assert.Equal(t, []int{5, 2, 8}, out)
	assert.Equal(t, []int{5, 2, 8, 1}, input)
	assert.Empty(t, slice.Filter[int](nil, func(int) bool { return true }))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, slice.Dedupe([]string{"a", "b", "a", "c", "b"}))
}
