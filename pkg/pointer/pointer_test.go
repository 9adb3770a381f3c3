// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinedex/pkg/pointer"
)

func TestPointer(t *testing.T) {
	p := pointer.To(7.5)
	assert.Equal(t, 7.5, *p)
	assert.Equal(t, 7.5, pointer.Fallback(p, 0))

	var missing *string
	assert.Equal(t, "movie", pointer.Fallback(missing, "movie"))
}
