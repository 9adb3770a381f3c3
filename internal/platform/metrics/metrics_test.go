// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinedex/internal/platform/metrics"
)

/*
TestRecorder_Mutation verifies the counter increments per operation and outcome.
*/
func TestRecorder_Mutation(t *testing.T) {
	recorder := metrics.NewRecorder()
	counter := metrics.MutationsTotal.WithLabelValues("toggle", "ok")
	before := testutil.ToFloat64(counter)

	recorder.Mutation("toggle", "ok", 15*time.Millisecond)
	recorder.Mutation("toggle", "ok", 20*time.Millisecond)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

/*
TestRecorder_CatalogSize verifies the gauge tracks the latest value.
*/
func TestRecorder_CatalogSize(t *testing.T) {
	recorder := metrics.NewRecorder()

	recorder.CatalogSize(12)
	assert.Equal(t, float64(12), testutil.ToFloat64(metrics.CatalogItems))

	recorder.CatalogSize(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.CatalogItems))
}
