package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrAndQuery(t *testing.T) {
	require.NoError(t, InitMetrics(""))
	t.Cleanup(func() { _ = Close() })

	start := time.Now().Add(-time.Second)
	Incr("orders_placed")
	Incr("orders_placed")
	SetGauge("system_memuse", 42)

	assert.Equal(t, int64(2), Counter("orders_placed"))

	points, err := Query("system_memuse", start, time.Now())
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, float64(42), points[0].Value)
}

func TestQueryWithoutInit(t *testing.T) {
	_, err := Query("anything", time.Now(), time.Now())
	assert.Error(t, err)
}
