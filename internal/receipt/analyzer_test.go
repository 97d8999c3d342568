package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedAnalyze(t *testing.T) {
	scanned := time.Date(2025, 3, 15, 12, 0, 0, 0, time.Local)
	a := NewSimulated(time.Millisecond, func() time.Time { return scanned })

	fields, err := a.Analyze(context.Background(), []byte("fake image"))
	require.NoError(t, err)
	assert.Equal(t, DemoOrderNum, fields.OrderNum)
	assert.Equal(t, scanned, fields.ScannedAt)
}

func TestSimulatedAnalyzeHonorsCancellation(t *testing.T) {
	a := NewSimulated(time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
