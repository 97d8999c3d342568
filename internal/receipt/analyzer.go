package receipt

import (
	"context"
	"time"
)

// Fields is what an analyzer claims to have read off a receipt image.
type Fields struct {
	OrderNum  string
	ScannedAt time.Time
}

// Analyzer extracts structured fields from a receipt photo. Implementations
// own their own latency; callers pass a ctx to bound it.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (Fields, error)
}

// DemoOrderNum is the canned order number the simulated analyzer reports.
const DemoOrderNum = "DEMO-12345"

// SimulatedAnalyzer is a stand-in for a real OCR backend. It waits a fixed
// delay and returns canned fields regardless of the image contents. Replace
// it with a real vision integration before trusting its output.
type SimulatedAnalyzer struct {
	delay time.Duration
	now   func() time.Time
}

// NewSimulated constructs the stand-in analyzer. The clock is injected so
// tests can pin the reported scan date.
func NewSimulated(delay time.Duration, now func() time.Time) *SimulatedAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &SimulatedAnalyzer{delay: delay, now: now}
}

func (a *SimulatedAnalyzer) Analyze(ctx context.Context, _ []byte) (Fields, error) {
	select {
	case <-ctx.Done():
		return Fields{}, ctx.Err()
	case <-time.After(a.delay):
	}
	return Fields{OrderNum: DemoOrderNum, ScannedAt: a.now()}, nil
}
