package drafting

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockName = "mock"

// MockService is a Service for testing.
type MockService struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // Fail after N requests (0 = never)
	Err          error
	ResponseText string // raw model output, run through DecodeDrafts
	Drafts       []SectionDraft

	// State
	requestCount atomic.Int64
}

// NewMockService creates a mock drafting service with sensible defaults.
func NewMockService() *MockService {
	return &MockService{
		Latency: time.Millisecond,
	}
}

// Name returns the service identifier.
func (m *MockService) Name() string { return MockName }

// RequestCount returns the number of Draft calls so far.
func (m *MockService) RequestCount() int64 {
	return m.requestCount.Load()
}

// Draft simulates a provider round-trip.
func (m *MockService) Draft(ctx context.Context, req *Request) ([]SectionDraft, error) {
	count := m.requestCount.Add(1)

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.ShouldFail || (m.FailAfter > 0 && count > int64(m.FailAfter)) {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, fmt.Errorf("mock failure on request %d", count)
	}

	if m.ResponseText != "" {
		return DecodeDrafts(m.ResponseText)
	}
	return m.Drafts, nil
}
