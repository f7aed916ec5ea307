package provider

import (
	"context"
	"sync"
)

// Mock is a test double for Provider.
// It supports fixed results, custom handlers, and call recording.
type Mock struct {
	mu          sync.Mutex
	result      *Result
	err         error
	available   bool
	convertFunc func(ctx context.Context, req Request) (*Result, error)

	// Calls tracks all requests for assertions.
	Calls []Request
}

// NewMock creates a mock that returns the given output with the given
// self-reported confidence. The mock reports itself available.
func NewMock(output string, confidence float64) *Mock {
	c := confidence
	return &Mock{
		result:    &Result{Output: output, Confidence: &c, Model: "mock"},
		available: true,
	}
}

// NewMockWithoutConfidence creates an available mock whose result
// carries no self-reported confidence.
func NewMockWithoutConfidence(output string) *Mock {
	return &Mock{
		result:    &Result{Output: output, Model: "mock"},
		available: true,
	}
}

// WithError configures the mock to fail every Convert call.
func (m *Mock) WithError(err error) *Mock {
	m.err = err
	return m
}

// WithAvailability sets what IsAvailable reports.
func (m *Mock) WithAvailability(available bool) *Mock {
	m.available = available
	return m
}

// WithConvertFunc sets a custom handler for Convert calls.
// This takes precedence over the fixed result.
func (m *Mock) WithConvertFunc(fn func(ctx context.Context, req Request) (*Result, error)) *Mock {
	m.convertFunc = fn
	return m
}

// Convert implements Provider.
func (m *Mock) Convert(ctx context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	fn, err, result := m.convertFunc, m.err, m.result
	m.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, NewError("mock", "convert", ctx.Err(), false)
	default:
	}

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	out := *result
	return &out, nil
}

// IsAvailable implements Provider.
func (m *Mock) IsAvailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available
}

// Name implements Provider.
func (m *Mock) Name() string { return "mock" }

// CallCount returns the number of Convert calls received.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or nil if none were made.
func (m *Mock) LastCall() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	req := m.Calls[len(m.Calls)-1]
	return &req
}
