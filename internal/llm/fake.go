package llm

import "context"

// FakeClient is a scripted Client for tests and offline runs
type FakeClient struct {
	// Response is returned verbatim from GenerateJSON when Err is nil
	Response string
	// Err, when set, is returned from every GenerateJSON call
	Err error
	// Delay, when set, blocks until the context expires or the delay
	// elapses, for timeout tests
	Delay func(ctx context.Context) error

	Calls int
}

// GenerateJSON returns the scripted response
func (f *FakeClient) GenerateJSON(ctx context.Context, _ string, _ ModelTier) (string, error) {
	f.Calls++
	if f.Delay != nil {
		if err := f.Delay(ctx); err != nil {
			return "", err
		}
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

// Close is a no-op
func (f *FakeClient) Close() error { return nil }
