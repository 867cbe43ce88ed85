package ai

import "context"

// MockProvider is a canned in-process Provider for local runs and tests; it
// never calls an external model. Responses and Errs are keyed by model id.
type MockProvider struct {
	Responses map[string]string
	Errs      map[string]error
	Calls     []string
}

func (m *MockProvider) Generate(_ context.Context, model, _ string) (string, error) {
	m.Calls = append(m.Calls, model)
	if err, ok := m.Errs[model]; ok {
		return "", err
	}
	return m.Responses[model], nil
}
