package handlers_test

import (
	"context"
	"errors"

	"github.com/snipurl/snipurl/internal/shortlink"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// mockStore is a test double for shortlink.Repository that can be configured
// to return errors.
type mockStore struct {
	createErr      error
	getErr         error
	listErr        error
	appendClickErr error
	entry          *shortlink.Entry
}

func (m *mockStore) Create(_ context.Context, _ *shortlink.Entry) error {
	return m.createErr
}

func (m *mockStore) Get(_ context.Context, _ string) (*shortlink.Entry, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	return m.entry, nil
}

func (m *mockStore) List(_ context.Context) ([]*shortlink.Entry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	if m.entry == nil {
		return nil, nil
	}

	return []*shortlink.Entry{m.entry}, nil
}

func (m *mockStore) AppendClick(_ context.Context, _ string, _ shortlink.Click) error {
	return m.appendClickErr
}

// recordingEmitter captures emitted audit events for assertions.
type recordingEmitter struct {
	levels   []string
	messages []string
}

func (r *recordingEmitter) emit(level, _, message string) {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, message)
}
