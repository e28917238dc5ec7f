package client_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
	client "github.com/tazaqala/go-client"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, payload client.LoginPayload) (*client.AuthResponse, error) {
	args := m.Called(ctx, payload)
	if res := args.Get(0); res != nil {
		return res.(*client.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, payload client.RegisterPayload) (*client.AuthResponse, error) {
	args := m.Called(ctx, payload)
	if res := args.Get(0); res != nil {
		return res.(*client.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) Profile(ctx context.Context) (*client.User, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*client.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// failingTokenStore simulates a broken persistence layer.
type failingTokenStore struct {
	err error
}

func (s failingTokenStore) Get(context.Context) (string, error) {
	return "", s.err
}

func (s failingTokenStore) Set(context.Context, string) error {
	return s.err
}

func (s failingTokenStore) Clear(context.Context) error {
	return s.err
}

// recordingSink collects session events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []client.SessionEvent
}

func (s *recordingSink) Record(_ context.Context, event client.SessionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Types() []client.SessionEventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]client.SessionEventType, 0, len(s.events))
	for _, event := range s.events {
		types = append(types, event.Type)
	}
	return types
}
