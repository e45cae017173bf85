package store

import (
	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Read(key string) ([]byte, error) {
	args := m.Called(key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) WriteBatch(batch map[string][]byte) error {
	args := m.Called(batch)
	return args.Error(0)
}

func (m *MockBackend) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockBackend) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockBackend) Close() error {
	args := m.Called()
	return args.Error(0)
}
