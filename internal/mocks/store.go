package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/exercise"
)

// MockProgressStore implements list.ProgressStore for testing.
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) Exercises() []exercise.Exercise {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]exercise.Exercise)
}

func (m *MockProgressStore) CurrentIndex() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockProgressStore) NumDone() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockProgressStore) ResetByIndex(ind int) (string, error) {
	args := m.Called(ind)
	return args.String(0), args.Error(1)
}

func (m *MockProgressStore) SetCurrentIndex(ind int) error {
	args := m.Called(ind)
	return args.Error(0)
}
