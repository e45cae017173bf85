package assistant

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Ask(ctx context.Context, query string) (*Answer, error) {
	args := m.Called(ctx, query)
	if answer, ok := args.Get(0).(*Answer); ok {
		return answer, args.Error(1)
	}
	return nil, args.Error(1)
}
