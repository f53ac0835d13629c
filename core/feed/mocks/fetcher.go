package mocks

import (
	"context"

	"catalog-sync/core/feed"

	"github.com/stretchr/testify/mock"
)

// Fetcher is a mock implementation of feed.Fetcher
type Fetcher struct {
	mock.Mock
}

func (m *Fetcher) Fetch(ctx context.Context) (*feed.Node, []byte, error) {
	args := m.Called(ctx)
	var root *feed.Node
	if n, ok := args.Get(0).(*feed.Node); ok {
		root = n
	}
	var raw []byte
	if b, ok := args.Get(1).([]byte); ok {
		raw = b
	}
	return root, raw, args.Error(2)
}
