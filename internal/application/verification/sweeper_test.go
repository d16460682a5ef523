package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSweepStore struct{ mock.Mock }

func (m *mockSweepStore) QueryExpired(ctx context.Context, cutoff int64) ([]string, error) {
	args := m.Called(ctx, cutoff)
	if ids, _ := args.Get(0).([]string); ids != nil {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSweepStore) DeleteBatch(ctx context.Context, codeIDs []string) error {
	return m.Called(ctx, codeIDs).Error(0)
}

func TestSweepOnce_DeletesAllExpired(t *testing.T) {
	ss := &mockSweepStore{}
	before := time.Now().UnixMilli()
	ss.On("QueryExpired", mock.Anything, mock.MatchedBy(func(cutoff int64) bool {
		return cutoff >= before
	})).Return([]string{"c1", "c2", "c3"}, nil)
	ss.On("DeleteBatch", mock.Anything, []string{"c1", "c2", "c3"}).Return(nil)

	deleted, err := NewSweeper(ss, time.Hour).SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	ss.AssertExpectations(t)
}

func TestSweepOnce_NoMatches_NoDelete(t *testing.T) {
	ss := &mockSweepStore{}
	ss.On("QueryExpired", mock.Anything, mock.Anything).Return([]string{}, nil)

	deleted, err := NewSweeper(ss, time.Hour).SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	ss.AssertNotCalled(t, "DeleteBatch", mock.Anything, mock.Anything)
}

func TestSweepOnce_QueryFailure(t *testing.T) {
	ss := &mockSweepStore{}
	ss.On("QueryExpired", mock.Anything, mock.Anything).Return(nil, errors.New("index offline"))

	_, err := NewSweeper(ss, time.Hour).SweepOnce(context.Background())
	require.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ss := &mockSweepStore{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		NewSweeper(ss, time.Hour).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
	ss.AssertNotCalled(t, "QueryExpired", mock.Anything, mock.Anything)
}
