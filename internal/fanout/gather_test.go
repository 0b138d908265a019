package fanout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherIsolatesPerItemFailures(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	var mu sync.Mutex
	var succeeded, failed []int

	err := Gather(context.Background(), items, 2, func(ctx context.Context, item int) error {
		if item%2 == 0 {
			return errors.New("boom")
		}
		mu.Lock()
		succeeded = append(succeeded, item)
		mu.Unlock()
		return nil
	}, func(item int, err error) {
		mu.Lock()
		failed = append(failed, item)
		mu.Unlock()
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3, 5}, succeeded)
	assert.ElementsMatch(t, []int{2, 4}, failed)
}

func TestGatherRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Gather(ctx, []int{1, 2, 3}, 1, func(ctx context.Context, item int) error {
		return nil
	}, nil)

	assert.Error(t, err)
}

func TestGatherEmptyInput(t *testing.T) {
	err := Gather[int](context.Background(), nil, 4, func(ctx context.Context, item int) error {
		t.Fatal("should not be called")
		return nil
	}, nil)
	require.NoError(t, err)
}
