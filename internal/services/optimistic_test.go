package services

import (
	"errors"
	"testing"
)

func TestApplyOptimistic(t *testing.T) {
	t.Run("success keeps the applied delta", func(t *testing.T) {
		state := 0
		err := applyOptimistic(
			func() { state++ },
			func() { state-- },
			func() error { return nil },
		)
		if err != nil {
			t.Fatalf("applyOptimistic() error = %v", err)
		}
		if state != 1 {
			t.Errorf("state = %d, want 1", state)
		}
	})

	t.Run("failure reverts and surfaces the error", func(t *testing.T) {
		state := 0
		remoteErr := errors.New("network unreachable")
		err := applyOptimistic(
			func() { state++ },
			func() { state-- },
			func() error { return remoteErr },
		)
		if !errors.Is(err, remoteErr) {
			t.Fatalf("applyOptimistic() error = %v, want %v", err, remoteErr)
		}
		if state != 0 {
			t.Errorf("state = %d, want 0 after revert", state)
		}
	})

	t.Run("delta is visible before the remote call runs", func(t *testing.T) {
		state := 0
		observed := -1
		_ = applyOptimistic(
			func() { state = 1 },
			func() { state = 0 },
			func() error {
				observed = state
				return nil
			},
		)
		if observed != 1 {
			t.Errorf("remote observed state %d, want 1", observed)
		}
	})
}
