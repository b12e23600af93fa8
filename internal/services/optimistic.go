package services

// applyOptimistic runs an optimistic mutation as an explicit two-phase
// operation: apply the local delta, await remote confirmation, and apply the
// inverse delta when the remote call reports failure. apply and revert must
// be safe to call from the calling goroutine; remote runs without any lock
// held.
func applyOptimistic(apply, revert func(), remote func() error) error {
	apply()
	if err := remote(); err != nil {
		revert()
		return err
	}
	return nil
}
