// Package lockfile serialises writers of the on-disk stores across processes
// with an advisory lock held on a sibling ".lock" file.
package lockfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"
)

// DefaultTimeout bounds how long a writer waits for another process
const DefaultTimeout = 10 * time.Second

var errBusy = errors.New("lock held by another process")

// Path returns the lock file guarding target
func Path(target string) string {
	return target + ".lock"
}

// With runs fn while holding the advisory lock for target.
// Acquisition polls with exponential backoff until ctx is done or DefaultTimeout elapses.
func With(ctx context.Context, target string, fn func() error) error {
	lockPath := Path(target)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	lock := flock.New(lockPath)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 20 * time.Millisecond
	policy.MaxInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 0

	err := backoff.Retry(func() error {
		locked, err := lock.TryLock()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !locked {
			return errBusy
		}
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		if errors.Is(err, errBusy) || ctx.Err() != nil {
			return fmt.Errorf("failed to acquire lock %s: timeout", lockPath)
		}
		return fmt.Errorf("failed to acquire lock %s: %w", lockPath, err)
	}
	defer lock.Unlock()

	return fn()
}
