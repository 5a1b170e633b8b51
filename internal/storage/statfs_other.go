//go:build !linux && !darwin

package storage

import "errors"

// statFS is unavailable on this platform; readings stay "unknown" and the
// near-capacity check stays false.
func statFS(string) (int64, int64, error) {
	return 0, 0, errors.New("storage query not supported on this platform")
}
