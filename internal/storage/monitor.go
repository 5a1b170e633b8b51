// Package storage reports filesystem capacity for the history store's data
// directory. Advisory only: readings drive user-facing pruning prompts and
// never block writes.
package storage

// WarningThreshold is the used-capacity ratio above which the store is
// considered near capacity.
const WarningThreshold = 0.80

// Monitor reports storage capacity for the history store location.
type Monitor interface {
	IsNearCapacity() bool
	AvailableBytes() int64
	UsedBytes() int64
}

// DiskMonitor queries the filesystem holding the given path. Queries are
// best-effort: on failure both readings are 0, which reads as "unknown" and
// biases IsNearCapacity toward false rather than alarming the user.
type DiskMonitor struct {
	Path string
}

// NewDiskMonitor creates a monitor for the filesystem containing path.
func NewDiskMonitor(path string) *DiskMonitor {
	return &DiskMonitor{Path: path}
}

// IsNearCapacity reports whether usage exceeds WarningThreshold.
func (m *DiskMonitor) IsNearCapacity() bool {
	return NearCapacity(m.UsedBytes(), m.AvailableBytes())
}

// AvailableBytes returns the free space on the filesystem, or 0 on failure.
func (m *DiskMonitor) AvailableBytes() int64 {
	avail, _, err := statFS(m.Path)
	if err != nil {
		return 0
	}
	return avail
}

// UsedBytes returns the occupied space on the filesystem, or 0 on failure.
func (m *DiskMonitor) UsedBytes() int64 {
	_, used, err := statFS(m.Path)
	if err != nil {
		return 0
	}
	return used
}

// NearCapacity is the threshold check shared by all monitors:
// used/(used+available) > WarningThreshold, with a zero-total guard.
func NearCapacity(used, available int64) bool {
	total := used + available
	if total <= 0 {
		return false
	}
	return float64(used)/float64(total) > WarningThreshold
}
