package storage

import "testing"

func TestNearCapacity(t *testing.T) {
	tests := []struct {
		name      string
		used      int64
		available int64
		want      bool
	}{
		{"empty disk", 0, 1000, false},
		{"half full", 500, 500, false},
		{"at threshold", 80, 20, false},
		{"just over threshold", 81, 19, true},
		{"nearly full", 999, 1, true},
		{"zero total", 0, 0, false},
		{"negative readings", -1, -1, false},
		{"900MB used of 1GB", 900 << 20, 100 << 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearCapacity(tt.used, tt.available); got != tt.want {
				t.Errorf("NearCapacity(%d, %d) = %v, want %v", tt.used, tt.available, got, tt.want)
			}
		})
	}
}

func TestDiskMonitor_RealFilesystem(t *testing.T) {
	monitor := NewDiskMonitor(t.TempDir())

	// Readings are environment-dependent; only sanity-check them.
	if monitor.AvailableBytes() < 0 {
		t.Error("available bytes should never be negative")
	}
	if monitor.UsedBytes() < 0 {
		t.Error("used bytes should never be negative")
	}
}

func TestDiskMonitor_MissingPathReadsZero(t *testing.T) {
	monitor := NewDiskMonitor("/no/such/path/for/arcana")

	if monitor.AvailableBytes() != 0 {
		t.Error("failed reading should report 0 available")
	}
	if monitor.UsedBytes() != 0 {
		t.Error("failed reading should report 0 used")
	}
	if monitor.IsNearCapacity() {
		t.Error("unknown capacity should not alarm")
	}
}
