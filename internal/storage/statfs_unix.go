//go:build linux || darwin

package storage

import "golang.org/x/sys/unix"

// statFS returns (available, used) bytes for the filesystem holding path.
func statFS(path string) (int64, int64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}

	bsize := int64(st.Bsize)
	total := int64(st.Blocks) * bsize
	available := int64(st.Bavail) * bsize
	free := int64(st.Bfree) * bsize

	used := total - free
	if used < 0 {
		used = 0
	}
	return available, used, nil
}
