//go:build unix

package fs

import (
	"fmt"
	"io/fs"
	"syscall"
	"time"

	"photorename/internal/rename"
)

// extractTimes pulls the platform timestamps out of a FileInfo. Unix
// reports the inode change time rather than a true birth time; the
// resolver's earlier-of-the-two rule absorbs the difference.
func extractTimes(info fs.FileInfo) (rename.FileTimes, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return rename.FileTimes{}, fmt.Errorf("cannot extract stat data: expected *syscall.Stat_t, got %T", info.Sys())
	}

	return rename.FileTimes{
		Ctime: time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec),
		Mtime: info.ModTime(),
	}, nil
}
