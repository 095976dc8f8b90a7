//go:build unix

package fsops

import (
	"io/fs"
	"os"
	"syscall"
)

func ownerOf(info fs.FileInfo) (Owner, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Owner{}, false
	}
	return Owner{UID: int(st.Uid), GID: int(st.Gid)}, true
}

func lchown(path string, owner Owner) error {
	return os.Lchown(path, owner.UID, owner.GID)
}
