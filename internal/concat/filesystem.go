package concat

import (
	"io/fs"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const nativeRootPath = "/"

// nativeFileSystem resolves paths exactly as the operating system does, relative paths
// included, so fragment headers keep the caller's root prefix.
type nativeFileSystem struct {
	osfs.ChrootOS
}

// Chroot returns a filesystem rooted at path.
func (fileSystem *nativeFileSystem) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root reports the filesystem root.
func (fileSystem *nativeFileSystem) Root() string {
	return nativeRootPath
}

// ReadDir lists path. An entry removed between the listing and its stat is still reported,
// so the failure surfaces when the entry is read instead of dropping the whole directory.
func (fileSystem *nativeFileSystem) ReadDir(path string) ([]os.FileInfo, error) {
	entries, readError := os.ReadDir(path)
	if readError != nil {
		return nil, readError
	}
	return directoryEntryInfos(entries), nil
}

// NewOSFileSystem returns a billy.Filesystem backed by the host filesystem.
func NewOSFileSystem() billy.Filesystem {
	return &nativeFileSystem{}
}

func directoryEntryInfos(entries []fs.DirEntry) []os.FileInfo {
	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, infoError := entry.Info()
		if infoError != nil {
			info = vanishedEntryInfo{name: entry.Name(), mode: entry.Type()}
		}
		infos = append(infos, info)
	}
	return infos
}

// vanishedEntryInfo describes a listed entry that could no longer be stat'ed.
type vanishedEntryInfo struct {
	name string
	mode fs.FileMode
}

func (info vanishedEntryInfo) Name() string       { return info.name }
func (info vanishedEntryInfo) Size() int64        { return 0 }
func (info vanishedEntryInfo) Mode() fs.FileMode  { return info.mode }
func (info vanishedEntryInfo) ModTime() time.Time { return time.Time{} }
func (info vanishedEntryInfo) IsDir() bool        { return info.mode.IsDir() }
func (info vanishedEntryInfo) Sys() any           { return nil }
