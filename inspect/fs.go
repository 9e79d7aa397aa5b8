package inspect

import (
	"os"
	"strings"
	"syscall"
	"time"

	exfat "github.com/ardnew/usbexfat"
	"github.com/spf13/afero"
)

// FS is a read-only afero.Fs view over a Synthesizer's root directory.
// Every write-like method fails with syscall.EROFS, matching the
// synthesizer's own refusal to accept WRITE(10) at the SCSI layer.
type FS struct {
	synth *exfat.Synthesizer
}

// New wraps synth as an afero.Fs. Callers typically pass the result to
// afero.ReadFile, afero.Walk, or wire it into a FUSE/NFS bridge for
// interactive debugging.
func New(synth *exfat.Synthesizer) afero.Fs {
	return &FS{synth: synth}
}

func (fs *FS) lookup(name string) *exfat.FileRecord {
	name = strings.TrimPrefix(name, "/")
	for _, rec := range fs.synth.Files() {
		if info := newRecordInfo(rec); info.Name() == name {
			return rec
		}
	}
	return nil
}

func (fs *FS) Open(name string) (afero.File, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return newRootDir(fs.synth.Files()), nil
	}
	rec := fs.lookup(name)
	if rec == nil {
		return nil, os.ErrNotExist
	}
	return newFile(rec), nil
}

func (fs *FS) OpenFile(name string, flag int, _ os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, syscall.EROFS
	}
	return fs.Open(name)
}

func (fs *FS) Stat(name string) (os.FileInfo, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return rootInfo{}, nil
	}
	rec := fs.lookup(name)
	if rec == nil {
		return nil, os.ErrNotExist
	}
	return newRecordInfo(rec), nil
}

func (fs *FS) Name() string { return "exfatsynth" }

func (fs *FS) Create(string) (afero.File, error)               { return nil, syscall.EROFS }
func (fs *FS) Mkdir(string, os.FileMode) error                  { return syscall.EROFS }
func (fs *FS) MkdirAll(string, os.FileMode) error               { return syscall.EROFS }
func (fs *FS) Remove(string) error                              { return syscall.EROFS }
func (fs *FS) RemoveAll(string) error                           { return syscall.EROFS }
func (fs *FS) Rename(string, string) error                      { return syscall.EROFS }
func (fs *FS) Chmod(string, os.FileMode) error                  { return syscall.EROFS }
func (fs *FS) Chown(string, int, int) error                     { return syscall.EROFS }
func (fs *FS) Chtimes(string, time.Time, time.Time) error       { return syscall.EROFS }
