package inspect

import (
	"io"
	"os"
	"syscall"

	exfat "github.com/ardnew/usbexfat"
	"github.com/spf13/afero"
)

// file is the afero.File returned for one synthesized entry. It reads
// straight through the record's ContentFunc, the same callback the SCSI
// read path dispatches to, so what a debugging tool sees here is exactly
// what a host would read off the block device.
type file struct {
	rec    *exfat.FileRecord
	info   recordInfo
	offset int64
}

func newFile(rec *exfat.FileRecord) *file {
	return &file{rec: rec, info: newRecordInfo(rec)}
}

func (f *file) Read(p []byte) (int, error) {
	n, err := f.ReadAt(p, f.offset)
	f.offset += int64(n)
	return n, err
}

func (f *file) ReadAt(p []byte, off int64) (int, error) {
	if off >= f.rec.Size {
		return 0, io.EOF
	}
	n := int64(len(p))
	if off+n > f.rec.Size {
		n = f.rec.Size - off
	}
	f.rec.Content(off, p[:n])
	if n < int64(len(p)) {
		return int(n), io.EOF
	}
	return int(n), nil
}

func (f *file) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += f.offset
	case io.SeekEnd:
		offset += f.rec.Size
	default:
		return 0, syscall.EINVAL
	}
	if offset < 0 || offset > f.rec.Size {
		return 0, afero.ErrOutOfRange
	}
	f.offset = offset
	return offset, nil
}

func (f *file) Close() error                               { return nil }
func (f *file) Name() string                                { return f.info.Name() }
func (f *file) Stat() (os.FileInfo, error)                  { return f.info, nil }
func (f *file) Sync() error                                 { return nil }
func (f *file) Readdir(int) ([]os.FileInfo, error)          { return nil, syscall.ENOTDIR }
func (f *file) Readdirnames(int) ([]string, error)          { return nil, syscall.ENOTDIR }
func (f *file) Truncate(int64) error                        { return syscall.EROFS }
func (f *file) Write([]byte) (int, error)                   { return 0, syscall.EROFS }
func (f *file) WriteAt([]byte, int64) (int, error)           { return 0, syscall.EROFS }
func (f *file) WriteString(string) (int, error)             { return 0, syscall.EROFS }

// rootDir is the afero.File for the synthesized filesystem's root
// directory, the only directory this read-only view has.
type rootDir struct {
	entries []os.FileInfo
	offset  int
}

func newRootDir(files []*exfat.FileRecord) *rootDir {
	entries := make([]os.FileInfo, len(files))
	for i, rec := range files {
		entries[i] = newRecordInfo(rec)
	}
	return &rootDir{entries: entries}
}

func (d *rootDir) Readdir(count int) ([]os.FileInfo, error) {
	remaining := d.entries[d.offset:]
	if count <= 0 {
		d.offset = len(d.entries)
		return remaining, nil
	}
	if count > len(remaining) {
		count = len(remaining)
	}
	d.offset += count
	var err error
	if count < len(remaining) {
		err = nil
	} else if len(remaining) == 0 {
		err = io.EOF
	}
	return remaining[:count], err
}

func (d *rootDir) Readdirnames(count int) ([]string, error) {
	infos, err := d.Readdir(count)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, err
}

func (d *rootDir) Read([]byte) (int, error)                { return 0, syscall.EISDIR }
func (d *rootDir) ReadAt([]byte, int64) (int, error)        { return 0, syscall.EISDIR }
func (d *rootDir) Seek(int64, int) (int64, error)           { return 0, syscall.EISDIR }
func (d *rootDir) Write([]byte) (int, error)                { return 0, syscall.EROFS }
func (d *rootDir) WriteAt([]byte, int64) (int, error)       { return 0, syscall.EROFS }
func (d *rootDir) WriteString(string) (int, error)          { return 0, syscall.EROFS }
func (d *rootDir) Truncate(int64) error                     { return syscall.EROFS }
func (d *rootDir) Close() error                             { return nil }
func (d *rootDir) Name() string                             { return "/" }
func (d *rootDir) Sync() error                              { return nil }
func (d *rootDir) Stat() (os.FileInfo, error)                { return rootInfo{}, nil }
