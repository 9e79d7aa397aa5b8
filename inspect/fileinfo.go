package inspect

import (
	"os"
	"time"

	exfat "github.com/ardnew/usbexfat"
	"github.com/ardnew/usbexfat/nameenc"
)

// recordInfo adapts a *exfat.FileRecord to os.FileInfo, the same role
// entryHeaderFileInfo plays for a real on-disk directory entry.
type recordInfo struct {
	rec  *exfat.FileRecord
	name string
}

func newRecordInfo(rec *exfat.FileRecord) recordInfo {
	name, err := nameenc.Decode(rec.NameUTF16LE)
	if err != nil {
		name = "?"
	}
	return recordInfo{rec: rec, name: name}
}

func (i recordInfo) Name() string       { return i.name }
func (i recordInfo) Size() int64        { return i.rec.Size }
func (i recordInfo) Mode() os.FileMode  { return 0o444 }
func (i recordInfo) ModTime() time.Time { return i.rec.Modified }
func (i recordInfo) IsDir() bool        { return false }
func (i recordInfo) Sys() any           { return i.rec }

// rootInfo is the synthesized root directory's own os.FileInfo.
type rootInfo struct{}

func (rootInfo) Name() string       { return "/" }
func (rootInfo) Size() int64        { return 0 }
func (rootInfo) Mode() os.FileMode  { return os.ModeDir | 0o555 }
func (rootInfo) ModTime() time.Time { return time.Time{} }
func (rootInfo) IsDir() bool        { return true }
func (rootInfo) Sys() any           { return nil }
