package exfat

import (
	"sync"
	"time"

	"github.com/ardnew/usbexfat/pkg"
)

// ContentFunc supplies file content on demand: given a byte offset into the
// file and a destination slice, it fills buf[:len(buf)] with the file's
// bytes starting at fileOffset. Callers never pass an offset/length pair
// that crosses the file's declared Size; dispatch clamps and zero-fills the
// rest.
type ContentFunc func(fileOffset int64, buf []byte)

// FileRecord is the common shape shared by static and dynamic files
//: a directory-set-worth of metadata plus a content callback.
// Static files never change after construction; dynamic files mutate Size
// and Modified in place under Registry's lock.
type FileRecord struct {
	NameUTF16LE []byte
	FirstCluster uint32
	ClusterCount uint32 // allocated capacity, in clusters
	Size         int64  // current logical size in bytes, <= ClusterCount*ClusterSize
	Created      time.Time
	Modified     time.Time
	Content      ContentFunc

	mu        sync.Mutex
	cachedSet []byte
}

// Capacity returns the number of bytes currently allocated to the file.
func (f *FileRecord) Capacity() int64 {
	return int64(f.ClusterCount) * ClusterSize
}

// ClusterRange returns the half-open [first, first+count) cluster range
// occupied by the file.
func (f *FileRecord) ClusterRange() (first, end uint32) {
	return f.FirstCluster, f.FirstCluster + f.ClusterCount
}

// dirSet returns this file's rendered directory set, computing and caching
// it on first use or after invalidation.
func (f *FileRecord) dirSet(uc *upcaseTable) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cachedSet == nil {
		f.cachedSet = buildFileDirSet(f, uc)
	}
	return f.cachedSet
}

// invalidate discards the cached directory set, forcing it to be rebuilt
// on next use. Called whenever Size or Modified changes.
func (f *FileRecord) invalidate() {
	f.mu.Lock()
	f.cachedSet = nil
	f.mu.Unlock()
}

// Registry is the dynamic file table and its bump allocator.
// Registration is append-only after startup; Update mutates only the size
// and modification time of an existing entry, so concurrent readers never
// observe a torn FileRecord.
type Registry struct {
	mu          sync.Mutex
	nextCluster uint32
	regionEnd   uint32
	maxFiles    int
	entries     []*FileRecord
}

// NewRegistry creates an allocator bump-pointer over
// [startCluster, endCluster) with room for up to maxFiles entries.
func NewRegistry(startCluster, endCluster uint32, maxFiles int) *Registry {
	return &Registry{
		nextCluster: startCluster,
		regionEnd:   endCluster,
		maxFiles:    maxFiles,
	}
}

// Add registers rec, allocating enough contiguous clusters for maxSize
// bytes. rec.FirstCluster must be zero; on success it is filled in along
// with ClusterCount. Returns [ErrTooManyFiles] if the registry is full, or
// [ErrOutOfSpace] if the dynamic region cannot satisfy the request.
func (r *Registry) Add(rec *FileRecord, maxSize int64) error {
	if maxSize < 0 {
		return ErrNegativeSize
	}
	k := ClustersForSize(maxSize)
	if k == 0 {
		k = 1 // every registered file occupies at least one cluster
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) >= r.maxFiles {
		pkg.LogWarn(pkg.ComponentRegistry, "registration rejected", "reason", "too many files", "name", string(rec.NameUTF16LE))
		return ErrTooManyFiles
	}
	if r.nextCluster+k > r.regionEnd {
		pkg.LogWarn(pkg.ComponentRegistry, "registration rejected", "reason", "out of space", "name", string(rec.NameUTF16LE), "need", k)
		return ErrOutOfSpace
	}

	rec.FirstCluster = r.nextCluster
	rec.ClusterCount = k
	r.nextCluster += k
	r.entries = append(r.entries, rec)

	pkg.LogDebug(pkg.ComponentRegistry, "file registered", "firstCluster", rec.FirstCluster, "clusters", k)
	return nil
}

// Update sets rec's logical size to newSize, refreshing its modification
// time. If newSize exceeds rec's current capacity, the file may only grow
// if it is the most recently allocated entry (its cluster range abuts the
// allocator's bump pointer); otherwise Update fails without changing
// anything.
func (r *Registry) Update(rec *FileRecord, newSize int64, now time.Time) error {
	if newSize < 0 {
		return ErrNegativeSize
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if newSize > rec.Capacity() {
		needed := ClustersForSize(newSize)
		_, end := rec.ClusterRange()
		if end != r.nextCluster {
			return ErrNotAllocatedTail
		}
		grow := needed - rec.ClusterCount
		if r.nextCluster+grow > r.regionEnd {
			return ErrOutOfSpace
		}
		rec.ClusterCount = needed
		r.nextCluster += grow
	}

	rec.Size = newSize
	rec.Modified = now
	rec.invalidate()
	return nil
}

// Files returns a snapshot slice of the currently registered dynamic
// files, in registration order. The registry never removes entries, so
// indices remain stable for the lifetime of the process.
func (r *Registry) Files() []*FileRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*FileRecord, len(r.entries))
	copy(out, r.entries)
	return out
}

// findFileForCluster returns the file in files whose cluster range
// contains n, or nil if no file matches. files is assumed to be the
// concatenation of static files then dynamic files
// slot-assignment rule.
func findFileForCluster(files []*FileRecord, n uint32) *FileRecord {
	for _, f := range files {
		first, end := f.ClusterRange()
		if n >= first && n < end {
			return f
		}
	}
	return nil
}
