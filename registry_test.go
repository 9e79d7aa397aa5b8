package exfat

import (
	"errors"
	"testing"
	"time"
)

func TestRegistry_AddAllocatesSequentially(t *testing.T) {
	r := NewRegistry(100, 200, 8)
	recA := &FileRecord{NameUTF16LE: []byte("A")}
	recB := &FileRecord{NameUTF16LE: []byte("B")}

	if err := r.Add(recA, ClusterSize+1); err != nil {
		t.Fatalf("Add(recA) error = %v", err)
	}
	if recA.FirstCluster != 100 || recA.ClusterCount != 2 {
		t.Errorf("recA = {first:%d count:%d}, want {100 2}", recA.FirstCluster, recA.ClusterCount)
	}

	if err := r.Add(recB, 1); err != nil {
		t.Fatalf("Add(recB) error = %v", err)
	}
	if recB.FirstCluster != 102 {
		t.Errorf("recB.FirstCluster = %d, want 102", recB.FirstCluster)
	}
}

func TestRegistry_Add_TooManyFiles(t *testing.T) {
	r := NewRegistry(100, 200, 1)
	if err := r.Add(&FileRecord{}, 1); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	err := r.Add(&FileRecord{}, 1)
	if !errors.Is(err, ErrTooManyFiles) {
		t.Errorf("second Add() error = %v, want ErrTooManyFiles", err)
	}
}

func TestRegistry_Add_OutOfSpace(t *testing.T) {
	r := NewRegistry(100, 101, 8)
	err := r.Add(&FileRecord{}, ClusterSize+1)
	if !errors.Is(err, ErrOutOfSpace) {
		t.Errorf("Add() error = %v, want ErrOutOfSpace", err)
	}
}

func TestRegistry_Update_GrowsTailInPlace(t *testing.T) {
	r := NewRegistry(100, 200, 8)
	rec := &FileRecord{}
	if err := r.Add(rec, 1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	now := time.Now()
	if err := r.Update(rec, ClusterSize+1, now); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if rec.ClusterCount != 2 {
		t.Errorf("ClusterCount = %d, want 2", rec.ClusterCount)
	}
	if r.nextCluster != 102 {
		t.Errorf("nextCluster = %d, want 102", r.nextCluster)
	}
}

func TestRegistry_Update_RejectsGrowthWhenNotTail(t *testing.T) {
	r := NewRegistry(100, 200, 8)
	first := &FileRecord{}
	second := &FileRecord{}
	if err := r.Add(first, 1); err != nil {
		t.Fatalf("Add(first) error = %v", err)
	}
	if err := r.Add(second, 1); err != nil {
		t.Fatalf("Add(second) error = %v", err)
	}
	err := r.Update(first, ClusterSize+1, time.Now())
	if !errors.Is(err, ErrNotAllocatedTail) {
		t.Errorf("Update(first) error = %v, want ErrNotAllocatedTail", err)
	}
}

func TestRegistry_Files_ReturnsSnapshot(t *testing.T) {
	r := NewRegistry(100, 200, 8)
	if err := r.Add(&FileRecord{NameUTF16LE: []byte("A")}, 1); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	files := r.Files()
	if len(files) != 1 {
		t.Fatalf("len(Files()) = %d, want 1", len(files))
	}
	files[0] = nil // mutating the snapshot must not affect the registry
	if r.Files()[0] == nil {
		t.Error("mutating snapshot affected registry's internal entries")
	}
}

func TestFindFileForCluster(t *testing.T) {
	files := []*FileRecord{
		{FirstCluster: 10, ClusterCount: 2},
		{FirstCluster: 12, ClusterCount: 3},
	}
	if f := findFileForCluster(files, 13); f != files[1] {
		t.Errorf("findFileForCluster(13) = %v, want files[1]", f)
	}
	if f := findFileForCluster(files, 20); f != nil {
		t.Errorf("findFileForCluster(20) = %v, want nil", f)
	}
}

func TestFileRecord_DirSetCachedUntilInvalidate(t *testing.T) {
	uc := newUpcaseTable()
	f := &FileRecord{NameUTF16LE: []byte{'A', 0}, Created: time.Now(), Modified: time.Now()}
	first := f.dirSet(uc)
	second := f.dirSet(uc)
	if &first[0] != &second[0] {
		t.Error("dirSet() recomputed instead of returning cached slice")
	}
	f.invalidate()
	third := f.dirSet(uc)
	if &first[0] == &third[0] {
		t.Error("dirSet() returned stale slice after invalidate()")
	}
}
