// Package arena hands out records by index from fixed-size blocks that are
// shared by every record type registered on the same allocator. Blocks are
// never moved or released, so pointers returned by Get stay valid until the
// allocator itself is dropped.
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// BadIndex is returned together with ErrOutOfMemory.
const BadIndex = ^uint32(0)

var (
	ErrOutOfMemory     = errors.New("out of memory")
	ErrInvalidArgument = errors.New("invalid argument")
)

type rewinder interface {
	rewind()
}

type Allocator struct {
	maxBlocks  int
	blockSize  int
	usedBlocks int
	slabs      []rewinder
}

func New(maxBlocks, blockSize int) (*Allocator, error) {
	if maxBlocks <= 0 || blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d blocks of %d bytes", ErrInvalidArgument, maxBlocks, blockSize)
	}
	return &Allocator{maxBlocks: maxBlocks, blockSize: blockSize}, nil
}

// Reset forgets every record while keeping the materialised blocks.
func (a *Allocator) Reset() {
	for _, s := range a.slabs {
		s.rewind()
	}
}

// UsedBlocks counts blocks materialised so far across all slabs.
func (a *Allocator) UsedBlocks() int { return a.usedBlocks }

func (a *Allocator) MaxBlocks() int { return a.maxBlocks }

func (a *Allocator) grab() bool {
	if a.usedBlocks >= a.maxBlocks {
		return false
	}
	a.usedBlocks++
	return true
}

// Slab is the per-type view of an Allocator. Records are addressed by a
// dense uint32 index starting at 0.
type Slab[T any] struct {
	owner    *Allocator
	perBlock int
	blocks   [][]T
	next     int
}

func NewSlab[T any](a *Allocator) (*Slab[T], error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	if size > a.blockSize {
		return nil, fmt.Errorf("%w: record of %d bytes exceeds block size %d", ErrInvalidArgument, size, a.blockSize)
	}
	s := &Slab[T]{owner: a, perBlock: a.blockSize / size}
	a.slabs = append(a.slabs, s)
	return s, nil
}

func (s *Slab[T]) rewind() { s.next = 0 }

func (s *Slab[T]) Alloc() (uint32, error) { return s.AllocN(1) }

// AllocN reserves k contiguous records and returns the index of the first
// one. The records are zeroed. A run never straddles two blocks, the tail of
// a block that cannot hold the run is skipped.
func (s *Slab[T]) AllocN(k int) (uint32, error) {
	if k <= 0 {
		return BadIndex, fmt.Errorf("%w: cannot allocate %d records", ErrInvalidArgument, k)
	}
	if k > s.perBlock {
		return BadIndex, fmt.Errorf("%w: run of %d records exceeds the %d a block holds", ErrOutOfMemory, k, s.perBlock)
	}

	start := s.next
	if offset := start % s.perBlock; offset+k > s.perBlock {
		start += s.perBlock - offset
	}
	end := start + k

	for end > len(s.blocks)*s.perBlock {
		if !s.owner.grab() {
			return BadIndex, fmt.Errorf("%w: %d blocks in use", ErrOutOfMemory, s.owner.usedBlocks)
		}
		s.blocks = append(s.blocks, make([]T, s.perBlock))
	}

	var zero T
	for i := start; i < end; i++ {
		s.blocks[i/s.perBlock][i%s.perBlock] = zero
	}
	s.next = end
	return uint32(start), nil
}

// Get returns the record at index i, which must come from Alloc or AllocN
// since the last Reset.
func (s *Slab[T]) Get(i uint32) *T {
	return &s.blocks[int(i)/s.perBlock][int(i)%s.perBlock]
}

// Len is the number of index slots handed out since the last Reset,
// including skipped block tails.
func (s *Slab[T]) Len() int { return s.next }

// Cap is the number of records the materialised blocks can hold.
func (s *Slab[T]) Cap() int { return len(s.blocks) * s.perBlock }

func (s *Slab[T]) PerBlock() int { return s.perBlock }
