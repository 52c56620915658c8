// Package storage keeps the contents of simulated memories.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Capacity units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

// UnitSize is the granularity in which backing memory is allocated.
const UnitSize uint64 = 4096

// ErrBeyondCapacity is returned for accesses past the end of a Storage.
var ErrBeyondCapacity = errors.New("accessing address beyond the storage capacity")

// A Storage keeps the data of a simulated memory.
//
// The storage manages the data in units, similar to pages. A unit is only
// allocated when it is first written. Reading a unit that has never been
// written returns zeros without allocating it.
type Storage struct {
	capacity uint64
	units    map[uint64][]byte
}

// New creates a storage with the given capacity in bytes.
func New(capacity uint64) *Storage {
	return &Storage{
		capacity: capacity,
		units:    make(map[uint64][]byte),
	}
}

// Capacity returns the size of the address space in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

// NumUnits returns how many units have been allocated.
func (s *Storage) NumUnits() int {
	return len(s.units)
}

// CheckRange reports whether length bytes starting at addr fit in the
// storage, without touching any unit.
func (s *Storage) CheckRange(addr, length uint64) error {
	return s.mustBeInRange(addr, length)
}

func (s *Storage) mustBeInRange(addr, length uint64) error {
	end := addr + length
	if end < addr || end > s.capacity {
		return fmt.Errorf("%w: 0x%x+%d (capacity 0x%x)",
			ErrBeyondCapacity, addr, length, s.capacity)
	}

	return nil
}

func splitAddress(addr uint64) (base, offset uint64) {
	offset = addr % UnitSize
	base = addr - offset

	return base, offset
}

func (s *Storage) unitForWrite(base uint64) []byte {
	unit, ok := s.units[base]
	if !ok {
		unit = make([]byte, UnitSize)
		s.units[base] = unit
	}

	return unit
}

// Read returns length bytes starting at addr.
func (s *Storage) Read(addr, length uint64) ([]byte, error) {
	if err := s.mustBeInRange(addr, length); err != nil {
		return nil, err
	}

	res := make([]byte, length)
	done := uint64(0)

	for done < length {
		curr := addr + done
		base, offset := splitAddress(curr)
		n := min(length-done, UnitSize-offset)

		if unit, ok := s.units[base]; ok {
			copy(res[done:done+n], unit[offset:offset+n])
		}

		done += n
	}

	return res, nil
}

// Write stores data starting at addr.
func (s *Storage) Write(addr uint64, data []byte) error {
	length := uint64(len(data))
	if err := s.mustBeInRange(addr, length); err != nil {
		return err
	}

	done := uint64(0)
	for done < length {
		curr := addr + done
		base, offset := splitAddress(curr)
		n := min(length-done, UnitSize-offset)

		unit := s.unitForWrite(base)
		copy(unit[offset:offset+n], data[done:done+n])

		done += n
	}

	return nil
}

// The fixed-width accessors are little endian and align the address down to
// the access size, the way a memory bus ignores the low address bits.

// Read8 reads one byte.
func (s *Storage) Read8(addr uint64) (uint8, error) {
	data, err := s.Read(addr, 1)
	if err != nil {
		return 0, err
	}

	return data[0], nil
}

// Read16 reads a half word.
func (s *Storage) Read16(addr uint64) (uint16, error) {
	data, err := s.Read(alignDown(addr, 2), 2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(data), nil
}

// Read32 reads a word.
func (s *Storage) Read32(addr uint64) (uint32, error) {
	data, err := s.Read(alignDown(addr, 4), 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(data), nil
}

// Read64 reads a double word.
func (s *Storage) Read64(addr uint64) (uint64, error) {
	data, err := s.Read(alignDown(addr, 8), 8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(data), nil
}

// Write8 writes one byte.
func (s *Storage) Write8(addr uint64, v uint8) error {
	return s.Write(addr, []byte{v})
}

// Write16 writes a half word.
func (s *Storage) Write16(addr uint64, v uint16) error {
	return s.Write(alignDown(addr, 2), binary.LittleEndian.AppendUint16(nil, v))
}

// Write32 writes a word.
func (s *Storage) Write32(addr uint64, v uint32) error {
	return s.Write(alignDown(addr, 4), binary.LittleEndian.AppendUint32(nil, v))
}

// Write64 writes a double word.
func (s *Storage) Write64(addr uint64, v uint64) error {
	return s.Write(alignDown(addr, 8), binary.LittleEndian.AppendUint64(nil, v))
}

func alignDown(addr, size uint64) uint64 {
	return addr &^ (size - 1)
}
