package rtl

import "fmt"

// AccessSize is the encoded transfer size of a memory port.
type AccessSize uint32

// Transfer size encodings.
const (
	SizeByte   AccessSize = 0
	SizeHalf   AccessSize = 1
	SizeWord   AccessSize = 2
	SizeDouble AccessSize = 3
)

// Bytes returns the number of bytes moved by a transfer of this size.
func (s AccessSize) Bytes() uint64 {
	return 1 << uint64(s)
}

// Mask returns the data bits covered by a transfer of this size on a 32-bit
// data bus.
func (s AccessSize) Mask() uint32 {
	switch s {
	case SizeByte:
		return 0xff
	case SizeHalf:
		return 0xffff
	default:
		return 0xffffffff
	}
}

func (s AccessSize) String() string {
	switch s {
	case SizeByte:
		return "byte"
	case SizeHalf:
		return "half"
	case SizeWord:
		return "word"
	case SizeDouble:
		return "double"
	default:
		return fmt.Sprintf("size(%d)", uint32(s))
	}
}
