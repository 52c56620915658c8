package dpram

import (
	"github.com/sarchlab/dpram/rtl"
	"github.com/sarchlab/dpram/sim/hooking"
)

// HookPosAccess is triggered for every memory access. The hook item is an
// Access.
var HookPosAccess = &hooking.HookPos{Name: "DPRAMAccess"}

// HookPosEdge is triggered on every rising clock edge, before any access of
// that edge. The hook item is an Edge.
var HookPosEdge = &hooking.HookPos{Name: "DPRAMEdge"}

// AccessKind tells reads from writes.
type AccessKind int

// Access kinds.
const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	if k == AccessWrite {
		return "write"
	}

	return "read"
}

// Access describes one memory access performed on a clock edge.
type Access struct {
	Port    string
	Kind    AccessKind
	Cycle   uint64
	Address uint32
	Size    rtl.AccessSize
	Data    uint32
}

// Edge describes a rising clock edge.
type Edge struct {
	Cycle uint64
	Reset bool
}
