// Package trace provides hooks that trace the accesses of a dual-port RAM.
package trace

import (
	"log"

	"github.com/rs/xid"
	"github.com/sarchlab/dpram/datarecording"
	"github.com/sarchlab/dpram/mem/dpram"
	"github.com/sarchlab/dpram/sim/hooking"
	"github.com/sarchlab/dpram/sim/naming"
	"github.com/sarchlab/dpram/sim/timing"
)

const accessTable = "memory_accesses"

// memoryAccessEntry represents a memory access in the database
type memoryAccessEntry struct {
	ID       string
	Location string
	Port     string
	What     string
	Time     float64
	Cycle    uint64
	Address  uint32
	ByteSize uint64
	Data     uint32
}

// A tracer is a hook that prints the accesses of a memory into a log.
type tracer struct {
	timeTeller timing.TimeTeller
	logger     *log.Logger
}

// A dbTracer is a hook that records the accesses of a memory into a database
// using the data recorder.
type dbTracer struct {
	timeTeller   timing.TimeTeller
	dataRecorder datarecording.DataRecorder
}

// NewLogTracer creates a hook that prints one line per access:
// time, location, port, kind, address, size, data.
func NewLogTracer(logger *log.Logger, timeTeller timing.TimeTeller) hooking.Hook {
	t := new(tracer)
	t.logger = logger
	t.timeTeller = timeTeller

	return t
}

// Func prints the access carried by the hook context.
func (t *tracer) Func(ctx hooking.HookCtx) {
	access, ok := accessOf(ctx)
	if !ok {
		return
	}

	t.logger.Printf("%.12f, %s, %s, %s, 0x%08x, %s, 0x%08x\n",
		t.timeTeller.Now(),
		locationOf(ctx),
		access.Port,
		access.Kind,
		access.Address,
		access.Size,
		access.Data,
	)
}

// NewDBTracer creates a hook that stores every access in the memory_accesses
// table.
func NewDBTracer(
	dataRecorder datarecording.DataRecorder,
	timeTeller timing.TimeTeller,
) hooking.Hook {
	t := &dbTracer{
		timeTeller:   timeTeller,
		dataRecorder: dataRecorder,
	}

	t.dataRecorder.CreateTable(accessTable, memoryAccessEntry{})

	return t
}

// Func records the access carried by the hook context.
func (t *dbTracer) Func(ctx hooking.HookCtx) {
	access, ok := accessOf(ctx)
	if !ok {
		return
	}

	t.dataRecorder.InsertData(accessTable, memoryAccessEntry{
		ID:       xid.New().String(),
		Location: locationOf(ctx),
		Port:     access.Port,
		What:     access.Kind.String(),
		Time:     float64(t.timeTeller.Now()),
		Cycle:    access.Cycle,
		Address:  access.Address,
		ByteSize: access.Size.Bytes(),
		Data:     access.Data,
	})
}

func accessOf(ctx hooking.HookCtx) (dpram.Access, bool) {
	if ctx.Pos != dpram.HookPosAccess {
		return dpram.Access{}, false
	}

	access, ok := ctx.Item.(dpram.Access)

	return access, ok
}

func locationOf(ctx hooking.HookCtx) string {
	if named, ok := ctx.Domain.(naming.Named); ok {
		return named.Name()
	}

	return ""
}
