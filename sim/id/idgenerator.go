// Package id generates the IDs carried by events and recorded entries.
package id

import (
	"log"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs.
type IDGenerator interface {
	// Generate an ID.
	Generate() string
}

var (
	generatorLock         sync.Mutex
	generatorInstantiated bool
	generator             IDGenerator
)

// UseSequentialIDGenerator makes Generate return 1, 2, 3, ... This is the
// default and keeps simulations reproducible.
func UseSequentialIDGenerator() {
	use(NewSequentialIDGenerator())
}

// UseParallelIDGenerator makes Generate return globally unique xid strings.
// The IDs are no longer deterministic across runs.
func UseParallelIDGenerator() {
	use(NewParallelIDGenerator())
}

func use(g IDGenerator) {
	generatorLock.Lock()
	defer generatorLock.Unlock()

	if generatorInstantiated {
		log.Panic("cannot change id generator type after using it")
	}

	generator = g
	generatorInstantiated = true
}

// Generate returns an ID from the process-wide generator.
func Generate() string {
	generatorLock.Lock()
	if !generatorInstantiated {
		generator = NewSequentialIDGenerator()
		generatorInstantiated = true
	}
	g := generator
	generatorLock.Unlock()

	return g.Generate()
}

// NewSequentialIDGenerator returns a generator that counts from 1.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewParallelIDGenerator returns a generator backed by xid.
func NewParallelIDGenerator() IDGenerator {
	return parallelIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type parallelIDGenerator struct{}

func (parallelIDGenerator) Generate() string {
	return xid.New().String()
}
