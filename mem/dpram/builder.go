package dpram

import (
	"log"

	"github.com/golang/glog"

	"github.com/sarchlab/dpram/mem/storage"
	"github.com/sarchlab/dpram/sim/naming"
)

// Builder can build dual-port RAMs.
type Builder struct {
	capacity uint64
	storage  *storage.Storage
	elfPath  string
}

// MakeBuilder returns a Builder with a 4 GB address space, enough to cover
// every 32-bit address.
func MakeBuilder() Builder {
	return Builder{
		capacity: 4 * storage.GB,
	}
}

// WithCapacity sets the capacity of a newly created storage.
func (b Builder) WithCapacity(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithStorage makes the RAM use an existing storage. The capacity option is
// ignored when a storage is given.
func (b Builder) WithStorage(s *storage.Storage) Builder {
	b.storage = s
	return b
}

// WithELF loads an ELF executable into the storage when the RAM is built.
func (b Builder) WithELF(path string) Builder {
	b.elfPath = path
	return b
}

// Build creates a new Comp. A failure to load the ELF file is fatal.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		NamedBase: naming.MakeNamedBase(name),
		storage:   b.storage,
	}

	if c.storage == nil {
		c.storage = storage.New(b.capacity)
	}

	if b.elfPath != "" {
		img, err := c.LoadELF(b.elfPath)
		if err != nil {
			log.Panic(err)
		}

		glog.V(1).Infof("%s: loaded %s, entry 0x%x", name, b.elfPath, img.Entry)
	}

	return c
}
