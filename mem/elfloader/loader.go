// Package elfloader places the allocatable sections of an ELF executable into
// a simulated memory.
package elfloader

import (
	"debug/elf"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/sarchlab/dpram/mem/storage"
)

// An Image is the result of loading an ELF file.
type Image struct {
	Entry    uint64
	Sections []Section
}

// Find returns the section with the given name.
func (img Image) Find(name string) (Section, bool) {
	for _, s := range img.Sections {
		if s.Name == name {
			return s, true
		}
	}

	return Section{}, false
}

// LoadFile opens path and loads it into s.
func LoadFile(path string, s *storage.Storage) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("opening elf %s: %w", path, err)
	}
	defer f.Close()

	img, err := Load(f, s)
	if err != nil {
		return Image{}, fmt.Errorf("loading elf %s: %w", path, err)
	}

	return img, nil
}

// Load reads an ELF file and copies its allocatable sections into s.
// PROGBITS sections carry their file contents. Other allocatable sections,
// such as .bss, are filled with zeros. Every section, loaded or not, is listed
// in the returned Image in file order.
func Load(r io.ReaderAt, s *storage.Storage) (Image, error) {
	file, err := elf.NewFile(r)
	if err != nil {
		return Image{}, fmt.Errorf("parsing elf: %w", err)
	}
	defer file.Close()

	img := Image{Entry: file.Entry}

	for _, sec := range file.Sections {
		if sec.Type == elf.SHT_NULL {
			continue
		}

		section := Section{
			Name:  sec.Name,
			Flags: DecodeFlags(sec.Flags),
			Addr:  sec.Addr,
			Size:  sec.Size,
		}
		img.Sections = append(img.Sections, section)

		if !section.Flags.Alloc {
			continue
		}

		if err := loadSection(sec, s); err != nil {
			return Image{}, err
		}

		glog.V(2).Infof("loaded %s at 0x%x, %d bytes", sec.Name, sec.Addr, sec.Size)
	}

	return img, nil
}

func loadSection(sec *elf.Section, s *storage.Storage) error {
	if err := s.CheckRange(sec.Addr, sec.Size); err != nil {
		return fmt.Errorf("placing section %s: %w", sec.Name, err)
	}

	var data []byte

	if sec.Type == elf.SHT_PROGBITS {
		var err error

		data, err = sec.Data()
		if err != nil {
			return fmt.Errorf("reading section %s: %w", sec.Name, err)
		}
	} else {
		data = make([]byte, sec.Size)
	}

	if err := s.Write(sec.Addr, data); err != nil {
		return fmt.Errorf("placing section %s: %w", sec.Name, err)
	}

	return nil
}
