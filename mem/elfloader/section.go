package elfloader

import "debug/elf"

// Flags is the decoded form of an ELF section's sh_flags.
type Flags struct {
	Write bool
	Alloc bool
	Exec  bool
}

// DecodeFlags extracts the write, alloc and exec bits.
func DecodeFlags(f elf.SectionFlag) Flags {
	return Flags{
		Write: f&elf.SHF_WRITE != 0,
		Alloc: f&elf.SHF_ALLOC != 0,
		Exec:  f&elf.SHF_EXECINSTR != 0,
	}
}

// A Section describes one section of a loaded ELF file.
type Section struct {
	Name  string
	Flags Flags
	Addr  uint64
	Size  uint64
}

// End returns the first address after the section.
func (s Section) End() uint64 {
	return s.Addr + s.Size
}
