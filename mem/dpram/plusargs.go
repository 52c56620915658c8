package dpram

import (
	"strings"

	"github.com/golang/glog"
)

// CommandArgs consumes simulator command-line arguments. Arguments of the form
// +name=value are plusargs; everything else is ignored. Recognized plusargs:
//
//	+elf=<path>   load an ELF executable into the memory
func (c *Comp) CommandArgs(args []string) error {
	for _, arg := range args {
		name, value, ok := parsePlusarg(arg)
		if !ok {
			continue
		}

		switch name {
		case "elf":
			img, err := c.LoadELF(value)
			if err != nil {
				return err
			}

			glog.V(1).Infof("%s: loaded %s, entry 0x%x", c.Name(), value, img.Entry)
		default:
			glog.Warningf("%s: ignoring unknown plusarg %s", c.Name(), arg)
		}
	}

	return nil
}

func parsePlusarg(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "+") {
		return "", "", false
	}

	name, value, _ = strings.Cut(arg[1:], "=")
	if name == "" {
		return "", "", false
	}

	return name, value, true
}
