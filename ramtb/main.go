// Command ramtb drives the dual-port RAM model through reset, a port A read
// sweep and a port B write/read sweep, printing every value read.
package main

import "github.com/sarchlab/dpram/ramtb/cmd"

func main() {
	cmd.Execute()
}
