// Command dcrkey generates, inspects and uses Decred keys from the command
// line: wallet import format keys, ECDSA signatures, script numbers,
// transaction outputs and unit conversions.
//
// Usage:
//
//	dcrkey [--config file] [--network name] [--loglevel level] [--strict] <command> [args]
//
// Configuration is read from ~/.dcrkey/config unless --config names another
// file. Flags override the file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
