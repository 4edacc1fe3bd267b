// Bindx evaluates binding expressions against a YAML or JSON binding
// context. It can evaluate an expression once, follow changes of the context
// file, or run an interactive session with history.
package main

import (
	"os"

	"github.com/aurelia/aurelia-sub054/pkg/buildinfo"
	"github.com/aurelia/aurelia-sub054/pkg/prog"
	"github.com/aurelia/aurelia-sub054/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &shell.Program{})))
}
