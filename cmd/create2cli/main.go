package main

import (
	"github.com/robotalks/create2/pkg/cli/sh"
	"github.com/robotalks/create2/pkg/env"

	_ "github.com/robotalks/create2/pkg/cli/cmds/robot"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
