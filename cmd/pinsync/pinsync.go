package main

import (
	"github.com/pinsync/pinsync/pkg/cli"
	"github.com/pinsync/pinsync/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Fatalf("%s", err)
	}
}
