package main

import (
	"github.com/oxbowhq/oxbow-cli/cmd"
	"github.com/oxbowhq/oxbow-cli/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
