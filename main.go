package main

import (
	"os"

	"github.com/firefly-engineering/vlsmctl/cmd"
	"github.com/firefly-engineering/vlsmctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
