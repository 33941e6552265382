package main

import (
	"context"
	"fmt"
	"os"

	"github.com/eggrusher04/HealthyAuraProject/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorText(err))
		os.Exit(1)
	}
}
