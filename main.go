package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "campaign-hub",
		Usage:  "REST API for charity campaigns and their users",
		Action: serve,
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "application failed:", err)
		os.Exit(1)
	}
}
