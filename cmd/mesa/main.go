package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lmoreno/mesa/internal/cli"
)

func main() {
	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "classic", "ui theme: classic or mono")
	noColor := flag.Bool("no-color", false, "disable all styling (same as -theme mono)")
	flag.Parse()

	if *noColor {
		*theme = "mono"
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Theme: *theme,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
