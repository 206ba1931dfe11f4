package main

import (
	"fmt"
	"os"
	"runtime"
	_ "time/tzdata"

	"github.com/activecm/wafreport/commands"
	"github.com/activecm/wafreport/config"
	"github.com/urfave/cli"
)

// Entry point of wafreport
func main() {
	app := cli.NewApp()
	app.Name = "wafreport"
	app.Usage = "Turn web application firewall exports into security reports"
	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()
	cli.VersionPrinter = commands.GetVersionPrinter()

	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}
