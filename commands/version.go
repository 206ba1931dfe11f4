package commands

import (
	"fmt"

	"github.com/activecm/wafreport/config"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:   "version",
		Usage:  "Show wafreport version and check for updates",
		Flags:  []cli.Flag{configFlag},
		Action: showVersion,
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	fmt.Printf("%s version %s (%s)\n", c.App.Name, config.Version, config.ExactVersion)
	fmt.Print(updateCheck(c.String("config")))
	return nil
}
