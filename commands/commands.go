package commands

import (
	"github.com/urfave/cli"
)

var (
	allCommands []cli.Command

	// below are some prebuilt flags that get used often in various commands

	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "Print a report instead of csv",
	}

	delimFlag = cli.StringFlag{
		Name:  "delimiter, d",
		Usage: "Use a given `DELIM` to separate the printed columns",
		Value: ",",
	}

	limitFlag = cli.IntFlag{
		Name:  "limit, n",
		Usage: "Print at most `N` rows of every ranking, 0 uses the configured TopN",
		Value: 0,
	}

	metaFlag = cli.StringFlag{
		Name:  "meta, m",
		Usage: "Read the reporting window from `META_CSV`",
	}

	eventsFlag = cli.StringFlag{
		Name:  "events, e",
		Usage: "Read the security events from `EVENTS_CSV`",
	}

	rulesFlag = cli.StringFlag{
		Name:  "rules, r",
		Usage: "Read the protection rules from `RULES_CSV`",
	}

	protectorsFlag = cli.StringFlag{
		Name:  "protectors, p",
		Usage: "Read the protectors from `PROTECTORS_CSV`",
	}

	quietFlag = cli.BoolFlag{
		Name:  "quiet, q",
		Usage: "Do not draw progress bars while loading",
	}
)

// inputFlags locate the four files of a firewall export
var inputFlags = []cli.Flag{metaFlag, eventsFlag, rulesFlag, protectorsFlag}

// bootstrapCommands simply adds a given command to the allCommands array
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}
