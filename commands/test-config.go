package commands

import (
	"fmt"
	"os"

	"github.com/activecm/wafreport/config"
	"github.com/activecm/wafreport/resources"

	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Flags: []cli.Flag{
			configFlag,
		},
		Name:   "test-config",
		Usage:  "Check the configuration file for validity",
		Action: testConfiguration,
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(c *cli.Context) error {
	// First, print out the config as it was parsed
	conf, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("Failed to config: %s", err.Error()), -1)
	}

	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", string(staticConfig))
	fmt.Fprintf(os.Stdout, "Timezone: %s\nLanguage: %s\nFormat: %s\n\n",
		conf.R.Locale.Location, conf.R.Locale.Language, conf.R.Report.Format)

	// Then test initializing the logging resources
	resources.InitResources(c.String("config"))

	return nil
}
