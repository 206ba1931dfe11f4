package resources

import (
	"fmt"
	"os"

	"github.com/activecm/wafreport/config"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config *config.Config
		Log    *log.Logger
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) *Resources {
	conf, err := config.LoadConfig(userConfig)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to config: %s\n", err.Error())
		os.Exit(-1)
	}

	// Fire up the logging system
	log := initLogger(&conf.S.Log)

	if conf.S.Log.LogToFile {
		if err := addFileLogger(log, conf.S.Log.LogPath); err != nil {
			fmt.Fprintf(os.Stdout, "Failed to start file logging: %s\n", err.Error())
		}
	}

	log.WithField("config", conf.S.Path).Debug("configuration loaded")

	//bundle up the system resources
	r := &Resources{
		Config: conf,
		Log:    log,
	}
	return r
}
