package resources

import (
	"testing"

	"github.com/activecm/wafreport/config"
)

//InitTestResources creates a default testing resource bundle
//backed by the hard coded testing config
func InitTestResources(t *testing.T) *Resources {
	conf, err := config.LoadTestingConfig()
	if err != nil {
		t.Fatal(err)
	}

	return &Resources{
		Config: conf,
		Log:    initLogger(&conf.S.Log),
	}
}
