package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/activecm/wafreport/resources"
	"github.com/activecm/wafreport/util"
	"github.com/blang/semver"
	"github.com/google/go-github/github"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

//Strings used for informing the user of a new version.
var informFmtStr = "\nTheres a new %s version of wafreport %s available at:\nhttps://github.com/activecm/wafreport/releases\n"
var versions = []string{"Major", "Minor", "Patch"}

// checkStatePath remembers when the last update check ran
var checkStatePath = "~/.wafreport/update-check.yaml"

// remoteVersion is swapped out in tests
var remoteVersion = getRemoteVersion

type checkState struct {
	LastCheck     time.Time `yaml:"LastCheck"`
	NewestVersion string    `yaml:"NewestVersion"`
}

// GetVersionPrinter prints the version and the result of the update check
func GetVersionPrinter() func(*cli.Context) {
	return func(c *cli.Context) {
		fmt.Printf("%s version %s\n", c.App.Name, c.App.Version)
		fmt.Print(updateCheck(c.GlobalString("config")))
	}
}

// updateCheck compares the running version against the newest release tag and
// returns a notice when a newer one exists. The tags are fetched at most once
// per UpdateCheckFrequency days.
func updateCheck(configFile string) string {
	res := resources.InitResources(configFile)
	return checkForUpdate(res, time.Now())
}

func checkForUpdate(res *resources.Resources, now time.Time) string {
	delta := res.Config.S.UserConfig.UpdateCheckFrequency
	if delta <= 0 {
		return ""
	}

	statePath := util.ExpandHome(checkStatePath)
	state := readCheckState(statePath)
	newVersion, _ := semver.ParseTolerant(state.NewestVersion)

	days := now.Sub(state.LastCheck).Hours() / 24
	if days > float64(delta) {
		var err error
		newVersion, err = remoteVersion()
		if err != nil {
			res.Log.WithField("error", err.Error()).Debug("could not fetch the newest version")
			return ""
		}

		res.Log.WithFields(log.Fields{
			"LastUpdateCheck": now,
			"NewestVersion":   fmt.Sprint(newVersion),
		}).Info("Checking for new version")

		state = checkState{LastCheck: now, NewestVersion: newVersion.String()}
		if err := writeCheckState(statePath, state); err != nil {
			res.Log.WithField("file", statePath).Debug(err)
		}
	}

	configVersion := res.Config.R.Version
	if newVersion.GT(configVersion) {
		return informUser(configVersion, newVersion)
	}
	return ""
}

func readCheckState(path string) checkState {
	var state checkState
	data, err := os.ReadFile(path)
	if err != nil {
		return state
	}
	_ = yaml.Unmarshal(data, &state)
	return state
}

func writeCheckState(path string, state checkState) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Returns the first index where v1 is greater than v2
func versionDiffIndex(v1 semver.Version, v2 semver.Version) int {
	if v1.Major > v2.Major {
		return 0
	}
	if v1.Minor > v2.Minor {
		return 1
	}
	return 2
}

func getRemoteVersion() (semver.Version, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := github.NewClient(nil)
	refs, _, err := client.Git.GetRefs(ctx, "activecm", "wafreport", "refs/tags/v")
	if err != nil {
		return semver.Version{}, err
	}
	if len(refs) == 0 {
		return semver.Version{}, fmt.Errorf("no release tags found")
	}
	s := strings.TrimPrefix(refs[len(refs)-1].GetRef(), "refs/tags/")
	return semver.ParseTolerant(s)
}

// Assembles a notice for the user informing them of an upgrade.
// The return value is printed regardless so, "" is returned on errror.
func informUser(local semver.Version, remote semver.Version) string {
	return fmt.Sprintf(informFmtStr,
		versions[versionDiffIndex(remote, local)],
		fmt.Sprint(remote))
}
