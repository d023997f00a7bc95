// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gramview/monitoring"
	"gramview/rdb"
	"gramview/source"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltServerReadTimeoutSecs  = 10
	dfltListenPort             = 8080
	dfltTimeZone               = "Europe/Prague"
	dfltSiteTitle              = "Grammatical rules in treebanks"
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string             `json:"listenAddress"`
	PublicURL              string             `json:"publicUrl"`
	ListenPort             int                `json:"listenPort"`
	ServerReadTimeoutSecs  int                `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string           `json:"corsAllowedOrigins"`
	Data                   *source.Conf       `json:"data"`
	Redis                  *rdb.Conf          `json:"redis"`
	Monitoring             *monitoring.Conf   `json:"monitoring"`
	LogFile                string             `json:"logFile"`
	LogLevel               logging.LogLevel   `json:"logLevel"`
	TimeZone               string             `json:"timeZone"`
	AuthHeaderName         string             `json:"authHeaderName"`
	AuthTokens             []string           `json:"authTokens"`
	SiteTitle              string             `json:"siteTitle"`

	// AboutFile is an optional Markdown file shown in the "about" panel
	AboutFile string `json:"aboutFile"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call ValidateAndDefaults()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// resolvePath makes a relative path relative to the directory
// of the config file.
func (conf *Conf) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || conf.srcPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(conf.GetSourcePath()), p)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

// Validate checks the configuration and sets default values
// where possible. All the applied defaults are logged.
func Validate(conf *Conf) error {
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.SiteTitle == "" {
		conf.SiteTitle = dfltSiteTitle
	}
	if conf.Data != nil && conf.Data.Dir != "" {
		conf.Data.Dir = conf.resolvePath(conf.Data.Dir)
	}
	if err := conf.Data.ValidateAndDefaults("data"); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults("redis"); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if conf.AboutFile != "" {
		conf.AboutFile = conf.resolvePath(conf.AboutFile)
		isFile, err := fs.IsFile(conf.AboutFile)
		if err != nil || !isFile {
			return fmt.Errorf("invalid configuration: aboutFile `%s` not found", conf.AboutFile)
		}
	}
	if len(conf.AuthTokens) > 0 && conf.AuthHeaderName == "" {
		return fmt.Errorf("invalid configuration: authTokens set but authHeaderName is empty")
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

// ValidateAndDefaults is like Validate but it terminates
// the application in case of an invalid configuration.
func ValidateAndDefaults(conf *Conf) {
	if err := Validate(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
