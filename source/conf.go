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

package source

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	DfltManifestFile        = "phenomena.json"
	DfltFetchTimeoutSecs    = 30
	DfltIdleConnTimeoutSecs = 60
)

// Conf specifies where the manifest and the results files live.
// Exactly one of BaseURL and Dir must be set.
type Conf struct {

	// BaseURL is an URL of a "directory" containing the manifest.
	// Relative file references of the manifest are resolved against it.
	BaseURL string `json:"baseUrl"`

	// Dir is a local directory containing the manifest
	Dir string `json:"dir"`

	Manifest            string `json:"manifest"`
	FetchTimeoutSecs    int    `json:"fetchTimeoutSecs"`
	IdleConnTimeoutSecs int    `json:"idleConnTimeoutSecs"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if conf.BaseURL == "" && conf.Dir == "" {
		return fmt.Errorf("%s.baseUrl or %s.dir must be set", confContext, confContext)
	}
	if conf.BaseURL != "" && conf.Dir != "" {
		return fmt.Errorf("%s.baseUrl and %s.dir cannot be used at the same time", confContext, confContext)
	}
	if conf.BaseURL != "" {
		u, err := url.Parse(conf.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid %s.baseUrl: %w", confContext, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid %s.baseUrl: unsupported scheme `%s`", confContext, u.Scheme)
		}
	}
	if conf.Dir != "" {
		isDir, err := fs.IsDir(conf.Dir)
		if err != nil {
			return fmt.Errorf("failed to validate %s.dir: %w", confContext, err)
		}
		if !isDir {
			return fmt.Errorf("%s.dir `%s` is not a directory", confContext, conf.Dir)
		}
	}
	if conf.Manifest == "" {
		conf.Manifest = DfltManifestFile
		log.Warn().
			Str("value", DfltManifestFile).
			Msgf("`%s.manifest` not specified, using default", confContext)
	}
	if conf.FetchTimeoutSecs == 0 {
		conf.FetchTimeoutSecs = DfltFetchTimeoutSecs
		log.Warn().
			Int("value", DfltFetchTimeoutSecs).
			Msgf("`%s.fetchTimeoutSecs` not specified, using default", confContext)
	}
	if conf.IdleConnTimeoutSecs == 0 {
		conf.IdleConnTimeoutSecs = DfltIdleConnTimeoutSecs
	}
	return nil
}

// baseLocation returns an URL used to resolve relative file references.
// The returned path always ends with a slash.
func (conf *Conf) baseLocation() (*url.URL, error) {
	if conf.Dir != "" {
		absDir, err := filepath.Abs(conf.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to determine data directory: %w", err)
		}
		return &url.URL{Scheme: "file", Path: ensureSlash(filepath.ToSlash(absDir))}, nil
	}
	u, err := url.Parse(conf.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = ensureSlash(u.Path)
	return u, nil
}

func ensureSlash(p string) string {
	if !strings.HasSuffix(p, "/") {
		return p + "/"
	}
	return p
}
