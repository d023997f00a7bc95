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
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"gramview/merror"
	"gramview/phenomena"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/httpclient"
	"github.com/rs/zerolog/log"
)

type noCache struct{}

func (nc noCache) Get(ctx context.Context, url string) ([]byte, bool) {
	return nil, false
}

func (nc noCache) Set(ctx context.Context, url string, data []byte) {}

// Fetcher loads the manifest and results files. Each call performs
// exactly one fetch (unless a cache is configured and contains the file);
// there are no retries.
type Fetcher struct {
	base     *url.URL
	manifest string
	client   *http.Client
	cache    Cache
	recorder Recorder
}

// Resolve resolves a file reference (as found in the manifest)
// against the configured data location.
func (f *Fetcher) Resolve(ref string) (*url.URL, error) {
	refURL, err := url.Parse(ref)
	if err != nil {
		return nil, merror.UpstreamError{URL: ref, Msg: fmt.Sprintf("invalid file reference: %s", err)}
	}
	target := f.base.ResolveReference(refURL)
	switch target.Scheme {
	case "http", "https":
		return target, nil
	case "file":
		if f.base.Scheme != "file" {
			return nil, merror.UpstreamError{
				URL: target.String(), Msg: "local files cannot be referenced by a remote manifest"}
		}
		target.Path = path.Clean(target.Path)
		if !strings.HasPrefix(target.Path, f.base.Path) {
			return nil, merror.UpstreamError{
				URL: target.String(), Msg: "file reference points outside of the data directory"}
		}
		return target, nil
	}
	return nil, merror.UpstreamError{
		URL: target.String(), Msg: fmt.Sprintf("unsupported URL scheme `%s`", target.Scheme)}
}

func (f *Fetcher) fetchFile(target *url.URL) ([]byte, error) {
	isFile, err := fs.IsFile(target.Path)
	if err != nil || !isFile {
		return nil, merror.UpstreamError{URL: target.String(), Status: http.StatusNotFound, Msg: "file not found"}
	}
	data, err := os.ReadFile(target.Path)
	if err != nil {
		return nil, merror.UpstreamError{URL: target.String(), Msg: fmt.Sprintf("failed to read file: %s", err)}
	}
	return data, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, target *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, merror.InternalError{Msg: fmt.Sprintf("failed to create request: %s", err)}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return nil, merror.TimeoutError{Msg: fmt.Sprintf("timeout when fetching %s", target)}

	} else if err != nil {
		return nil, merror.UpstreamError{URL: target.String(), Msg: err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, merror.UpstreamError{
			URL:    target.String(),
			Status: resp.StatusCode,
			Msg:    fmt.Sprintf("unexpected response: %s", resp.Status),
		}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, merror.UpstreamError{URL: target.String(), Msg: fmt.Sprintf("failed to read response: %s", err)}
	}
	return data, nil
}

// Fetch loads raw contents of a referenced file.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (ans []byte, err error) {
	rec := FetchLog{Begin: time.Now()}
	defer func() {
		rec.End = time.Now()
		rec.Size = len(ans)
		rec.Err = err
		f.recorder.Log(rec)
	}()
	target, err := f.Resolve(ref)
	if err != nil {
		rec.URL = ref
		return nil, err
	}
	rec.URL = target.String()
	if data, ok := f.cache.Get(ctx, rec.URL); ok {
		rec.Cached = true
		return data, nil
	}
	if target.Scheme == "file" {
		ans, err = f.fetchFile(target)

	} else {
		ans, err = f.fetchHTTP(ctx, target)
	}
	if err != nil {
		log.Error().Err(err).Str("url", rec.URL).Msg("failed to fetch data file")
		return nil, err
	}
	f.cache.Set(ctx, rec.URL, ans)
	log.Debug().Str("url", rec.URL).Int("size", len(ans)).Msg("fetched data file")
	return ans, nil
}

// LoadManifest fetches and decodes the phenomena manifest.
func (f *Fetcher) LoadManifest(ctx context.Context) (phenomena.Manifest, error) {
	data, err := f.Fetch(ctx, f.manifest)
	if err != nil {
		return nil, fmt.Errorf("could not load %s: %w", f.manifest, err)
	}
	ans, err := phenomena.DecodeManifest(data)
	if err != nil {
		return nil, fmt.Errorf(
			"could not load %s: %w", f.manifest, merror.UpstreamError{URL: f.manifest, Msg: err.Error(), Cause: err})
	}
	return ans, nil
}

// LoadResults fetches and decodes the results file of a phenomenon.
func (f *Fetcher) LoadResults(ctx context.Context, entry phenomena.Entry) (phenomena.Results, error) {
	data, err := f.Fetch(ctx, entry.File)
	if err != nil {
		return nil, fmt.Errorf("could not load results of `%s`: %w", entry.Name, err)
	}
	ans, err := phenomena.DecodeResults(data)
	if err != nil {
		return nil, fmt.Errorf(
			"could not load results of `%s`: %w", entry.Name, merror.UpstreamError{URL: entry.File, Msg: err.Error(), Cause: err})
	}
	return ans, nil
}

// NewFetcher creates a new Fetcher. Both cache and recorder may be nil.
func NewFetcher(conf *Conf, cache Cache, recorder Recorder) (*Fetcher, error) {
	base, err := conf.baseLocation()
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = noCache{}
	}
	if recorder == nil {
		recorder = &NullRecorder{}
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = httpclient.TransportMaxIdleConns
	transport.MaxConnsPerHost = httpclient.TransportMaxConnsPerHost
	transport.MaxIdleConnsPerHost = httpclient.TransportMaxIdleConnsPerHost
	transport.IdleConnTimeout = time.Duration(conf.IdleConnTimeoutSecs) * time.Second
	manifest := conf.Manifest
	if manifest == "" {
		manifest = DfltManifestFile
	}
	return &Fetcher{
		base:     base,
		manifest: manifest,
		client: &http.Client{
			Timeout:   time.Duration(conf.FetchTimeoutSecs) * time.Second,
			Transport: transport,
		},
		cache:    cache,
		recorder: recorder,
	}, nil
}
