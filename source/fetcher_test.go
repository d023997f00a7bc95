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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gramview/merror"
	"gramview/phenomena"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `{
	"Subject order": {"file": "results/order.json", "text": "Order of subjects"},
	"Remote": {"file": "http://example.com/remote.json", "text": "Remote results"}
}`

const testResults = `{"T1": {"filtered_deps_len": 200, "n_yes": 150, "rules": []}}`

type memRecorder struct {
	mu      sync.Mutex
	records []FetchLog
}

func (m *memRecorder) Log(rec FetchLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

type memCache struct {
	data map[string][]byte
}

func (mc *memCache) Get(ctx context.Context, url string) ([]byte, bool) {
	v, ok := mc.data[url]
	return v, ok
}

func (mc *memCache) Set(ctx context.Context, url string, data []byte) {
	mc.data[url] = data
}

type upstream struct {
	mu       sync.Mutex
	requests []string
	srv      *httptest.Server
}

func (u *upstream) count(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	var ans int
	for _, v := range u.requests {
		if v == path {
			ans++
		}
	}
	return ans
}

func newUpstream(t *testing.T, files map[string]string) *upstream {
	ans := &upstream{}
	ans.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ans.mu.Lock()
		ans.requests = append(ans.requests, req.URL.Path)
		ans.mu.Unlock()
		body, ok := files[req.URL.Path]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(ans.srv.Close)
	return ans
}

func TestFetchRemoteManifestAndResults(t *testing.T) {
	up := newUpstream(t, map[string]string{
		"/data/phenomena.json":      testManifest,
		"/data/results/order.json": testResults,
	})
	rec := &memRecorder{}
	f, err := NewFetcher(&Conf{BaseURL: up.srv.URL + "/data"}, nil, rec)
	require.NoError(t, err)

	manifest, err := f.LoadManifest(context.Background())
	require.NoError(t, err)
	require.Len(t, manifest, 2)
	assert.Equal(t, "Subject order", manifest[0].Name)
	assert.Equal(t, 1, up.count("/data/phenomena.json"))

	res, err := f.LoadResults(context.Background(), manifest[0])
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "T1", res[0].TreebankID)
	assert.Equal(t, 1, up.count("/data/results/order.json"))

	require.Len(t, rec.records, 2)
	assert.Equal(t, up.srv.URL+"/data/phenomena.json", rec.records[0].URL)
	assert.NoError(t, rec.records[1].Err)
	assert.Equal(t, len(testResults), rec.records[1].Size)
}

func TestFetchEachCallRequestsAgain(t *testing.T) {
	up := newUpstream(t, map[string]string{"/phenomena.json": testManifest})
	f, err := NewFetcher(&Conf{BaseURL: up.srv.URL}, nil, nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.LoadManifest(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, up.count("/phenomena.json"))
}

func TestFetchUsesCache(t *testing.T) {
	up := newUpstream(t, map[string]string{"/phenomena.json": testManifest})
	cache := &memCache{data: make(map[string][]byte)}
	rec := &memRecorder{}
	f, err := NewFetcher(&Conf{BaseURL: up.srv.URL}, cache, rec)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := f.LoadManifest(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, up.count("/phenomena.json"))
	require.Len(t, rec.records, 2)
	assert.False(t, rec.records[0].Cached)
	assert.True(t, rec.records[1].Cached)
}

func TestFetchUpstreamStatus(t *testing.T) {
	up := newUpstream(t, map[string]string{})
	f, err := NewFetcher(&Conf{BaseURL: up.srv.URL}, nil, nil)
	require.NoError(t, err)
	_, err = f.LoadManifest(context.Background())
	require.Error(t, err)
	var upErr merror.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusNotFound, upErr.Status)
	assert.Equal(t, http.StatusBadGateway, merror.HTTPStatus(err))
}

func TestFetchInvalidPayload(t *testing.T) {
	up := newUpstream(t, map[string]string{
		"/phenomena.json": `{"broken": `,
		"/list.json":      `[1, 2, 3]`,
	})
	f, err := NewFetcher(&Conf{BaseURL: up.srv.URL}, nil, nil)
	require.NoError(t, err)
	_, err = f.LoadManifest(context.Background())
	assert.ErrorIs(t, err, phenomena.ErrInvalidJSON)
	assert.Equal(t, http.StatusBadGateway, merror.HTTPStatus(err))

	_, err = f.LoadResults(context.Background(), phenomena.Entry{Name: "list", File: "list.json"})
	assert.ErrorIs(t, err, phenomena.ErrNotAnObject)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-req.Context().Done():
		}
	}))
	defer srv.Close()
	f, err := NewFetcher(&Conf{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, "phenomena.json")
	var tErr merror.TimeoutError
	assert.True(t, errors.As(err, &tErr))
}

func TestFetchLocalDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "results"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "phenomena.json"), []byte(testManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "results", "order.json"), []byte(testResults), 0o644))

	f, err := NewFetcher(&Conf{Dir: dir}, nil, nil)
	require.NoError(t, err)
	manifest, err := f.LoadManifest(context.Background())
	require.NoError(t, err)
	res, err := f.LoadResults(context.Background(), manifest[0])
	require.NoError(t, err)
	assert.Equal(t, phenomena.Count(150), res[0].NYes)

	_, err = f.LoadResults(context.Background(), phenomena.Entry{Name: "missing", File: "missing.json"})
	var upErr merror.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusNotFound, upErr.Status)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFetcher(&Conf{Dir: dir}, nil, nil)
	require.NoError(t, err)

	u, err := f.Resolve("results/x.json")
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "results", "x.json")), u.Path)

	_, err = f.Resolve("../outside.json")
	assert.Error(t, err)

	u, err = f.Resolve("https://example.com/x.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x.json", u.String())

	_, err = f.Resolve("ftp://example.com/x.json")
	assert.Error(t, err)

	remote, err := NewFetcher(&Conf{BaseURL: "http://example.com/data"}, nil, nil)
	require.NoError(t, err)
	u, err = remote.Resolve("./order.json")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/data/order.json", u.String())
	_, err = remote.Resolve("file:///etc/passwd")
	assert.Error(t, err)
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{BaseURL: "http://localhost/data"}
	require.NoError(t, conf.ValidateAndDefaults("data"))
	assert.Equal(t, DfltManifestFile, conf.Manifest)
	assert.Equal(t, DfltFetchTimeoutSecs, conf.FetchTimeoutSecs)

	assert.Error(t, (&Conf{}).ValidateAndDefaults("data"))
	assert.Error(t, (&Conf{BaseURL: "ftp://x"}).ValidateAndDefaults("data"))
	assert.Error(t, (&Conf{BaseURL: "http://x", Dir: "/tmp"}).ValidateAndDefaults("data"))
	assert.Error(t, (&Conf{Dir: filepath.Join(t.TempDir(), "nonexisting")}).ValidateAndDefaults("data"))
	var nilConf *Conf
	assert.Error(t, nilConf.ValidateAndDefaults("data"))
}
