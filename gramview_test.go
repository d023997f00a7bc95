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

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gramview/cnf"
	"gramview/phenomena"
	"gramview/source"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
	return dir
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "subject-order", slugify("Subject order"))
	assert.Equal(t, "shoda-v-rodě", slugify("Shoda v rodě!"))
	assert.Equal(t, "phenomenon", slugify("***"))
	assert.Equal(t, "a-b", slugify("--a  b--"))
}

func TestStaticLinksUnique(t *testing.T) {
	links := newStaticLinks(phenomena.Manifest{
		{Name: "Order"},
		{Name: "order"},
		{Name: "index"},
	})
	assert.Equal(t, "order.html", links.Phenomenon("Order"))
	assert.Equal(t, "order-2.html", links.Phenomenon("order"))
	assert.Equal(t, "index-2.html", links.Phenomenon("index"))
	assert.Equal(t, "", links.Export("Order"))
}

func TestGenerateSite(t *testing.T) {
	dataDir := writeDataDir(t, map[string]string{
		"phenomena.json": `{
			"Subject order": {"file": "res/order.json", "text": "Order of subjects"},
			"Agreement": {"file": "res/agr.json", "text": "Agreement"}
		}`,
		"res/order.json": `{"T1": {"filtered_deps_len": 200, "n_yes": 150, "rules": []}}`,
		"res/agr.json":   `{}`,
	})
	fetcher, err := source.NewFetcher(&source.Conf{Dir: dataDir}, nil, nil)
	require.NoError(t, err)
	outDir := filepath.Join(t.TempDir(), "site")

	err = generateSite(context.Background(), fetcher, "Rules", "", outDir)
	require.NoError(t, err)

	for _, name := range []string{"index.html", "about.html", "subject-order.html", "agreement.html"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="subject-order.html"`)
	assert.Contains(t, string(index), `href="agreement.html"`)

	page, err := os.ReadFile(filepath.Join(outDir, "subject-order.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<td>150 (75.00%)</td>")
	assert.NotContains(t, string(page), "export-links")
}

func TestGenerateSiteReportsFailures(t *testing.T) {
	dataDir := writeDataDir(t, map[string]string{
		"phenomena.json": `{"Broken": {"file": "missing.json", "text": "Broken"}}`,
	})
	fetcher, err := source.NewFetcher(&source.Conf{Dir: dataDir}, nil, nil)
	require.NoError(t, err)
	outDir := t.TempDir()

	err = generateSite(context.Background(), fetcher, "Rules", "", outDir)
	assert.Error(t, err)
	page, err := os.ReadFile(filepath.Join(outDir, "broken.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `id="error-alert"`)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conf := &cnf.Conf{AuthHeaderName: "X-Api-Key", AuthTokens: []string{"secret"}}
	engine := gin.New()
	engine.DELETE("/tools/cache", AuthRequired(conf), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tools/cache", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/tools/cache", nil)
	req.Header.Set("X-Api-Key", "secret")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conf := &cnf.Conf{CorsAllowedOrigins: []string{"https://example.org"}}
	engine := gin.New()
	engine.Use(CORSMiddleware(conf))
	engine.GET("/api/phenomena", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/phenomena", nil)
	req.Header.Set("Origin", "https://example.org")
	engine.ServeHTTP(w, req)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/phenomena", nil)
	req.Header.Set("Origin", "https://other.org")
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(additionalLogEvents())
	engine.GET("/", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc")
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(requestIDHeader))
}

func TestCleanVersionInfo(t *testing.T) {
	assert.Equal(t, "1.2.0", cleanVersionInfo("'v1.2.0'"))
	assert.True(t, strings.HasPrefix(cleanVersionInfo("v0.1"), "0"))
}
