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
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"unicode"

	"gramview/cnf"
	"gramview/handlers"
	"gramview/monitoring"
	"gramview/phenomena"
	"gramview/render"
	"gramview/source"

	"github.com/rs/zerolog/log"
)

const (
	staticIndexFile = "index.html"
	staticAboutFile = "about.html"
)

// staticLinks maps phenomena to files of a static site.
// All the files are stored in a single directory.
type staticLinks struct {
	files map[string]string
}

func (sl *staticLinks) Home() string {
	return staticIndexFile
}

func (sl *staticLinks) About() string {
	return staticAboutFile
}

func (sl *staticLinks) Phenomenon(name string) string {
	return sl.files[name]
}

func (sl *staticLinks) Export(name string) string {
	return ""
}

func slugify(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false

		} else if !dash && sb.Len() > 0 {
			sb.WriteRune('-')
			dash = true
		}
	}
	ans := strings.TrimRight(sb.String(), "-")
	if ans == "" {
		return "phenomenon"
	}
	return ans
}

func newStaticLinks(manifest phenomena.Manifest) *staticLinks {
	ans := &staticLinks{files: make(map[string]string)}
	used := map[string]bool{
		strings.TrimSuffix(staticIndexFile, ".html"): true,
		strings.TrimSuffix(staticAboutFile, ".html"): true,
	}
	for _, entry := range manifest {
		base := slugify(entry.Name)
		slug := base
		for i := 2; used[slug]; i++ {
			slug = fmt.Sprintf("%s-%d", base, i)
		}
		used[slug] = true
		ans.files[entry.Name] = slug + ".html"
	}
	return ans
}

func writePageFile(path string, page *render.PageData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	defer f.Close()
	if err := render.RenderPage(f, page); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// generateSite writes a static version of the viewer to `outDir`.
// Pages of phenomena which cannot be loaded are still written
// (with an alert), the returned error then lists the failures.
func generateSite(
	ctx context.Context,
	loader handlers.Loader,
	siteTitle string,
	aboutFile string,
	outDir string,
) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	manifest, err := loader.LoadManifest(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate site: %w", err)
	}
	about, err := handlers.LoadAbout(aboutFile)
	if err != nil {
		return fmt.Errorf("failed to generate site: %w", err)
	}
	links := newStaticLinks(manifest)
	pages := handlers.NewPageBuilder(loader, links, siteTitle, about)

	home, err := pages.Build(ctx, render.PanelHome, "")
	if err != nil {
		return fmt.Errorf("failed to generate site: %w", err)
	}
	if err := writePageFile(filepath.Join(outDir, staticIndexFile), home); err != nil {
		return err
	}
	aboutPage, err := pages.Build(ctx, render.PanelAbout, "")
	if err != nil {
		return fmt.Errorf("failed to generate site: %w", err)
	}
	if err := writePageFile(filepath.Join(outDir, staticAboutFile), aboutPage); err != nil {
		return err
	}

	var failures []error
	for _, entry := range manifest {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := pages.Build(ctx, render.PanelResults, entry.Name)
		if err != nil {
			failures = append(failures, err)
		}
		target := filepath.Join(outDir, links.Phenomenon(entry.Name))
		if err := writePageFile(target, page); err != nil {
			return err
		}
		log.Info().
			Str("phenomenon", entry.Name).
			Str("file", target).
			Msg("written phenomenon page")
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d phenomena failed to load: %w", len(failures), errors.Join(failures...))
	}
	return nil
}

func renderSite(conf *cnf.Conf, outDir string) error {
	if outDir == "" {
		return fmt.Errorf("output directory not specified")
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetchLogger := monitoring.NewFetchLogger(nil)
	fetcher, err := source.NewFetcher(conf.Data, nil, fetchLogger)
	if err != nil {
		return err
	}
	err = generateSite(ctx, fetcher, conf.SiteTitle, conf.AboutFile, outDir)
	load := fetchLogger.TotalLoad()
	log.Info().
		Int("numFetches", load.NumFetches).
		Int("numErrors", load.NumErrors).
		Float64("avgFetchSecs", load.AvgFetchSecs()).
		Str("outDir", outDir).
		Msg("static site rendered")
	return err
}
