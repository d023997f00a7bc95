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

package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/url"

	"gramview/merror"
	"gramview/phenomena"
	"gramview/render"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Loader provides the manifest and the results of phenomena.
type Loader interface {
	LoadManifest(ctx context.Context) (phenomena.Manifest, error)
	LoadResults(ctx context.Context, entry phenomena.Entry) (phenomena.Results, error)
}

// Links produces URLs used in the rendered page. The server
// and the static site generator use different schemes.
type Links interface {
	Home() string
	About() string
	Phenomenon(name string) string

	// Export returns a base URL of the export actions of a phenomenon
	// or an empty string if exports are not available.
	Export(name string) string
}

// ServerLinks produces URLs of the HTTP server. Names are path-escaped
// so the engine must match raw paths (see ConfigureEngine).
type ServerLinks struct {
	BasePath string
}

// ConfigureEngine makes the engine match escaped phenomenon names
// (e.g. `Subject%2Fverb`) as a single path segment.
func ConfigureEngine(engine *gin.Engine) {
	engine.UseRawPath = true
	engine.UnescapePathValues = true
}

func (sl ServerLinks) Home() string {
	return sl.BasePath + "/"
}

func (sl ServerLinks) About() string {
	return sl.BasePath + "/about"
}

func (sl ServerLinks) Phenomenon(name string) string {
	return sl.BasePath + "/phenomena/" + url.PathEscape(name)
}

func (sl ServerLinks) Export(name string) string {
	return sl.BasePath + "/api/phenomena/" + url.PathEscape(name)
}

// ----------------------------

// PageBuilder creates data for the HTML page. Each call loads
// the manifest (and the results if requested) again.
type PageBuilder struct {
	loader    Loader
	links     Links
	siteTitle string
	about     template.HTML
}

func (pb *PageBuilder) newPage(panel render.Panel) *render.PageData {
	return &render.PageData{
		Title:     pb.siteTitle,
		HomeHref:  pb.links.Home(),
		AboutHref: pb.links.About(),
		Panel:     panel,
		About:     pb.about,
		Menu:      []render.MenuItem{},
	}
}

// Build creates page data for a panel. For the results panel,
// the `phenomenon` argument selects the manifest entry to load.
// The returned page is always usable; in case of an error it
// contains an alert and the error is also returned so the caller
// can set a proper response status.
func (pb *PageBuilder) Build(
	ctx context.Context,
	panel render.Panel,
	phenomenon string,
) (*render.PageData, error) {
	page := pb.newPage(panel)
	manifest, err := pb.loader.LoadManifest(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load phenomena manifest")
		page.Alert = err.Error()
		return page, err
	}
	page.Menu = render.NewMenu(
		manifest,
		func(entry phenomena.Entry) string { return pb.links.Phenomenon(entry.Name) },
		phenomenon,
	)
	if panel != render.PanelResults {
		return page, nil
	}
	entry, ok := manifest.Get(phenomenon)
	if !ok {
		err := merror.NotFoundError{Msg: fmt.Sprintf("phenomenon `%s` not found", phenomenon)}
		log.Error().Err(err).Str("phenomenon", phenomenon).Msg("failed to load results")
		page.Alert = err.Error()
		page.Results = &render.ResultsView{Phenomenon: phenomenon, Rows: []render.SummaryRow{}}
		return page, err
	}
	results, err := pb.loader.LoadResults(ctx, entry)
	if err != nil {
		log.Error().Err(err).Str("phenomenon", phenomenon).Msg("failed to load results")
		page.Alert = err.Error()
		page.Results = render.NewResultsView(entry, nil)
		return page, err
	}
	page.Results = render.NewResultsView(entry, results)
	page.ExportHref = pb.links.Export(entry.Name)
	return page, nil
}

// ResultsView loads a phenomenon and renders its view without
// the rest of the page.
func (pb *PageBuilder) ResultsView(ctx context.Context, phenomenon string) (*render.ResultsView, error) {
	manifest, err := pb.loader.LoadManifest(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := manifest.Get(phenomenon)
	if !ok {
		return nil, merror.NotFoundError{Msg: fmt.Sprintf("phenomenon `%s` not found", phenomenon)}
	}
	results, err := pb.loader.LoadResults(ctx, entry)
	if err != nil {
		return nil, err
	}
	return render.NewResultsView(entry, results), nil
}

func (pb *PageBuilder) Manifest(ctx context.Context) (phenomena.Manifest, error) {
	return pb.loader.LoadManifest(ctx)
}

func NewPageBuilder(loader Loader, links Links, siteTitle string, about template.HTML) *PageBuilder {
	return &PageBuilder{
		loader:    loader,
		links:     links,
		siteTitle: siteTitle,
		about:     about,
	}
}
