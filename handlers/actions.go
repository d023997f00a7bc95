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
	"bytes"
	"context"
	"mime"
	"net/http"

	"gramview/export"
	"gramview/merror"
	"gramview/render"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	contentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CacheFlusher removes all the cached payloads
type CacheFlusher interface {
	Flush(ctx context.Context) (int, error)
}

type manifestItem struct {
	Name string `json:"name"`
	File string `json:"file"`
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type flushResponse struct {
	NumRemoved int `json:"numRemoved"`
}

type Actions struct {
	pages *PageBuilder
	cache CacheFlusher
}

func (a *Actions) writePage(ctx *gin.Context, page *render.PageData, err error) {
	var buf bytes.Buffer
	if err2 := render.RenderPage(&buf, page); err2 != nil {
		log.Error().Err(err2).Msg("failed to render page")
		uniresp.RespondWithErrorJSON(ctx, err2, http.StatusInternalServerError)
		return
	}
	ctx.Data(merror.HTTPStatus(err), contentTypeHTML, buf.Bytes())
}

func (a *Actions) Home(ctx *gin.Context) {
	page, err := a.pages.Build(ctx.Request.Context(), render.PanelHome, "")
	a.writePage(ctx, page, err)
}

func (a *Actions) About(ctx *gin.Context) {
	page, err := a.pages.Build(ctx.Request.Context(), render.PanelAbout, "")
	a.writePage(ctx, page, err)
}

func (a *Actions) Phenomenon(ctx *gin.Context) {
	name := ctx.Param("name")
	logging.AddLogEvent(ctx, "phenomenon", name)
	page, err := a.pages.Build(ctx.Request.Context(), render.PanelResults, name)
	a.writePage(ctx, page, err)
}

// Phenomena godoc
// @Summary      List of phenomena in the manifest order
// @Produce      json
// @Success      200 {array} manifestItem
// @Failure      502 {object} uniresp.ActionError
// @Router       /api/phenomena [get]
func (a *Actions) Phenomena(ctx *gin.Context) {
	manifest, err := a.pages.Manifest(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load phenomena manifest")
		uniresp.RespondWithErrorJSON(ctx, err, merror.HTTPStatus(err))
		return
	}
	ans := make([]manifestItem, len(manifest))
	for i, entry := range manifest {
		ans[i] = manifestItem{
			Name: entry.Name,
			File: entry.File,
			Text: entry.Text,
			Icon: entry.Icon(),
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) loadView(ctx *gin.Context) (*render.ResultsView, bool) {
	name := ctx.Param("name")
	logging.AddLogEvent(ctx, "phenomenon", name)
	view, err := a.pages.ResultsView(ctx.Request.Context(), name)
	if err != nil {
		log.Error().Err(err).Str("phenomenon", name).Msg("failed to load results")
		uniresp.RespondWithErrorJSON(ctx, err, merror.HTTPStatus(err))
		return nil, false
	}
	return view, true
}

// PhenomenonResults godoc
// @Summary      Rendered results of a phenomenon
// @Produce      json
// @Param        name path string true "phenomenon name (a manifest key)"
// @Success      200 {object} render.ResultsView
// @Failure      404 {object} uniresp.ActionError
// @Failure      502 {object} uniresp.ActionError
// @Router       /api/phenomena/{name} [get]
func (a *Actions) PhenomenonResults(ctx *gin.Context) {
	view, ok := a.loadView(ctx)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, view)
}

func attachment(ctx *gin.Context, filename string) {
	ctx.Header(
		"Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
	)
}

// ExportXLSX godoc
// @Summary      Results of a phenomenon as an XLSX workbook
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        name path string true "phenomenon name (a manifest key)"
// @Router       /api/phenomena/{name}/xlsx [get]
func (a *Actions) ExportXLSX(ctx *gin.Context) {
	view, ok := a.loadView(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, view); err != nil {
		log.Error().Err(err).Str("phenomenon", view.Phenomenon).Msg("failed to export results")
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	attachment(ctx, view.Phenomenon+".xlsx")
	ctx.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ExportMarkdown godoc
// @Summary      Results of a phenomenon as a Markdown document
// @Produce      text/markdown
// @Param        name path string true "phenomenon name (a manifest key)"
// @Router       /api/phenomena/{name}/markdown [get]
func (a *Actions) ExportMarkdown(ctx *gin.Context) {
	view, ok := a.loadView(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteMarkdown(&buf, view); err != nil {
		log.Error().Err(err).Str("phenomenon", view.Phenomenon).Msg("failed to export results")
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	attachment(ctx, view.Phenomenon+".md")
	ctx.Data(http.StatusOK, contentTypeMarkdown, buf.Bytes())
}

// FlushCache godoc
// @Summary      Remove all the cached data files
// @Produce      json
// @Success      200 {object} flushResponse
// @Router       /tools/cache [delete]
func (a *Actions) FlushCache(ctx *gin.Context) {
	if a.cache == nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			merror.NotFoundError{Msg: "payload cache is not configured"},
			http.StatusNotFound,
		)
		return
	}
	n, err := a.cache.Flush(ctx.Request.Context())
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, flushResponse{NumRemoved: n})
}

// NewActions creates page and API actions. The `cache` argument
// can be nil in which case flushing responds with 404.
func NewActions(pages *PageBuilder, cache CacheFlusher) *Actions {
	return &Actions{
		pages: pages,
		cache: cache,
	}
}
