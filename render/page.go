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

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"gramview/phenomena"
)

type Panel string

const (
	PanelHome    Panel = "home"
	PanelAbout   Panel = "about"
	PanelResults Panel = "results"
)

var pageTemplate = template.Must(template.New("page").Parse(tmplPage))

// MenuItem is a navigation entry of a phenomenon
type MenuItem struct {
	Name   string
	Icon   string
	Href   string
	Active bool
}

// NewMenu creates navigation entries for all the manifest items
// in the manifest order. The `href` function produces a link
// to the results of an entry.
func NewMenu(manifest phenomena.Manifest, href func(phenomena.Entry) string, active string) []MenuItem {
	ans := make([]MenuItem, len(manifest))
	for i, entry := range manifest {
		ans[i] = MenuItem{
			Name:   entry.Name,
			Icon:   entry.Icon(),
			Href:   href(entry),
			Active: entry.Name == active,
		}
	}
	return ans
}

// PageData contains everything needed to render the page.
type PageData struct {
	Title      string
	HomeHref   string
	AboutHref  string
	ExportHref string
	Menu       []MenuItem
	Panel      Panel
	About      template.HTML
	Results    *ResultsView

	// Alert is an error message shown to the user
	Alert string
}

func (pd *PageData) SummaryColumns() []string {
	return SummaryColumns
}

func (pd *PageData) DetailColspan() int {
	return SummaryColumnsCount
}

// RenderPage writes the complete HTML page. The page is rendered
// to a buffer first so a template error never produces a partial page.
func RenderPage(w io.Writer, data *PageData) error {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}
