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
	"html/template"
	"strconv"

	"gramview/phenomena"
)

const (
	// ToggleLabel is the text of the last summary column
	ToggleLabel = "show/hide"

	// SummaryColumnsCount is the number of columns of the main table;
	// a detail row spans all of them.
	SummaryColumnsCount = 5
)

// SummaryColumns are the titles of the main table columns.
var SummaryColumns = []string{"#", "Treebank", "Dependencies", "Positive", ""}

// Column describes a column of a detail table.
type Column struct {
	Title  string
	Format func(idx int, rule phenomena.Rule) string
}

func fixed(digits int, getVal func(phenomena.Rule) float64) func(int, phenomena.Rule) string {
	return func(idx int, rule phenomena.Rule) string {
		return ToFixed(getVal(rule), digits)
	}
}

// DetailColumns specifies the columns of a treebank's detail table
// along with their formatting.
var DetailColumns = []Column{
	{
		Title: "#",
		Format: func(idx int, rule phenomena.Rule) string {
			return strconv.Itoa(idx + 1)
		},
	},
	{
		Title: "Pattern",
		Format: func(idx int, rule phenomena.Rule) string {
			return rule.Pattern
		},
	},
	{
		Title: "Occ.",
		Format: func(idx int, rule phenomena.Rule) string {
			return rule.NPatternOccurence.String()
		},
	},
	{
		Title: "Pos.",
		Format: func(idx int, rule phenomena.Rule) string {
			return CountWithPercent(rule.NPatternPositiveOccurence, rule.NPatternOccurence)
		},
	},
	{
		Title: "Neg.",
		Format: func(idx int, rule phenomena.Rule) string {
			return CountWithPercent(rule.NPatternNegativeOccurence(), rule.NPatternOccurence)
		},
	},
	{
		Title: "Decision",
		Format: func(idx int, rule phenomena.Rule) string {
			return rule.Decision
		},
	},
	{Title: "alpha", Format: fixed(5, func(r phenomena.Rule) float64 { return r.Alpha })},
	{Title: "weight", Format: fixed(5, func(r phenomena.Rule) float64 { return r.Value })},
	{Title: "coverage", Format: fixed(2, func(r phenomena.Rule) float64 { return r.Coverage })},
	{Title: "prevision", Format: fixed(2, func(r phenomena.Rule) float64 { return r.Precision })},
	{Title: "delta", Format: fixed(2, func(r phenomena.Rule) float64 { return r.Delta })},
	{Title: "g-statistics", Format: fixed(2, func(r phenomena.Rule) float64 { return r.GStatistic })},
	{Title: "p-value", Format: fixed(2, func(r phenomena.Rule) float64 { return r.PValue })},
	{Title: "cramers_phi", Format: fixed(2, func(r phenomena.Rule) float64 { return r.CramersPhi })},
}

// CountWithPercent produces `{part} ({100*part/total}%)`
func CountWithPercent(part, total phenomena.Count) string {
	return part.String() + " (" + Percent(part.Float(), total.Float()) + "%)"
}

// DetailTable is a rendered table of rules of a treebank.
type DetailTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func NewDetailTable(rules []phenomena.Rule) DetailTable {
	ans := DetailTable{
		Columns: make([]string, len(DetailColumns)),
		Rows:    make([][]string, len(rules)),
	}
	for i, col := range DetailColumns {
		ans.Columns[i] = col.Title
	}
	for i, rule := range rules {
		row := make([]string, len(DetailColumns))
		for j, col := range DetailColumns {
			row[j] = col.Format(i, rule)
		}
		ans.Rows[i] = row
	}
	return ans
}

// SummaryRow is a rendered row of the main table
// together with its detail table.
type SummaryRow struct {
	Seq             int         `json:"seq"`
	TreebankID      string      `json:"treebankId"`
	FilteredDepsLen string      `json:"filteredDepsLen"`
	Positive        string      `json:"positive"`
	Toggle          string      `json:"toggle"`
	Detail          DetailTable `json:"detail"`
	Stats           RuleStats   `json:"stats"`

	Source *phenomena.TreebankResult `json:"-"`
}

// ResultsView is a complete rendered view of a phenomenon.
type ResultsView struct {
	Phenomenon string       `json:"phenomenon"`
	Heading    string       `json:"heading"`
	File       string       `json:"file"`
	Rows       []SummaryRow `json:"rows"`
}

// HeadingHTML returns the heading as markup. Manifest texts
// may contain HTML (e.g. `<i>` for language names).
func (rv *ResultsView) HeadingHTML() template.HTML {
	return template.HTML(rv.Heading)
}

// NewResultsView renders the results of a phenomenon. Rows are numbered
// from 1 in the order of the treebanks in the results.
func NewResultsView(entry phenomena.Entry, results phenomena.Results) *ResultsView {
	ans := &ResultsView{
		Phenomenon: entry.Name,
		Heading:    entry.Text,
		File:       entry.File,
		Rows:       make([]SummaryRow, len(results)),
	}
	for i := range results {
		tb := &results[i]
		ans.Rows[i] = SummaryRow{
			Seq:             i + 1,
			TreebankID:      tb.TreebankID,
			FilteredDepsLen: tb.FilteredDepsLen.String(),
			Positive:        CountWithPercent(tb.NYes, tb.FilteredDepsLen),
			Toggle:          ToggleLabel,
			Detail:          NewDetailTable(tb.Rules),
			Stats:           NewRuleStats(tb.Rules),
			Source:          tb,
		}
	}
	return ans
}
