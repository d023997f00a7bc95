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

package export

import (
	"fmt"
	"io"
	"strings"

	"gramview/render"

	"github.com/nao1215/markdown"
)

// WriteMarkdown writes a results view as a Markdown document with
// a summary table followed by a rules table for each treebank.
func WriteMarkdown(w io.Writer, view *render.ResultsView) error {
	md := markdown.NewMarkdown(w)
	md.H1(view.Heading)
	md.PlainText("")
	md.PlainText(fmt.Sprintf("Phenomenon: **%s**", view.Phenomenon))
	md.PlainText("")

	md.H2("Treebanks")
	md.PlainText("")
	rows := make([][]string, len(view.Rows))
	for i, row := range view.Rows {
		rows[i] = []string{
			fmt.Sprint(row.Seq),
			escapeCell(row.TreebankID),
			row.FilteredDepsLen,
			row.Positive,
			fmt.Sprint(row.Stats.NumRules),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Treebank", "Dependencies", "Positive", "Rules"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, row := range view.Rows {
		md.H2(row.TreebankID)
		md.PlainText("")
		if len(row.Detail.Rows) == 0 {
			md.PlainText("No rules extracted.")
			md.PlainText("")
			continue
		}
		md.PlainText(fmt.Sprintf(
			"Rules: %d (yes: %d, no: %d), median Cramér's phi: %s, mean coverage: %s",
			row.Stats.NumRules,
			row.Stats.NumYes,
			row.Stats.NumNo,
			render.ToFixed(row.Stats.MedianCramersPhi, 2),
			render.ToFixed(row.Stats.MeanCoverage, 2),
		))
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: row.Detail.Columns,
			Rows:   escapeRows(row.Detail.Rows),
		})
		md.PlainText("")
	}
	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

func escapeRows(rows [][]string) [][]string {
	ans := make([][]string, len(rows))
	for i, row := range rows {
		ans[i] = make([]string, len(row))
		for j, cell := range row {
			ans[i][j] = escapeCell(cell)
		}
	}
	return ans
}

// escapeCell makes sure a pattern containing a pipe
// does not break the table
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
