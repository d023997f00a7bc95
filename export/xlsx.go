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

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet      = "summary"
	maxSheetNameLen   = 31
	invalidSheetChars = `[]:*?/\`
)

var summaryHeader = []any{"#", "Treebank", "Dependencies", "Positive", "Positive (%)", "Rules"}

// sheetName produces a valid and unique worksheet name for a treebank
func sheetName(treebankID string, used map[string]bool) string {
	name := strings.Map(
		func(r rune) rune {
			if strings.ContainsRune(invalidSheetChars, r) {
				return '_'
			}
			return r
		},
		treebankID,
	)
	name = strings.Trim(name, "'")
	if name == "" {
		name = "treebank"
	}
	runes := []rune(name)
	if len(runes) > maxSheetNameLen {
		runes = runes[:maxSheetNameLen]
	}
	candidate := string(runes)
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf("~%d", i)
		cut := runes
		if len(cut)+len(suffix) > maxSheetNameLen {
			cut = cut[:maxSheetNameLen-len(suffix)]
		}
		candidate = string(cut) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func stringsToAny(values []string) []any {
	ans := make([]any, len(values))
	for i, v := range values {
		ans[i] = v
	}
	return ans
}

// WriteXLSX writes a results view as a spreadsheet. The first sheet
// contains the summary, each treebank has its own sheet with rules.
// Counts are written as numbers, rule scores as formatted in the view.
func WriteXLSX(w io.Writer, view *render.ResultsView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	used := map[string]bool{summarySheet: true}
	if err := writeRow(f, summarySheet, 1, summaryHeader); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	for i, row := range view.Rows {
		values := []any{row.Seq, row.TreebankID, row.FilteredDepsLen, row.Positive, "", row.Stats.NumRules}
		if row.Source != nil {
			values[2] = row.Source.FilteredDepsLen.Float()
			values[3] = row.Source.NYes.Float()
			values[4] = render.Percent(row.Source.NYes.Float(), row.Source.FilteredDepsLen.Float())
		}
		if err := writeRow(f, summarySheet, i+2, values); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	for _, row := range view.Rows {
		name := sheetName(row.TreebankID, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet for %s: %w", row.TreebankID, err)
		}
		if err := writeRow(f, name, 1, stringsToAny(row.Detail.Columns)); err != nil {
			return fmt.Errorf("failed to write rules of %s: %w", row.TreebankID, err)
		}
		for j, rule := range row.Detail.Rows {
			if err := writeRow(f, name, j+2, stringsToAny(rule)); err != nil {
				return fmt.Errorf("failed to write rules of %s: %w", row.TreebankID, err)
			}
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
