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
	"bytes"
	"strings"
	"testing"

	"gramview/phenomena"
	"gramview/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testView() *render.ResultsView {
	results := phenomena.Results{
		{
			TreebankID:      "UD_Czech-PDT",
			FilteredDepsLen: 200,
			NYes:            150,
			Rules: []phenomena.Rule{
				{
					Pattern:                   "upos=NOUN|Case=Nom",
					NPatternOccurence:         40,
					NPatternPositiveOccurence: 30,
					Decision:                  "yes",
					Alpha:                     0.1,
					Value:                     1.25,
					Coverage:                  20,
					Precision:                 75,
					Delta:                     0.5,
					GStatistic:                3.2,
					PValue:                    0.07,
					CramersPhi:                0.28,
				},
			},
		},
		{TreebankID: "UD_English/EWT", FilteredDepsLen: 10, NYes: 3, Rules: []phenomena.Rule{}},
	}
	return render.NewResultsView(
		phenomena.Entry{Name: "Subject order", File: "order.json", Text: "Order of subjects"},
		results,
	)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, testView()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Order of subjects"))
	assert.Contains(t, out, "## Treebanks")
	assert.Contains(t, out, "150 (75.00%)")
	assert.Contains(t, out, "## UD_Czech-PDT")
	assert.Contains(t, out, "Case=Nom")
	assert.Contains(t, out, "30 (75.00%)")
	assert.Contains(t, out, "10 (25.00%)")
	assert.Contains(t, out, "No rules extracted.")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testView()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"summary", "UD_Czech-PDT", "UD_English_EWT"}, f.GetSheetList())

	rows, err := f.GetRows("summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Treebank", "Dependencies", "Positive", "Positive (%)", "Rules"}, rows[0])
	assert.Equal(t, []string{"1", "UD_Czech-PDT", "200", "150", "75.00", "1"}, rows[1])

	rules, err := f.GetRows("UD_Czech-PDT")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "Pattern", rules[0][1])
	assert.Equal(t, "upos=NOUN|Case=Nom", rules[1][1])
	assert.Equal(t, "0.10000", rules[1][6])
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"summary": true}
	assert.Equal(t, "UD_x_y", sheetName("UD:x?y", used))
	assert.Equal(t, "UD_x_y~2", sheetName("UD/x*y", used))
	assert.Equal(t, "Summary~2", sheetName("Summary", used))
	long := strings.Repeat("a", 40)
	name := sheetName(long, used)
	assert.Len(t, name, 31)
	name2 := sheetName(long, used)
	assert.Len(t, name2, 31)
	assert.True(t, strings.HasSuffix(name2, "~2"))
	assert.Equal(t, "treebank", sheetName("''", used))
}

func unescapedPipes(line string) int {
	var ans int
	for i, c := range line {
		if c == '|' && (i == 0 || line[i-1] != '\\') {
			ans++
		}
	}
	return ans
}

func TestWriteMarkdownEscapesTreebankID(t *testing.T) {
	view := render.NewResultsView(
		phenomena.Entry{Name: "Case", File: "case.json", Text: "Case"},
		phenomena.Results{{TreebankID: "UD|Pipe", FilteredDepsLen: 4, NYes: 2, Rules: []phenomena.Rule{}}},
	)
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, view))
	var found bool
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "Pipe") && strings.Contains(line, "2 (50.00%)") {
			found = true
			assert.Equal(t, 6, unescapedPipes(line))
		}
	}
	assert.True(t, found)
}
