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

package phenomena

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	IconOrder     = "bi-arrow-left-right"
	IconAgreement = "icon-rotate bi-pause"
	IconGeneric   = "bi-file-earmark-spreadsheet"
)

// Entry is a single item of the phenomena manifest.
type Entry struct {
	Name string `json:"name"`
	File string `json:"file"`
	Text string `json:"text"`
}

// Icon returns a CSS class of an icon matching the phenomenon name.
// The first matching rule wins.
func (e Entry) Icon() string {
	name := strings.ToLower(e.Name)
	if strings.Contains(name, "order") {
		return IconOrder

	} else if strings.Contains(name, "agreement") {
		return IconAgreement
	}
	return IconGeneric
}

// Manifest is an ordered list of phenomena as they appear
// in the manifest file.
type Manifest []Entry

func (m Manifest) Get(name string) (Entry, bool) {
	for _, v := range m {
		if v.Name == name {
			return v, true
		}
	}
	return Entry{}, false
}

// ---------------------------------

// Count is a numeric count as written by the analysis tools.
// Some of them write counts as floats (e.g. `12.0`) so we keep
// the value as float64 and print it in the shortest form.
type Count float64

func (c Count) Float() float64 {
	return float64(c)
}

func (c Count) String() string {
	return FormatNumber(float64(c))
}

// FormatNumber prints a number the way a browser converts
// a number to a string.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case math.Abs(v) >= 1e21 || math.Abs(v) < 1e-6:
		// browsers write the exponent without leading zeros (1.5e-7)
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Intercept is a pair (alpha, intercept) of a fitted model.
type Intercept struct {
	Alpha float64
	Value float64
}

func (ic *Intercept) UnmarshalJSON(data []byte) error {
	var tmp []float64
	if err := sonic.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("failed to decode intercept: %w", err)
	}
	if len(tmp) != 2 {
		return fmt.Errorf("failed to decode intercept: expected a pair, got %d item(s)", len(tmp))
	}
	ic.Alpha = tmp[0]
	ic.Value = tmp[1]
	return nil
}

func (ic Intercept) MarshalJSON() ([]byte, error) {
	return sonic.Marshal([2]float64{ic.Alpha, ic.Value})
}

// Rule is a single extracted pattern with its statistics.
type Rule struct {
	Pattern                   string  `json:"pattern"`
	NPatternOccurence         Count   `json:"n_pattern_occurence"`
	NPatternPositiveOccurence Count   `json:"n_pattern_positive_occurence"`
	Decision                  string  `json:"decision"`
	Alpha                     float64 `json:"alpha"`
	Value                     float64 `json:"value"`
	Coverage                  float64 `json:"coverage"`
	Precision                 float64 `json:"precision"`
	Delta                     float64 `json:"delta"`
	GStatistic                float64 `json:"g-statistic"`
	PValue                    float64 `json:"p-value"`
	CramersPhi                float64 `json:"cramers_phi"`
}

// NPatternNegativeOccurence is the number of pattern occurrences
// without the observed property.
func (r Rule) NPatternNegativeOccurence() Count {
	return r.NPatternOccurence - r.NPatternPositiveOccurence
}

// TreebankResult contains analysis results for a single treebank.
type TreebankResult struct {
	TreebankID      string      `json:"treebank_id"`
	FilteredDepsLen Count       `json:"filtered_deps_len"`
	NYes            Count       `json:"n_yes"`
	Intercepts      []Intercept `json:"intercepts,omitempty"`
	Rules           []Rule      `json:"rules"`
}

// Results is an ordered list of treebank results of a phenomenon.
// The order is the order of keys in the source file.
type Results []TreebankResult
