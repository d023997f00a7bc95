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
	"gramview/phenomena"

	"github.com/montanaflynn/stats"
)

// RuleStats summarizes scores of all the rules extracted
// for a treebank.
type RuleStats struct {
	NumRules         int     `json:"numRules"`
	NumYes           int     `json:"numYes"`
	NumNo            int     `json:"numNo"`
	MedianCramersPhi float64 `json:"medianCramersPhi"`
	MaxCramersPhi    float64 `json:"maxCramersPhi"`
	MeanCoverage     float64 `json:"meanCoverage"`
	MeanPrecision    float64 `json:"meanPrecision"`
}

func statOrZero(fn func(stats.Float64Data) (float64, error), data stats.Float64Data) float64 {
	v, err := fn(data)
	if err != nil {
		return 0
	}
	return v
}

// NewRuleStats computes a summary of rules. For an empty list
// all the scores are zero.
func NewRuleStats(rules []phenomena.Rule) RuleStats {
	ans := RuleStats{NumRules: len(rules)}
	phi := make(stats.Float64Data, 0, len(rules))
	coverage := make(stats.Float64Data, 0, len(rules))
	precision := make(stats.Float64Data, 0, len(rules))
	for _, r := range rules {
		switch r.Decision {
		case "yes":
			ans.NumYes++
		case "no":
			ans.NumNo++
		}
		phi = append(phi, r.CramersPhi)
		coverage = append(coverage, r.Coverage)
		precision = append(precision, r.Precision)
	}
	ans.MedianCramersPhi = statOrZero(stats.Median, phi)
	ans.MaxCramersPhi = statOrZero(stats.Max, phi)
	ans.MeanCoverage = statOrZero(stats.Mean, coverage)
	ans.MeanPrecision = statOrZero(stats.Mean, precision)
	return ans
}
