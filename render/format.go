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
	"math"
	"math/big"
	"strconv"
	"strings"
)

const exactPrec = 256

// ToFixed formats v with exactly `digits` decimal places the way
// JavaScript's Number.prototype.toFixed does it, i.e. based on the exact
// binary value with ties rounded away from zero (0.125 -> "0.13").
// NaN and infinities produce `NaN`, `Infinity` and `-Infinity`.
func ToFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	var sign string
	if v < 0 {
		sign = "-"
		v = -v
	}
	scale := new(big.Float).SetPrec(exactPrec).SetInt(
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil))
	x := new(big.Float).SetPrec(exactPrec).SetFloat64(v)
	x.Mul(x, scale)
	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(exactPrec).Sub(x, new(big.Float).SetPrec(exactPrec).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}
	digitsStr := n.String()
	if digits == 0 {
		return sign + digitsStr
	}
	if len(digitsStr) <= digits {
		digitsStr = strings.Repeat("0", digits-len(digitsStr)+1) + digitsStr
	}
	cut := len(digitsStr) - digits
	return sign + digitsStr[:cut] + "." + digitsStr[cut:]
}

// Percent returns `100 * part / total` with two decimal places.
func Percent(part, total float64) string {
	return ToFixed(100*part/total, 2)
}
