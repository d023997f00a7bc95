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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	assert.Equal(t, "75.00", ToFixed(75, 2))
	assert.Equal(t, "0.00", ToFixed(0, 2))
	assert.Equal(t, "33.33", ToFixed(100.0/3.0, 2))
	assert.Equal(t, "66.67", ToFixed(200.0/3.0, 2))
	assert.Equal(t, "0.10000", ToFixed(0.1, 5))
	assert.Equal(t, "1.23457", ToFixed(1.234567, 5))
	assert.Equal(t, "12", ToFixed(12.4, 0))
	assert.Equal(t, "0.05", ToFixed(0.05, 2))
}

func TestToFixedTies(t *testing.T) {
	// exact binary ties are rounded up
	assert.Equal(t, "0.13", ToFixed(0.125, 2))
	assert.Equal(t, "2.5", ToFixed(2.45, 1)) // 2.45 is slightly above the tie in binary
	assert.Equal(t, "1.00", ToFixed(1.005, 2)) // 1.005 is slightly below the tie in binary
	assert.Equal(t, "3", ToFixed(2.5, 0))
}

func TestToFixedNegative(t *testing.T) {
	assert.Equal(t, "-0.13", ToFixed(-0.125, 2))
	assert.Equal(t, "-1.50", ToFixed(-1.5, 2))
	assert.Equal(t, "-0.00", ToFixed(-0.001, 2))
	assert.Equal(t, "0.00", ToFixed(math.Copysign(0, -1), 2))
}

func TestToFixedSpecialValues(t *testing.T) {
	assert.Equal(t, "NaN", ToFixed(math.NaN(), 2))
	assert.Equal(t, "Infinity", ToFixed(math.Inf(1), 2))
	assert.Equal(t, "-Infinity", ToFixed(math.Inf(-1), 2))
	assert.Equal(t, "1e+21", ToFixed(1e21, 2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75.00", Percent(150, 200))
	assert.Equal(t, "100.00", Percent(7, 7))
	assert.Equal(t, "NaN", Percent(0, 0))
	assert.Equal(t, "Infinity", Percent(3, 0))
}
