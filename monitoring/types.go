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

package monitoring

import (
	"time"

	"github.com/bytedance/sonic"
)

// FetchLoad summarizes a number of fetches
type FetchLoad struct {
	NumFetches    int
	NumErrors     int
	NumCached     int
	TotalTimeSecs float64
	FirstUpdate   time.Time
	LastUpdate    time.Time
	NumFiles      int
}

func (fl FetchLoad) AvgFetchSecs() float64 {
	if fl.NumFetches == 0 {
		return 0
	}
	return fl.TotalTimeSecs / float64(fl.NumFetches)
}

func (fl FetchLoad) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !fl.FirstUpdate.IsZero() {
		t0 = &fl.FirstUpdate
	}
	if !fl.LastUpdate.IsZero() {
		t1 = &fl.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumFetches    int        `json:"numFetches"`
			NumErrors     int        `json:"numErrors"`
			NumCached     int        `json:"numCached"`
			TotalTimeSecs float64    `json:"totalTimeSecs"`
			AvgFetchSecs  float64    `json:"avgFetchSecs"`
			NumFiles      int        `json:"numFiles,omitempty"`
			FirstUpdate   *time.Time `json:"firstUpdate,omitempty"`
			LastUpdate    *time.Time `json:"lastUpdate,omitempty"`
		}{
			NumFetches:    fl.NumFetches,
			NumErrors:     fl.NumErrors,
			NumCached:     fl.NumCached,
			TotalTimeSecs: fl.TotalTimeSecs,
			AvgFetchSecs:  fl.AvgFetchSecs(),
			NumFiles:      fl.NumFiles,
			FirstUpdate:   t0,
			LastUpdate:    t1,
		},
	)
}
