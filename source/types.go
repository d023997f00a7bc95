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

package source

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
)

// FetchLog describes a single fetch of a data file.
type FetchLog struct {
	URL    string
	Begin  time.Time
	End    time.Time
	Size   int
	Cached bool
	Err    error
}

func (fl FetchLog) TimeSpent() time.Duration {
	return fl.End.Sub(fl.Begin)
}

func (fl FetchLog) MarshalJSON() ([]byte, error) {
	var errMsg string
	if fl.Err != nil {
		errMsg = fl.Err.Error()
	}
	return sonic.Marshal(
		struct {
			URL          string    `json:"url"`
			Begin        time.Time `json:"begin"`
			End          time.Time `json:"end"`
			DurationSecs float64   `json:"durationSecs"`
			Size         int       `json:"size"`
			Cached       bool      `json:"cached"`
			Err          string    `json:"error,omitempty"`
		}{
			URL:          fl.URL,
			Begin:        fl.Begin,
			End:          fl.End,
			DurationSecs: fl.TimeSpent().Seconds(),
			Size:         fl.Size,
			Cached:       fl.Cached,
			Err:          errMsg,
		},
	)
}

// Recorder receives information about performed fetches.
type Recorder interface {
	Log(rec FetchLog)
}

// Cache stores raw payloads of fetched files.
type Cache interface {
	Get(ctx context.Context, url string) ([]byte, bool)
	Set(ctx context.Context, url string, data []byte)
}

type NullRecorder struct{}

func (n *NullRecorder) Log(rec FetchLog) {}
