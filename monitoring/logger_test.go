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
	"errors"
	"sync"
	"testing"
	"time"

	"gramview/source"

	"github.com/stretchr/testify/assert"
)

type memStatusWriter struct {
	NullStatusWriter
	mu      sync.Mutex
	written []source.FetchLog
}

func (m *memStatusWriter) Write(rec source.FetchLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, rec)
}

func mkLog(url string, begin time.Time, dur time.Duration, err error, cached bool) source.FetchLog {
	return source.FetchLog{URL: url, Begin: begin, End: begin.Add(dur), Err: err, Cached: cached}
}

func TestFetchLoggerTotals(t *testing.T) {
	sw := &memStatusWriter{}
	logger := NewFetchLogger(sw)
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	logger.Log(mkLog("a.json", t0, time.Second, nil, false))
	logger.Log(mkLog("b.json", t0.Add(time.Minute), 3*time.Second, errors.New("failed"), false))
	logger.Log(mkLog("a.json", t0.Add(2*time.Minute), 0, nil, true))

	total := logger.TotalLoad()
	assert.Equal(t, 3, total.NumFetches)
	assert.Equal(t, 1, total.NumErrors)
	assert.Equal(t, 1, total.NumCached)
	assert.InDelta(t, 4.0, total.TotalTimeSecs, 1e-9)
	assert.InDelta(t, 4.0/3.0, total.AvgFetchSecs(), 1e-9)
	assert.Equal(t, t0, total.FirstUpdate)
	assert.Equal(t, t0.Add(2*time.Minute), total.LastUpdate)
	assert.Len(t, sw.written, 3)

	recent := logger.RecentLoad()
	assert.Equal(t, 3, recent.NumFetches)
	assert.Equal(t, 2, recent.NumFiles)
	assert.Equal(t, t0, recent.FirstUpdate)
}

func TestFetchLoggerRecentIsLimited(t *testing.T) {
	logger := NewFetchLogger(nil)
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < recentLogSize+20; i++ {
		logger.Log(mkLog("a.json", t0.Add(time.Duration(i)*time.Second), time.Millisecond, nil, false))
	}
	assert.Len(t, logger.RecentRecords(), recentLogSize)
	assert.Equal(t, recentLogSize, logger.RecentLoad().NumFetches)
	assert.Equal(t, recentLogSize+20, logger.TotalLoad().NumFetches)
}

func TestFetchLoadEmpty(t *testing.T) {
	var fl FetchLoad
	assert.Equal(t, 0.0, fl.AvgFetchSecs())
	data, err := fl.MarshalJSON()
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "firstUpdate")
}
