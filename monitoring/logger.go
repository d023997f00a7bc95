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
	"sync"

	"gramview/source"

	"github.com/czcorpus/cnc-gokit/collections"
)

const (
	recentLogSize = 100
)

// FetchLogger keeps statistics about fetched data files. It keeps
// running totals and a limited log of recent fetches.
// All the fetches are also passed to a StatusWriter.
type FetchLogger struct {
	total        FetchLoad
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[source.FetchLog]
	statusWriter StatusWriter
}

func (w *FetchLogger) Log(rec source.FetchLog) {
	w.dataLock.Lock()
	defer w.dataLock.Unlock()

	if w.total.NumFetches == 0 {
		w.total.FirstUpdate = rec.Begin
	}
	w.total.NumFetches++
	w.total.LastUpdate = rec.End
	if rec.Err != nil {
		w.total.NumErrors++
	}
	if rec.Cached {
		w.total.NumCached++
	}
	w.total.TotalTimeSecs += rec.TimeSpent().Seconds()
	w.recentLog.Append(rec)
	w.statusWriter.Write(rec)
}

func (w *FetchLogger) TotalLoad() FetchLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.total
}

func (w *FetchLogger) RecentLoad() FetchLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans FetchLoad
	files := collections.NewSet[string]()
	w.recentLog.ForEach(func(i int, item source.FetchLog) bool {
		files.Add(item.URL)
		if i == 0 {
			ans.FirstUpdate = item.Begin
		}
		ans.LastUpdate = item.End
		if item.Err != nil {
			ans.NumErrors++
		}
		if item.Cached {
			ans.NumCached++
		}
		ans.NumFetches++
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	ans.NumFiles = files.Size()
	return ans
}

func (w *FetchLogger) RecentRecords() []source.FetchLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]source.FetchLog, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item source.FetchLog) bool {
		ans[i] = item
		return true
	})
	return ans
}

func NewFetchLogger(statusWriter StatusWriter) *FetchLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &FetchLogger{
		recentLog:    collections.NewCircularList[source.FetchLog](recentLogSize),
		statusWriter: statusWriter,
	}
}
