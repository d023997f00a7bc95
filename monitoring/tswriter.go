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
	"context"
	"time"

	"gramview/source"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

/*
Expected tables:

create table gramview_fetch_stats (
  "time" timestamp with time zone NOT NULL,
  num_fetches int,
  num_errors int,
  num_cached int,
  duration_secs float
);
select create_hypertable('gramview_fetch_stats', 'time');

create table gramview_fetched_files (
	"time" timestamp with time zone NOT NULL,
	url text,
	num_calls int
);
select create_hypertable('gramview_fetched_files', 'time');

*/

const (
	statsTable = "gramview_fetch_stats"
	filesTable = "gramview_fetched_files"
)

type TimescaleDBWriter struct {
	tableWriter *hltscl.TableWriter
	opsDataCh   chan<- hltscl.Entry
	errCh       <-chan hltscl.WriteError
	filesWriter *hltscl.TableWriter
	filesDataCh chan<- hltscl.Entry
	filesErrCh  <-chan hltscl.WriteError
	location    *time.Location
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close StatusWriter")
				return
			case err := <-sw.errCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", statsTable).
					Msg("error writing data to TimescaleDB")
			case err := <-sw.filesErrCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", filesTable).
					Msg("error writing data to TimescaleDB")
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Msg("stopping StatusWriter")
	return nil
}

func (sw *TimescaleDBWriter) Write(item source.FetchLog) {
	var numErr, numCached int
	if item.Err != nil {
		numErr++
	}
	if item.Cached {
		numCached++
	}
	sw.opsDataCh <- *sw.tableWriter.NewEntry(time.Now().In(sw.location)).
		Int("num_fetches", 1).
		Int("num_errors", numErr).
		Int("num_cached", numCached).
		Float("duration_secs", item.TimeSpent().Seconds())

	sw.filesDataCh <- *sw.filesWriter.NewEntry(time.Now().In(sw.location)).
		Str("url", item.URL).
		Int("num_calls", 1)
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {

	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	twriter := hltscl.NewTableWriter(conn, statsTable, "time", tz)
	opsDataCh, errCh := twriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	fwriter := hltscl.NewTableWriter(conn, filesTable, "time", tz)
	filesDataCh, filesErrCh := fwriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	return &TimescaleDBWriter{
		tableWriter: twriter,
		opsDataCh:   opsDataCh,
		errCh:       errCh,
		filesWriter: fwriter,
		filesDataCh: filesDataCh,
		filesErrCh:  filesErrCh,
		location:    tz,
	}, nil
}
