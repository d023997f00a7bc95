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

type Conf struct {
	DB hltscl.PgConf `json:"db"`
}

// StatusWriter stores information about individual fetches
// to an external storage.
type StatusWriter interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Write(rec source.FetchLog)
}

// NullStatusWriter is used when no storage is configured
type NullStatusWriter struct{}

func (n *NullStatusWriter) Start(ctx context.Context) {}

func (n *NullStatusWriter) Stop(ctx context.Context) error {
	return nil
}

func (n *NullStatusWriter) Write(rec source.FetchLog) {}

// NewStatusWriter creates a TimescaleDB writer if configured,
// otherwise a NullStatusWriter is returned.
func NewStatusWriter(ctx context.Context, conf *Conf, tz *time.Location) (StatusWriter, error) {
	if conf == nil {
		log.Info().Msg("monitoring database not configured, fetch statistics will be kept in memory only")
		return &NullStatusWriter{}, nil
	}
	return NewTimescaleDBWriter(ctx, conf.DB, tz)
}
