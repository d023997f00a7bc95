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

package rdb

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultKeyPrefix = "gramview:payload"
	DefaultTTLSecs   = 300
	DefaultPort      = 6379

	scanBatchSize = 100
)

type Conf struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	DB        int    `json:"db"`
	Password  string `json:"password"`
	KeyPrefix string `json:"keyPrefix"`

	// TTLSecs specifies how long a fetched payload is reused
	TTLSecs int `json:"ttlSecs"`
}

func (conf *Conf) ValidateAndDefaults(confContext string) error {
	if conf.Host == "" {
		return fmt.Errorf("missing %s.host", confContext)
	}
	if conf.Port == 0 {
		conf.Port = DefaultPort
		log.Warn().
			Int("port", DefaultPort).
			Msgf("%s.port not specified, using default", confContext)
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = DefaultKeyPrefix
		log.Warn().
			Str("prefix", DefaultKeyPrefix).
			Msgf("%s.keyPrefix not specified, using default", confContext)
	}
	if conf.TTLSecs == 0 {
		conf.TTLSecs = DefaultTTLSecs
		log.Warn().
			Int("ttlSecs", DefaultTTLSecs).
			Msgf("%s.ttlSecs not specified, using default", confContext)
	}
	return nil
}

// Adapter is a Redis-backed cache of fetched data files.
type Adapter struct {
	c         *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// TestConnection repeatedly pings Redis until it responds
// or the timeout elapses.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		err := a.c.Ping(ctx).Err()
		if err == nil {
			log.Info().Msg("Redis connection OK")
			return nil
		}
		log.Warn().Err(err).Msg("Redis not ready, waiting")
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to connect to Redis: %w", err)
		case <-ticker.C:
		}
	}
}

func (a *Adapter) Close() error {
	return a.c.Close()
}

func NewAdapter(conf *Conf) *Adapter {
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		keyPrefix: conf.KeyPrefix,
		ttl:       time.Duration(conf.TTLSecs) * time.Second,
	}
}
