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
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func (a *Adapter) mkKey(url string) string {
	hashKey := sha1.Sum([]byte(url))
	return fmt.Sprintf("%s:%s", a.keyPrefix, hex.EncodeToString(hashKey[:]))
}

// Get returns a cached payload of a file. Redis errors are logged
// and reported as a cache miss.
func (a *Adapter) Get(ctx context.Context, url string) ([]byte, bool) {
	data, err := a.c.Get(ctx, a.mkKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false

	} else if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to read cached payload")
		return nil, false
	}
	return data, true
}

func (a *Adapter) Set(ctx context.Context, url string, data []byte) {
	if err := a.c.Set(ctx, a.mkKey(url), data, a.ttl).Err(); err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to store payload to cache")
	}
}

// Flush removes all the cached payloads and returns
// the number of removed items.
func (a *Adapter) Flush(ctx context.Context) (int, error) {
	var cursor uint64
	var total int
	for {
		keys, next, err := a.c.Scan(ctx, cursor, a.keyPrefix+":*", scanBatchSize).Result()
		if err != nil {
			return total, fmt.Errorf("failed to flush cache: %w", err)
		}
		if len(keys) > 0 {
			n, err := a.c.Del(ctx, keys...).Result()
			if err != nil {
				return total, fmt.Errorf("failed to flush cache: %w", err)
			}
			total += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	log.Info().Int("numRemoved", total).Msg("flushed payload cache")
	return total, nil
}
