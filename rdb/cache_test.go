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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMkKey(t *testing.T) {
	a := NewAdapter(&Conf{Host: "localhost", Port: 6379, KeyPrefix: "test"})
	k1 := a.mkKey("http://localhost/phenomena.json")
	k2 := a.mkKey("http://localhost/phenomena.json")
	k3 := a.mkKey("http://localhost/order.json")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.True(t, strings.HasPrefix(k1, "test:"))
	assert.Len(t, k1, len("test:")+40)
}

func TestConfValidateAndDefaults(t *testing.T) {
	conf := &Conf{Host: "localhost"}
	assert.NoError(t, conf.ValidateAndDefaults("redis"))
	assert.Equal(t, DefaultPort, conf.Port)
	assert.Equal(t, DefaultKeyPrefix, conf.KeyPrefix)
	assert.Equal(t, DefaultTTLSecs, conf.TTLSecs)

	assert.Error(t, (&Conf{}).ValidateAndDefaults("redis"))
}
