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

package phenomena

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON document")
	ErrNotAnObject = errors.New("JSON document is not an object")
)

type manifestItem struct {
	File string `json:"file"`
	Text string `json:"text"`
}

// forEachItem iterates over the top-level object of data in the order
// the keys appear in the document. A repeated key replaces the value
// of its first occurrence but keeps that position.
func forEachItem(data []byte, fn func(key string, raw string) error) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ErrNotAnObject
	}
	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		err = fn(key.String(), value.Raw)
		return err == nil
	})
	return err
}

// DecodeManifest decodes a phenomena manifest
// (`{"name": {"file": "...", "text": "..."}, ...}`)
// preserving the order of its entries.
func DecodeManifest(data []byte) (Manifest, error) {
	ans := make(Manifest, 0, 10)
	positions := make(map[string]int)
	err := forEachItem(data, func(key string, raw string) error {
		var item manifestItem
		if err := sonic.UnmarshalString(raw, &item); err != nil {
			return fmt.Errorf("failed to decode manifest entry `%s`: %w", key, err)
		}
		entry := Entry{Name: key, File: item.File, Text: item.Text}
		if pos, ok := positions[key]; ok {
			ans[pos] = entry
			return nil
		}
		positions[key] = len(ans)
		ans = append(ans, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return ans, nil
}

// DecodeResults decodes a results file of a phenomenon
// (`{"treebank_id": {...}, ...}`) preserving the order of treebanks.
func DecodeResults(data []byte) (Results, error) {
	ans := make(Results, 0, 50)
	positions := make(map[string]int)
	err := forEachItem(data, func(key string, raw string) error {
		var item TreebankResult
		if err := sonic.UnmarshalString(raw, &item); err != nil {
			return fmt.Errorf("failed to decode results of treebank `%s`: %w", key, err)
		}
		item.TreebankID = key
		if item.Rules == nil {
			item.Rules = []Rule{}
		}
		if pos, ok := positions[key]; ok {
			ans[pos] = item
			return nil
		}
		positions[key] = len(ans)
		ans = append(ans, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return ans, nil
}
