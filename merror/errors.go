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

package merror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// InputError reports a problem with a user request
// (unknown phenomenon, invalid argument).
type InputError struct {
	Msg string
}

func (err InputError) Error() string {
	return err.Msg
}

func (err InputError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

type NotFoundError struct {
	Msg string
}

func (err NotFoundError) Error() string {
	return err.Msg
}

func (err NotFoundError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

type InternalError struct {
	Msg string
}

func (err InternalError) Error() string {
	return err.Msg
}

func (err InternalError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

// UpstreamError is a failure to fetch or decode a data file
// (the manifest or a results file).
type UpstreamError struct {
	URL    string
	Status int
	Msg    string
	Cause  error
}

func (err UpstreamError) Unwrap() error {
	return err.Cause
}

func (err UpstreamError) Error() string {
	if err.Status > 0 {
		return fmt.Sprintf("%s (url: %s, status: %d)", err.Msg, err.URL, err.Status)
	}
	return fmt.Sprintf("%s (url: %s)", err.Msg, err.URL)
}

func (err UpstreamError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		URL    string `json:"url"`
		Status int    `json:"status,omitempty"`
		Msg    string `json:"message"`
	}{
		URL:    err.URL,
		Status: err.Status,
		Msg:    err.Msg,
	})
}

// ---------------------------

type RecoveredError struct {
	Msg string
}

func (err RecoveredError) Error() string {
	return err.Msg
}

func (err RecoveredError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ---------------------------

type TimeoutError struct {
	Msg string
}

func (err TimeoutError) Error() string {
	return err.Msg
}

func (err TimeoutError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// -----------------

// HTTPStatus maps an error (possibly wrapped) to a HTTP
// status code suitable for a response.
func HTTPStatus(err error) int {
	var inputErr InputError
	var notFoundErr NotFoundError
	var upstreamErr UpstreamError
	var timeoutErr TimeoutError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func PanicValueToErr(v any) (err error) {
	switch tr := v.(type) {
	case error:
		err = RecoveredError{Msg: fmt.Sprintf("recovered panic: %s", tr)}
	case string:
		err = RecoveredError{Msg: fmt.Sprintf("recovered panic: %s", tr)}
	default:
		err = RecoveredError{Msg: fmt.Sprintf("recovered panic from an error of type %T", v)}
	}
	return
}
