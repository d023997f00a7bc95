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

package handlers

import (
	"fmt"

	"gramview/merror"
	"gramview/monitoring"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type timeSpan string

func (ts timeSpan) Validate() error {
	if ts != spanTypeRecent && ts != spanTypeTotal {
		return merror.InputError{Msg: fmt.Sprintf("unknown time span `%s`", ts)}
	}
	return nil
}

const (
	spanTypeRecent timeSpan = "recent"
	spanTypeTotal  timeSpan = "total"
)

type Actions struct {
	logger *monitoring.FetchLogger
}

// FetchLoad godoc
// @Summary      Data file fetch statistics
// @Produce      json
// @Param        span query string false "recent or total" default(recent)
// @Success      200 {object} monitoring.FetchLoad
// @Router       /api/monitoring/fetches [get]
func (a *Actions) FetchLoad(ctx *gin.Context) {
	span := timeSpan(ctx.DefaultQuery("span", "recent"))
	if err := span.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, merror.HTTPStatus(err))
		return
	}
	var ans monitoring.FetchLoad
	if span == spanTypeRecent {
		ans = a.logger.RecentLoad()

	} else if span == spanTypeTotal {
		ans = a.logger.TotalLoad()
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// RecentRecords godoc
// @Summary      Recently fetched data files
// @Produce      json
// @Router       /api/monitoring/fetches/recent [get]
func (a *Actions) RecentRecords(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, a.logger.RecentRecords())
}

func NewActions(logger *monitoring.FetchLogger) *Actions {
	return &Actions{
		logger: logger,
	}
}
