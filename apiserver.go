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

package main

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"gramview/cnf"
	"gramview/docs"
	"gramview/general"
	"gramview/handlers"
	"gramview/monitoring"
	monitoringActions "gramview/monitoring/handlers"
	"gramview/rdb"
	"gramview/source"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type apiServer struct {
	server      *http.Server
	conf        *cnf.Conf
	version     general.VersionInfo
	radapter    *rdb.Adapter
	fetcher     *source.Fetcher
	fetchLogger *monitoring.FetchLogger
}

//go:embed docs/swagger.json
var swaggerJSON embed.FS

func mkServerInfo(conf *cnf.Conf, version general.VersionInfo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(
			ctx.Writer,
			map[string]any{
				"name":      "Gramview",
				"version":   version,
				"publicUrl": conf.PublicURL,
				"siteTitle": conf.SiteTitle,
			},
		)
	}
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	about, err := handlers.LoadAbout(api.conf.AboutFile)
	if err != nil {
		log.Error().Err(err).Msg("about page not available, using the default text")
	}

	engine := gin.New()
	handlers.ConfigureEngine(engine)
	engine.Use(gin.CustomRecovery(recoverFromPanic))
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	var flusher handlers.CacheFlusher
	if api.radapter != nil {
		flusher = api.radapter
	}
	pages := handlers.NewPageBuilder(api.fetcher, handlers.ServerLinks{}, api.conf.SiteTitle, about)
	actions := handlers.NewActions(pages, flusher)
	mActions := monitoringActions.NewActions(api.fetchLogger)

	engine.GET("/", actions.Home)
	engine.GET("/about", actions.About)
	engine.GET("/phenomena/:name", actions.Phenomenon)

	engine.GET("/info", mkServerInfo(api.conf, api.version))

	if api.version.Version != "" {
		docs.SwaggerInfo.Version = api.version.Version
	}
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// also serve the JSON variant of the docs:
	engine.GET(
		"/openapi",
		func(ctx *gin.Context) {
			jsonFile, err := swaggerJSON.ReadFile("docs/swagger.json")
			if err != nil {
				err = fmt.Errorf("Failed to read Swagger file: %w", err)
				uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
				return
			}
			uniresp.WriteRawJSONResponse(ctx.Writer, jsonFile)
		},
	)

	apiGroup := engine.Group("/api")
	apiGroup.Use(uniresp.AlwaysJSONContentType())

	apiGroup.GET(
		"/phenomena", actions.Phenomena)

	apiGroup.GET(
		"/phenomena/:name", actions.PhenomenonResults)

	apiGroup.GET(
		"/monitoring/fetches", mActions.FetchLoad)

	apiGroup.GET(
		"/monitoring/fetches/recent", mActions.RecentRecords)

	// exports set their own content type
	engine.GET(
		"/api/phenomena/:name/xlsx", actions.ExportXLSX)

	engine.GET(
		"/api/phenomena/:name/markdown", actions.ExportMarkdown)

	protected := engine.Group("/tools").Use(AuthRequired(api.conf))
	protected.DELETE(
		"/cache", actions.FlushCache)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down Gramview HTTP server")
	if api.radapter != nil {
		if err := api.radapter.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
	return api.server.Shutdown(ctx)
}

func runAPIServer(
	conf *cnf.Conf,
	version general.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var radapter *rdb.Adapter
	var cache source.Cache
	if conf.Redis != nil {
		radapter = rdb.NewAdapter(conf.Redis)
		if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		cache = radapter

	} else {
		log.Info().Msg("Redis not configured, data files will not be cached")
	}

	statusWriter, err := monitoring.NewStatusWriter(ctx, conf.Monitoring, conf.TimezoneLocation())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize monitoring")
		return
	}
	fetchLogger := monitoring.NewFetchLogger(statusWriter)

	fetcher, err := source.NewFetcher(conf.Data, cache, fetchLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize data source")
		return
	}

	server := newAPIServer(conf, version, radapter, fetcher, fetchLogger)

	services := []service{statusWriter, server}
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func newAPIServer(
	conf *cnf.Conf,
	version general.VersionInfo,
	radapter *rdb.Adapter,
	fetcher *source.Fetcher,
	fetchLogger *monitoring.FetchLogger,
) *apiServer {
	return &apiServer{
		conf:        conf,
		version:     version,
		radapter:    radapter,
		fetcher:     fetcher,
		fetchLogger: fetchLogger,
	}
}
