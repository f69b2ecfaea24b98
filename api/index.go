package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"hotel/shared/metrics"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entry point. The dependency graph is built on the first request
// and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())
		metrics.Register()

		handler = di.InitializeService().Handler()
	})

	handler.ServeHTTP(w, r)
}
