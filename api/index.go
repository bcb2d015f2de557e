// Package handler exposes the API as a single net/http handler for
// serverless deployments.
package handler

import (
	"net/http"
	"sync"

	"github.com/amirasaad/farmledger/infra/initializer"
	"github.com/amirasaad/farmledger/pkg/app"
	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	built   http.HandlerFunc
	initErr error
)

// Handler is the main entry point of the application.
// Think of it like the main() method
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { built, initErr = handler() })
	if initErr != nil {
		http.Error(w, `{"success":false,"message":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	built.ServeHTTP(w, r)
}

// handler builds the fiber application from the process environment.
func handler() (http.HandlerFunc, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(deps, cfg))), nil
}
