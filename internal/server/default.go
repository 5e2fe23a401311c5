package server

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sasanalk/sasana-portal/modules/core/services"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/httpapi"
	"github.com/sasanalk/sasana-portal/pkg/middleware"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
}

// HTTPServer is the assembled portal: every registered controller behind
// the shared middleware stack, gzip on the outside.
type HTTPServer struct {
	handler http.Handler
}

func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

func (s *HTTPServer) Start(socketAddress string) error {
	return http.ListenAndServe(socketAddress, s.handler)
}

// Default builds the middleware stack and the router around the
// controllers every module registered.
func Default(options *DefaultOptions) (*HTTPServer, error) {
	app := options.Application
	sessions := app.Service(services.SessionService{}).(*services.SessionService)

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Cors(options.Configuration.Origin),
		middleware.RequestParams(),
		middleware.ProvideSession(sessions.Store()),
	)
	if options.Configuration.Prometheus.Enabled {
		app.RegisterMiddleware(middleware.Metrics())
	}

	router := mux.NewRouter()
	router.Use(app.Middleware()...)
	for _, controller := range app.Controllers() {
		controller.Register(router)
	}

	// The fallback handlers sit outside router.Use, so the stack is
	// applied to them by hand; 404s still get logging and CORS headers.
	router.NotFoundHandler = wrap(app.Middleware(),
		jsonFallback(http.StatusNotFound, "NOT_FOUND", "no such endpoint"))
	router.MethodNotAllowedHandler = wrap(app.Middleware(),
		jsonFallback(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed"))

	return &HTTPServer{handler: gziphandler.GzipHandler(router)}, nil
}

func wrap(middlewares []mux.MiddlewareFunc, h http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func jsonFallback(status int, code, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, status, code, message, nil)
	})
}
