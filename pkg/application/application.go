package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/registry"
	"github.com/sasanalk/sasana-portal/pkg/wizardsession"
)

// Controller is the unit of routing: each controller owns a base path and
// registers its own routes and middleware stack.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a domain's services and controllers into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Registry() *registry.Client
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	WizardSessions() *wizardsession.Manager
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
	Services() map[reflect.Type]interface{}
}

type ApplicationOptions struct {
	Registry       *registry.Client
	EventBus       eventbus.EventBus
	Logger         *logrus.Logger
	WizardSessions *wizardsession.Manager
}

func New(opts *ApplicationOptions) Application {
	return &application{
		registry:       opts.Registry,
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
		wizardSessions: opts.WizardSessions,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
	}
}

// application with a dynamically extendable service registry
type application struct {
	registry       *registry.Client
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
	wizardSessions *wizardsession.Manager
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	middleware     []mux.MiddlewareFunc
}

func (app *application) Registry() *registry.Client {
	return app.registry
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) WizardSessions() *wizardsession.Manager {
	return app.wizardSessions
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllers))
	for _, c := range app.controllers {
		controllers = append(controllers, c)
	}
	return controllers
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}
