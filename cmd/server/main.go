package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"

	"github.com/sasanalk/sasana-portal/internal/server"
	"github.com/sasanalk/sasana-portal/modules"
	"github.com/sasanalk/sasana-portal/pkg/application"
	"github.com/sasanalk/sasana-portal/pkg/configuration"
	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/metrics"
	"github.com/sasanalk/sasana-portal/pkg/registry"
	"github.com/sasanalk/sasana-portal/pkg/wizardsession"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := wizardsession.NewManager(conf.Wizard.SessionTTL, nil)
	sessions.StartSweeper(ctx, conf.Wizard.SweepInterval)

	app := application.New(&application.ApplicationOptions{
		Registry:       registry.NewClient(conf.Registry.BaseURL, conf.Registry.Timeout, logger),
		EventBus:       eventbus.NewEventPublisher(logger),
		Logger:         logger,
		WizardSessions: sessions,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
