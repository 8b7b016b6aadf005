package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/waypoint/app"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/router"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		logger.New().Error("Failed to build application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}
	log := a.Logger()

	items := newItemStore()

	api := router.New(router.WithPrefix("/api/v1"), router.WithLogger(log))
	api.UseBefore(apiVersion)
	api.Get("/items", listItems(items))
	api.Post("/items", createItem(items, log))
	api.Get("/items/:id", getItem(items))
	api.Delete("/items/:id", deleteItem(items, log)).Before(requireToken(os.Getenv("ADMIN_TOKEN")))

	a.Router().Mount(api)

	if err := a.Run(ctx); err != nil {
		log.Error("Failed to run application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}
}
