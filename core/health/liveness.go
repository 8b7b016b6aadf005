package health

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// Liveness reports that the process is up. It checks no dependencies.
func Liveness(ctx *handler.Context) error {
	return ctx.Reply.Text("ALIVE")
}

// NoContent answers 204 without a body.
func NoContent(ctx *handler.Context) error {
	return ctx.Reply.Status(http.StatusNoContent).Send(nil)
}
