// Package response turns captured pipeline errors into structured JSON.
//
// HTTPError carries a status, a machine-readable code, a message and
// optional details. Handlers and middleware return HTTPError values (or
// wrap them) and ErrorResponder, installed as a finally-stage, writes them:
//
//	r := router.New()
//	r.Finally(response.ErrorResponder(log))
//	r.Get("/items/:id", func(ctx *handler.Context) error {
//		item, ok := items[ctx.Param("id")]
//		if !ok {
//			return response.ErrNotFound.WithMessage("item not found")
//		}
//		return ctx.Reply.JSON(item)
//	})
//
// A missing item then produces
//
//	HTTP/1.1 404 Not Found
//	{"error":{"code":"not_found","message":"item not found"}}
//
// Errors that are not HTTPError map to the predefined error for their
// StatusCode(), or to ErrInternalServerError.
package response
