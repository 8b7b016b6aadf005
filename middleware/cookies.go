package middleware

import "github.com/dmitrymomot/waypoint/core/handler"

// Cookies parses the Cookie header into ctx.Cookies. When a name appears
// more than once the first value wins.
func Cookies() handler.BeforeFunc {
	return func(ctx *handler.Context, next handler.Next) error {
		parsed := ctx.Request().Cookies()
		cookies := make(map[string]string, len(parsed))
		for _, c := range parsed {
			if _, ok := cookies[c.Name]; !ok {
				cookies[c.Name] = c.Value
			}
		}
		ctx.Cookies = cookies

		next(ctx)
		return nil
	}
}
