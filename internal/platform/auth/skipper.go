package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths bypass the token gate and tenant resolution.
var publicPaths = map[string]bool{
	"/health":      true,
	"/health/db":   true,
	"/metrics":     true,
	"/auth/signup": true,
	"/auth/login":  true,
	"/staff/login": true,
}

// Skipper reports whether the matched route is public. Requests that matched
// no route are skipped too so the router can answer 404.
func Skipper(c echo.Context) bool {
	if c.Path() == "" {
		return true
	}
	return IsPublicPath(c.Path())
}

func IsPublicPath(path string) bool {
	return publicPaths[path]
}
