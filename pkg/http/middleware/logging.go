package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "SwingSignal/pkg/logger"
)

// RequestLogging logs one line per request at debug, or at warn for 4xx.
func RequestLogging(log *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("route", c.Path()),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote_ip", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("latency", time.Since(start)),
			}
			if res.Status >= 400 && res.Status < 500 {
				log.Warn("http request", fields...)
			} else {
				log.Debug("http request", fields...)
			}
			return nil
		}
	}
}
