package middleware

import (
	"time"

	"shopapi/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics はリクエスト数・所要時間・エラー数を記録する。
// mがnilなら素通し。
func Metrics(m *metrics.AppMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.RecordRequest(c.Request().Context(), c.Request().Method, c.Path(), status, elapsed)
			return err
		}
	}
}
