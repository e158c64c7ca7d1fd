package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// WithRequest returns an app logger entry annotated with the request
// metadata so log lines can be traced back to one HTTP call.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	return GetAppLogger().WithFields(logrus.Fields{
		"method":    c.Method(),
		"path":      c.Path(),
		"ip":        c.IP(),
		"requestId": requestid.FromContext(c),
	})
}
