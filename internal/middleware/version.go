package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/utils"
)

// APIVersion is the only version the tracker API serves.
const APIVersion = "1.0.0"

// VersionMiddleware reads the X-Api-Version header, rejects versions the
// API does not serve, and echoes the version on the response.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := strings.TrimSpace(c.Get("X-Api-Version", APIVersion))

		// Support version aliases
		if version == "1" || version == "1.0" {
			version = APIVersion
		}

		if version != APIVersion {
			return utils.ErrorResponse(c, "unsupported API version "+version, fiber.StatusBadRequest, "version")
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
