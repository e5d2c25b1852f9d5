package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
)

const readinessTimeout = 2 * time.Second

// RegisterHealthRoutes wires liveness and readiness probes. rdb is nil when
// the deployment runs the in-memory login limiter.
func RegisterHealthRoutes(app fiber.Router, sqlDB *sql.DB, rdb *goredis.Client) {
	app.Get("/livez", LivezHandler())
	app.Get("/readyz", ReadyzHandler(sqlDB, rdb))
}

func LivezHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	}
}

func ReadyzHandler(sqlDB *sql.DB, rdb *goredis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
		defer cancel()

		checks := fiber.Map{}
		ready := true

		pgStatus := "ok"
		if err := sqlDB.PingContext(ctx); err != nil {
			pgStatus = "down"
			ready = false
		}
		checks["postgres"] = pgStatus

		if rdb != nil {
			redisStatus := "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisStatus = "down"
				ready = false
			}
			checks["redis"] = redisStatus
		}

		status := "ready"
		statusCode := fiber.StatusOK
		if !ready {
			status = "not_ready"
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
