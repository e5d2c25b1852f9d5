package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
)

type stubConnector struct {
	pingErr error
}

func (c stubConnector) Connect(context.Context) (driver.Conn, error) {
	return stubConn(c), nil
}

func (c stubConnector) Driver() driver.Driver {
	return stubDriver(c)
}

type stubDriver struct {
	pingErr error
}

func (d stubDriver) Open(string) (driver.Conn, error) {
	return stubConn(d), nil
}

type stubConn struct {
	pingErr error
}

func (c stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c stubConn) Close() error                        { return nil }
func (c stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not implemented") }
func (c stubConn) Ping(context.Context) error          { return c.pingErr }

func newHealthTestApp(t *testing.T, pgPingErr error, rdb *goredis.Client) *fiber.App {
	t.Helper()

	app := fiber.New()
	sqlDB := sql.OpenDB(stubConnector{pingErr: pgPingErr})
	t.Cleanup(func() { _ = sqlDB.Close() })

	RegisterHealthRoutes(app, sqlDB, rdb)
	return app
}

func newTestRedis(t *testing.T) *goredis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestHealthIntegration_Livez(t *testing.T) {
	t.Parallel()

	app := newHealthTestApp(t, nil, nil)

	resp, _ := performRequest(t, app, http.MethodGet, "/livez", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHealthIntegration_ReadyzAllUp(t *testing.T) {
	t.Parallel()

	app := newHealthTestApp(t, nil, newTestRedis(t))

	resp, body := performRequest(t, app, http.MethodGet, "/readyz", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var ready map[string]any
	if err := json.Unmarshal(body, &ready); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	checks, ok := ready["checks"].(map[string]any)
	if !ok {
		t.Fatalf("checks = %v, want object", ready["checks"])
	}
	if checks["postgres"] != "ok" || checks["redis"] != "ok" {
		t.Fatalf("checks = %v, want all ok", checks)
	}
}

func TestHealthIntegration_ReadyzPostgresDown(t *testing.T) {
	t.Parallel()

	app := newHealthTestApp(t, errors.New("connection refused"), nil)

	resp, body := performRequest(t, app, http.MethodGet, "/readyz", "")
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503, body=%s", resp.StatusCode, string(body))
	}

	var notReady map[string]any
	if err := json.Unmarshal(body, &notReady); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	if notReady["status"] != "not_ready" {
		t.Fatalf("status = %v, want not_ready", notReady["status"])
	}
}

func TestHealthIntegration_ReadyzWithoutRedis(t *testing.T) {
	t.Parallel()

	app := newHealthTestApp(t, nil, nil)

	resp, body := performRequest(t, app, http.MethodGet, "/readyz", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", resp.StatusCode, string(body))
	}

	var ready map[string]any
	if err := json.Unmarshal(body, &ready); err != nil {
		t.Fatalf("json unmarshal error = %v", err)
	}
	checks, ok := ready["checks"].(map[string]any)
	if !ok {
		t.Fatalf("checks = %v, want object", ready["checks"])
	}
	if _, present := checks["redis"]; present {
		t.Fatal("redis check must be omitted when no client is configured")
	}
}
