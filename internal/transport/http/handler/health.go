package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogql/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type probeResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check pings every backing service the blog depends on. Any failing probe
// turns the endpoint 503 so the load balancer stops routing here.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	probes := map[string]func(context.Context) error{
		"mysql":    h.pingMySQL,
		"redis":    h.pingRedis,
		"rabbitmq": h.pingRabbitMQ,
	}

	deps := gin.H{}
	status := http.StatusOK
	for name, probe := range probes {
		if err := probe(ctx); err != nil {
			deps[name] = probeResult{Message: err.Error()}
			status = http.StatusServiceUnavailable
			continue
		}
		deps[name] = probeResult{OK: true}
	}

	c.JSON(status, gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
	})
}

func (h *HealthHandler) pingMySQL(ctx context.Context) error {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *HealthHandler) pingRedis(ctx context.Context) error {
	return h.app.Redis.Ping(ctx).Err()
}

func (h *HealthHandler) pingRabbitMQ(context.Context) error {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return errors.New("connection closed")
	}
	return nil
}
