package database

import (
	"context"

	"github.com/rs/zerolog/log"
)

// HealthCheck runs a trivial round-trip query against the database.
func (m *Manager) HealthCheck() Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return Result{
			Status:  StatusError,
			Message: "Database health check failed: no active connection",
			Data:    &HealthPayload{Healthy: false},
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.opTimeout)
	defer cancel()

	var one int
	if err := m.conn.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return Result{
			Status:  StatusError,
			Message: "Database health check failed: " + err.Error(),
			Data:    &HealthPayload{Healthy: false},
		}
	}

	return success("Database health check passed", &HealthPayload{Healthy: true})
}
