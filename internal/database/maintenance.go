package database

import "fmt"

// Optimize runs SQLite's PRAGMA optimize to refresh planner stats. Unlike
// the operation surface this is internal plumbing for the maintenance
// scheduler, so it returns a plain error.
func (m *Manager) Optimize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return fmt.Errorf("database not initialized")
	}

	if _, err := m.conn.Exec("PRAGMA optimize"); err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}

	return nil
}

// Vacuum rebuilds the database file to reclaim unused space.
func (m *Manager) Vacuum() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return fmt.Errorf("database not initialized")
	}

	if _, err := m.conn.Exec("VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	return nil
}
