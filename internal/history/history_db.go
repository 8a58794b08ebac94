package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one previously browsed contract.
type Entry struct {
	ID         int64
	Address    string
	Label      string
	LCD        string
	ModelCount int
	BrowsedAt  time.Time
}

// Manager persists the browse history in SQLite.
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the history database.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contracts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		address TEXT NOT NULL,
		label TEXT,
		lcd TEXT NOT NULL,
		model_count INTEGER NOT NULL,
		browsed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_browsed_at ON contracts(browsed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_contracts_address ON contracts(address);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Save records a successfully loaded contract.
func (m *Manager) Save(address, label, lcdEndpoint string, modelCount int) error {
	query := `
		INSERT INTO contracts (address, label, lcd, model_count, browsed_at)
		VALUES (?, ?, ?, ?, ?)
	`
	timestampStr := time.Now().Local().Format("2006-01-02 15:04:05")
	if _, err := m.db.Exec(query, address, label, lcdEndpoint, modelCount, timestampStr); err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// Recent returns the most recently browsed contracts, newest first,
// deduplicated by address.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	query := `
		SELECT id, address, COALESCE(label, ''), lcd, model_count, browsed_at
		FROM contracts
		WHERE id IN (SELECT MAX(id) FROM contracts GROUP BY address)
		ORDER BY browsed_at DESC, id DESC
		LIMIT ?
	`
	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var browsedAt string
		if err := rows.Scan(&e.ID, &e.Address, &e.Label, &e.LCD, &e.ModelCount, &browsedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if ts, err := time.ParseInLocation("2006-01-02 15:04:05", browsedAt, time.Local); err == nil {
			e.BrowsedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every history entry.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM contracts`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}
