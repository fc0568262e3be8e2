// Package backup writes passphrase-encrypted snapshots of the wedding plan
// to a local directory on a daily schedule, and can restore a plan from one.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const filePrefix = "vivah-backup-"

// PlanSource is the slice of the plan store the backup manager needs:
// export for backing up, import for restoring.
type PlanSource interface {
	Export() ([]byte, error)
	Import(ctx context.Context, data []byte) error
}

// Config holds backup manager configuration.
type Config struct {
	Dir           string
	Hour          int
	RetentionDays int
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

// Status holds the current backup manager status.
type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"last_backup,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"in_progress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// Manager manages encrypted local backups of the plan document.
type Manager struct {
	mu       sync.RWMutex
	cfg      Config
	status   Status
	callback StatusCallback
	source   PlanSource
	logger   *slog.Logger

	passphrase string

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a backup manager. A manager without a configured
// directory is disabled and never runs.
func NewManager(cfg Config, source PlanSource, callback StatusCallback, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		source:   source,
		callback: callback,
		logger:   logger,
		status:   Status{State: StateDisabled},
	}
	if cfg.Dir != "" {
		m.status.State = StateIdle
	}
	return m
}

// CachePassphrase stores the passphrase used by scheduled backups. It is
// held in memory only.
func (m *Manager) CachePassphrase(passphrase string) {
	m.mu.Lock()
	m.passphrase = passphrase
	m.mu.Unlock()
}

// HasCachedPassphrase reports whether scheduled backups can run.
func (m *Manager) HasCachedPassphrase() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.passphrase != ""
}

// Status returns the current backup manager status.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

// Start begins the scheduled backup loop.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.status.State == StateDisabled {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	m.mu.Unlock()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.checkSchedule(ctx)
			}
		}
	}()
}

// Stop gracefully stops the backup manager.
func (m *Manager) Stop() {
	m.mu.RLock()
	cancel := m.cancel
	done := m.done
	m.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (m *Manager) checkSchedule(ctx context.Context) {
	now := time.Now()

	m.mu.RLock()
	hour := m.cfg.Hour
	passphrase := m.passphrase
	retention := m.cfg.RetentionDays
	m.mu.RUnlock()

	if now.Hour() != hour || now.Minute() != 0 {
		return
	}
	if passphrase == "" {
		m.logger.Info("skipping scheduled backup, no cached passphrase")
		return
	}

	if _, err := m.Run(ctx, passphrase); err != nil {
		m.logger.Error("scheduled backup failed", "error", err)
	}

	if retention <= 0 {
		retention = 30
	}
	if err := m.Cleanup(retention); err != nil {
		m.logger.Error("backup cleanup failed", "error", err)
	}
}

// Run takes one encrypted backup and returns the file path written.
func (m *Manager) Run(ctx context.Context, passphrase string) (string, error) {
	m.mu.RLock()
	dir := m.cfg.Dir
	m.mu.RUnlock()
	if dir == "" {
		return "", fmt.Errorf("backup directory not configured")
	}

	m.setStatus(Status{State: StateRunning, InProgress: true, LastBackup: m.Status().LastBackup})

	path, err := m.runBackup(passphrase, dir)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error(), LastBackup: m.Status().LastBackup})
		return "", err
	}

	now := time.Now()
	m.setStatus(Status{State: StateIdle, LastBackup: &now})
	m.logger.Info("backup written", "path", path)
	return path, nil
}

func (m *Manager) runBackup(passphrase, dir string) (string, error) {
	data, err := m.source.Export()
	if err != nil {
		return "", fmt.Errorf("export plan: %w", err)
	}

	encrypted, err := Encrypt(data, passphrase)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := filePrefix + time.Now().Format("20060102-150405") + ".json.enc"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encrypted, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// Restore decrypts a backup file and replaces the current plan with it,
// subject to the same structural validation as a regular import.
func (m *Manager) Restore(ctx context.Context, path, passphrase string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	plaintext, err := Decrypt(data, passphrase)
	if err != nil {
		return err
	}

	if err := m.source.Import(ctx, plaintext); err != nil {
		return fmt.Errorf("restore plan: %w", err)
	}
	return nil
}

// Cleanup removes backup files older than the retention window.
func (m *Manager) Cleanup(retentionDays int) error {
	m.mu.RLock()
	dir := m.cfg.Dir
	m.mu.RUnlock()
	if dir == "" {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read backup dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				m.logger.Warn("remove old backup", "file", entry.Name(), "error", err)
			}
		}
	}
	return nil
}
