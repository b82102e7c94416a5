package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/themesmith/internal/config"
)

const backupJobName = "theme_backup"

// Exporter produces a full backup of the theme store.
type Exporter interface {
	ExportAll() ([]byte, error)
}

func BackupFileName(at time.Time) string {
	return fmt.Sprintf("themes-%d.json", at.Unix())
}

// WriteBackup writes one export into dir and returns the file path. The file
// appears atomically under its final name.
func WriteBackup(dir string, exporter Exporter, at time.Time) (string, error) {
	data, err := exporter.ExportAll()
	if err != nil {
		return "", fmt.Errorf("export themes: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".themes-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write backup file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}

	path := filepath.Join(dir, BackupFileName(at))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("finalize backup file: %w", err)
	}
	return path, nil
}

// RegisterBackupJob schedules periodic store exports. It does nothing when
// backups are disabled.
func RegisterBackupJob(svc *Service, cfg config.BackupConfig, exporter Exporter) (gocron.Job, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if exporter == nil {
		return nil, fmt.Errorf("backup job requires a theme store")
	}

	jobLogger := log.With().
		Str("component", "theme_backup_job").
		Str("directory", cfg.Directory).
		Logger()

	return svc.AddJob(backupJobName, cfg.Schedule, func() error {
		path, err := WriteBackup(cfg.Directory, exporter, time.Now().UTC())
		if err != nil {
			return err
		}
		jobLogger.Info().Str("path", path).Msg("Theme backup written")
		return nil
	})
}
