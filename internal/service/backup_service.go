package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ccrm-api/pkg/config"
	appErrors "github.com/noah-isme/ccrm-api/pkg/errors"
)

const backupStampLayout = "20060102_150405"

// BackupService snapshots the export folder into timestamped backup
// directories and reports on what is stored there.
type BackupService struct {
	exportDir string
	backupDir string
	logger    *zap.Logger
}

// NewBackupService constructs the backup subsystem.
func NewBackupService(folders config.FolderConfig, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{exportDir: folders.Export, backupDir: folders.Backup, logger: logger}
}

// CreateBackup copies every regular file at the top level of the export
// folder into a new backup_<yyyyMMdd_HHmmss> directory, overwriting on
// name collision. Per-file copy failures are logged and skipped; the
// remaining files are still copied. Returns the backup directory path.
func (s *BackupService) CreateBackup(ctx context.Context) (string, error) {
	target := filepath.Join(s.backupDir, "backup_"+time.Now().Format(backupStampLayout))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create backup folder")
	}
	entries, err := os.ReadDir(s.exportDir)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export folder")
	}
	copied := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		src := filepath.Join(s.exportDir, entry.Name())
		dst := filepath.Join(target, entry.Name())
		if err := copyFile(src, dst); err != nil {
			s.logger.Warn("backup copy failed",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		copied++
	}
	s.logger.Info("backup created", zap.String("path", target), zap.Int("files", copied))
	return target, nil
}

// BackupSize recursively sums the file sizes under the backup folder.
// A missing folder reports zero rather than an error.
func (s *BackupService) BackupSize(ctx context.Context) (int64, error) {
	if _, err := os.Stat(s.backupDir); os.IsNotExist(err) {
		return 0, nil
	}
	var total int64
	err := filepath.WalkDir(s.backupDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to walk backup folder")
	}
	return total, nil
}

// ListFilesByDepth walks the directory tree under root, returning one
// line per entry indented proportionally to its depth. Descent stops at
// maxDepth levels without error. An empty root defaults to the backup
// folder.
func (s *BackupService) ListFilesByDepth(ctx context.Context, root string, maxDepth int) ([]string, error) {
	if root == "" {
		root = s.backupDir
	}
	if maxDepth < 1 {
		return []string{}, nil
	}
	lines := make([]string, 0)
	if err := s.listLevel(root, 1, maxDepth, &lines); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list directory tree")
	}
	return lines, nil
}

func (s *BackupService) listLevel(dir string, depth, maxDepth int, lines *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth-1)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			*lines = append(*lines, fmt.Sprintf("%s%s/", indent, name))
			if depth < maxDepth {
				if err := s.listLevel(filepath.Join(dir, name), depth+1, maxDepth, lines); err != nil {
					return err
				}
			}
			continue
		}
		*lines = append(*lines, indent+name)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close() //nolint:errcheck
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	defer out.Close() //nolint:errcheck
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy contents: %w", err)
	}
	return nil
}
