package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ccrm-api/pkg/config"
)

func newBackupFixture(t *testing.T) (*BackupService, config.FolderConfig) {
	t.Helper()
	root := t.TempDir()
	folders := config.FolderConfig{
		Data:   filepath.Join(root, "data"),
		Export: filepath.Join(root, "exports"),
		Backup: filepath.Join(root, "backups"),
	}
	require.NoError(t, os.MkdirAll(folders.Export, 0o755))
	return NewBackupService(folders, nil), folders
}

func TestCreateBackupCopiesExports(t *testing.T) {
	ctx := context.Background()
	svc, folders := newBackupFixture(t)

	require.NoError(t, os.WriteFile(filepath.Join(folders.Export, "students.csv"), []byte("id\nstu-1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folders.Export, "courses.csv"), []byte("code\nCS101\n"), 0o644))
	// subdirectories are not copied
	require.NoError(t, os.MkdirAll(filepath.Join(folders.Export, "nested"), 0o755))

	target, err := svc.CreateBackup(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(target), "backup_"))

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"students.csv", "courses.csv"}, names)

	copied, err := os.ReadFile(filepath.Join(target, "students.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\nstu-1\n", string(copied))
}

func TestBackupSizeMissingFolder(t *testing.T) {
	svc, _ := newBackupFixture(t)

	size, err := svc.BackupSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestBackupSizeSumsRecursively(t *testing.T) {
	ctx := context.Background()
	svc, folders := newBackupFixture(t)

	nested := filepath.Join(folders.Backup, "backup_20250101_120000", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(folders.Backup, "backup_20250101_120000", "a.csv"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "b.csv"), make([]byte, 20), 0o644))

	size, err := svc.BackupSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(30), size)
}

func TestListFilesByDepth(t *testing.T) {
	ctx := context.Background()
	svc, folders := newBackupFixture(t)

	level1 := filepath.Join(folders.Backup, "backup_20250101_120000")
	level2 := filepath.Join(level1, "deep")
	require.NoError(t, os.MkdirAll(level2, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(level1, "a.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(level2, "b.csv"), []byte("y"), 0o644))

	lines, err := svc.ListFilesByDepth(ctx, "", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"backup_20250101_120000/",
		"  a.csv",
		"  deep/",
		"    b.csv",
	}, lines)

	// depth 1 lists only the top level and does not descend
	lines, err = svc.ListFilesByDepth(ctx, "", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"backup_20250101_120000/"}, lines)

	// non-positive depth yields nothing
	lines, err = svc.ListFilesByDepth(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
