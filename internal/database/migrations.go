package database

import (
	"fmt"

	"github.com/tasktrack/tasktrack-api/internal/logging"
	"gorm.io/gorm"
)

// AddIndexes adds query-path indexes. Tasks are always scoped by owner, the
// dashboard filters on due date and status, and recent-task reads sort by
// creation time.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"tasks", "idx_tasks_user_id", "user_id"},
		{"tasks", "idx_tasks_due_date", "due_date"},
		{"tasks", "idx_tasks_status", "status"},
		{"tasks", "idx_tasks_created_at", "created_at"},
		{"subtasks", "idx_subtasks_task_id", "task_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.L().Info().
			Str("index", idx.name).
			Str("table", idx.table).
			Msg("created index")
	}

	return nil
}
