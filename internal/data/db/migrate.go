package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/coachplan-backend/internal/domain"
)

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

// AutoMigrateAll creates or updates every persisted table. Shared with the
// repo test harness so tests migrate the same schema the server runs on.
func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.TrainingPlan{},
	)
}
