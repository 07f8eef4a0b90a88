package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/models"
)

type secondaryIndex struct {
	model interface{}
	name  string
}

// Indexes declared on struct fields through `index:` tags that AutoMigrate may
// have skipped on tables created before the tag existed.
var secondaryIndexes = []secondaryIndex{
	{&models.Task{}, "AssignedToID"},
	{&models.Task{}, "AssignedTeamID"},
	{&models.Task{}, "ProjectID"},
	{&models.Project{}, "OrganizationID"},
	{&models.Team{}, "OrganizationID"},
	{&models.Event{}, "ProjectID"},
	{&models.UtilityItem{}, "ProjectID"},
	{&models.Message{}, "idx_messages_thread"},
}

// AddIndexes creates any missing secondary index through the dialect-neutral migrator.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Info("created index", zap.String("index", idx.name))
	}

	return nil
}
