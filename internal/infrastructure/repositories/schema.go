package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ensureTable creates the table for model when it is absent. For an existing
// table it adds the listed fields and named indexes that are missing, so
// tables created by older deployments converge on the current layout.
func ensureTable(ctx context.Context, db *gorm.DB, model interface{}, fields, indexes []string) error {
	m := db.WithContext(ctx).Migrator()
	if !m.HasTable(model) {
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
		return nil
	}

	for _, field := range fields {
		if m.HasColumn(model, field) {
			continue
		}
		if err := m.AddColumn(model, field); err != nil {
			return fmt.Errorf("failed to add column %s: %w", field, err)
		}
	}

	for _, index := range indexes {
		if m.HasIndex(model, index) {
			continue
		}
		if err := m.CreateIndex(model, index); err != nil {
			return fmt.Errorf("failed to create index %s: %w", index, err)
		}
	}
	return nil
}
