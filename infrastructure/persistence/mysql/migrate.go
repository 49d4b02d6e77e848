package mysql

import (
	"gorm.io/gorm"

	"github.com/quickbite/order-service/infrastructure/persistence/mysql/po"
)

// AutoMigrate creates or updates the schema. Meant for development;
// production schemas are managed by migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.OrderPO{},
		&po.OrderComboItemPO{},
		&po.OutboxEventPO{},
	)
}
