package db

import (
	"asset-custody/internal/domain/assignment"
	"asset-custody/internal/domain/audit"
	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/request"
	"asset-custody/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&product.Product{},
		&product.InvoiceLine{},
		&assignment.Assignment{},
		&request.Request{},
		&audit.Record{},
	}
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(Models()...)
}
