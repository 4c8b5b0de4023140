package orm

import (
	"github.com/thanhvudev/furnimart/pkg/database"
	"gorm.io/gorm"
)

// UnitOfWork runs a function inside a single all-or-nothing transaction.
// Services depend on this interface so tests can substitute a pass-through.
type UnitOfWork interface {
	// Transaction runs fn inside a transaction; a non-nil error rolls back
	// every write performed through the supplied Query.
	Transaction(fn func(tx *Query) error) error
}

// GormUnitOfWork is the production UnitOfWork bound to the global DB.
type GormUnitOfWork struct{}

// NewUnitOfWork returns a UnitOfWork backed by the global connection.
func NewUnitOfWork() *GormUnitOfWork { return &GormUnitOfWork{} }

func (GormUnitOfWork) Transaction(fn func(tx *Query) error) error {
	return database.DB.Transaction(func(g *gorm.DB) error {
		return fn(Wrap(g))
	})
}
