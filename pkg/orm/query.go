// Package orm is a thin fluent wrapper over GORM. It adds the pieces the
// application layer relies on: read-through caching, offset pagination, a
// transaction (unit of work) helper, and writes that report rows affected so
// callers can implement guarded updates.
package orm

import (
	"time"

	"github.com/thanhvudev/furnimart/pkg/database"
	"gorm.io/gorm"
)

// Cacher is the minimal cache contract Query.Cache needs. pkg/app wires
// pkg/cache in at boot; keeping it an interface avoids an import cycle.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is the cache used by Query.Cache. Nil disables caching.
var CacheStore Cacher

// Query is an immutable fluent query builder bound to a *gorm.DB.
type Query struct {
	db *gorm.DB
}

// DB returns a Query bound to the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap binds a Query to an existing *gorm.DB (e.g. a transaction handle).
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for the rare call the wrapper lacks.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, args...)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row. Returns gorm.ErrRecordNotFound when
// nothing matches; callers map that to their own NotFound error.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Count returns the number of matching rows.
func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Create inserts value (struct pointer or slice).
func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

// Save upserts the full record.
func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

// Delete removes matching rows.
func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// Updates applies a column map to matching rows and returns rows affected.
// A zero return on a guarded Where is how callers detect a lost race.
func (q *Query) Updates(values map[string]interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

// Expr builds a SQL expression value for use inside Updates, e.g.
// orm.Expr("stock - ?", qty).
func Expr(sql string, args ...interface{}) interface{} {
	return gorm.Expr(sql, args...)
}

// Cache loads dest from CacheStore under key, falling back to the query and
// populating the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		CacheStore.Set(key, dest, ttl) //nolint:errcheck
	}
	return nil
}

// ErrRecordNotFound re-exports gorm's sentinel so repositories don't need a
// direct gorm import just to check it.
var ErrRecordNotFound = gorm.ErrRecordNotFound
