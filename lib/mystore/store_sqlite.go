package mystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// record is one stored entity, JSON-serialized. A single schema-free table keeps
// the local database as permissive as the datastore backend.
type record struct {
	Kind string `gorm:"primaryKey"`
	UID  string `gorm:"primaryKey"`
	Data []byte
}

// sqliteStore is the local durable backend. The database file is shared state at
// the process boundary: other local processes may read and write it concurrently,
// so nothing in here assumes exclusive ownership.
type sqliteStore[T any] struct {
	db   *gorm.DB
	kind string
}

func newSqliteStore[T any](c context.Context, filename string) (*sqliteStore[T], func(), error) {
	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error opening local database %s: %s", filename, err)
	}

	err = db.AutoMigrate(&record{})
	if err != nil {
		return nil, nil, fmt.Errorf("error migrating local database %s: %s", filename, err)
	}

	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}

	return &sqliteStore[T]{
			db:   db,
			kind: kind,
		}, func() {
			sqlDB, err := db.DB()
			if err == nil {
				sqlDB.Close()
			}
		}, nil
}

func (s *sqliteStore[T]) conn(c context.Context) *gorm.DB {
	transaction := c.Value(ctxTransactionKey{})
	if tx, ok := transaction.(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(c)
}

func (s *sqliteStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return s.db.WithContext(c).Transaction(func(tx *gorm.DB) error {
		// Shadow original context with new transactional context
		return f(context.WithValue(c, ctxTransactionKey{}, tx))
	})
}

func (s *sqliteStore[T]) Put(c context.Context, uid string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error serializing entity %s with uid %s: %s", s.kind, uid, err)
	}

	err = s.conn(c).Clauses(clause.OnConflict{UpdateAll: true}).Create(&record{
		Kind: s.kind,
		UID:  uid,
		Data: data,
	}).Error
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *sqliteStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	rec := record{}
	err := s.conn(c).First(&rec, "kind = ? AND uid = ?", s.kind, uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return *value, false, nil
		}
		return *value, false, fmt.Errorf("error fetching entity %s with uid %s: %s", s.kind, uid, err)
	}

	err = json.Unmarshal(rec.Data, value)
	if err != nil {
		return *value, false, fmt.Errorf("error deserializing entity %s with uid %s: %s", s.kind, uid, err)
	}

	return *value, true, nil
}

func (s *sqliteStore[T]) Delete(c context.Context, uid string) error {
	err := s.conn(c).Delete(&record{}, "kind = ? AND uid = ?", s.kind, uid).Error
	if err != nil {
		return fmt.Errorf("error deleting entity %s with uid %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *sqliteStore[T]) List(c context.Context) ([]T, error) {
	recs := []record{}
	err := s.conn(c).Find(&recs, "kind = ?", s.kind).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching all entities %s: %s", s.kind, err)
	}

	result := make([]T, 0, len(recs))
	for _, rec := range recs {
		value := new(T)
		err = json.Unmarshal(rec.Data, value)
		if err != nil {
			return nil, fmt.Errorf("error deserializing entity %s with uid %s: %s", s.kind, rec.UID, err)
		}
		result = append(result, *value)
	}

	return result, nil
}

func (s *sqliteStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	// The local backend does not index on entity fields, so filter and order
	// in memory after fetching everything of this kind
	items, err := s.List(c)
	if err != nil {
		return nil, err
	}

	return filterAndOrder(items, filters, orderByField)
}
