package kv

import (
	"context"
	"database/sql/driver"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Document is a raw JSON value column: JSONB on postgres, TEXT elsewhere.
// A sqlite JSON column has numeric affinity and would store 42 as an INTEGER.
type Document []byte

func (Document) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}

func (d Document) Value() (driver.Value, error) {
	return datatypes.JSON(d).Value()
}

func (d *Document) Scan(src any) error {
	var j datatypes.JSON
	if err := j.Scan(src); err != nil {
		return err
	}
	*d = Document(j)
	return nil
}

// Record is the row layout of the SQL backend.
type Record struct {
	Key       string   `gorm:"column:kv_key;primaryKey;size:512"`
	Value     Document `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of naming strategy.
func (Record) TableName() string { return "kv_store" }

// SQLStore stores entries in a single gorm-managed table. It works with the
// postgres driver in production and sqlite in development and tests.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore returns a store over db. The kv_store table must exist
// (see db.Migrate).
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("kv_key = ?", key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(s.db.WithContext(ctx), []Entry{{Key: key, Value: value}})
}

func (s *SQLStore) SetMany(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsert(tx, entries)
	})
}

func (s *SQLStore) GetByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var recs []Record
	err := s.db.WithContext(ctx).
		Where(`kv_key LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("kv_key").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	// sqlite LIKE is case-insensitive for ASCII; keep only exact prefixes.
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		if strings.HasPrefix(r.Key, prefix) {
			out = append(out, Entry{Key: r.Key, Value: []byte(r.Value)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func upsert(db *gorm.DB, entries []Entry) error {
	now := time.Now()
	recs := make([]Record, len(entries))
	for i, e := range entries {
		recs[i] = Record{Key: e.Key, Value: Document(e.Value), UpdatedAt: now}
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&recs).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
