package server

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	_ "github.com/lib/pq"
)

// BuildStore persists build records.
type BuildStore interface {
	Save(ctx context.Context, b *Build) error
	List(ctx context.Context, limit int) ([]Build, error)
	// Ping should check if the database is reachable.
	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore opens a build history database. dbType is "sqlite" or
// "postgres"; connstr is dialect-specific (":memory:" or a file path
// for sqlite, a conninfo string for postgres).
func NewStore(dbType, connstr string) (BuildStore, error) {
	dialect := dbType
	if dialect == "sqlite" {
		dialect = "sqlite3"
	}

	db, err := gorm.Open(dialect, connstr)
	if err != nil {
		return nil, fmt.Errorf("error opening %s database: %w", dbType, err)
	}

	db.AutoMigrate(&Build{})

	return &gormStore{db: db}, nil
}

func NewPGConnString(host, port, name, user, passwd, ssl string) string {
	connstr := "host=%s port=%s dbname=%s user=%s password=%s"
	connstr = connstr + " sslmode=%s connect_timeout=1"
	return fmt.Sprintf(connstr,
		host, port, name,
		user, passwd, ssl,
	)
}

func (s *gormStore) Save(_ context.Context, b *Build) error {
	if err := s.db.Save(b).Error; err != nil {
		return fmt.Errorf("error saving build record: %w", err)
	}
	return nil
}

func (s *gormStore) List(_ context.Context, limit int) ([]Build, error) {
	if limit < 1 {
		limit = 50
	}

	var builds []Build
	err := s.db.Order("id desc").Limit(limit).Find(&builds).Error
	if err != nil {
		return nil, fmt.Errorf("error listing build records: %w", err)
	}

	return builds, nil
}

func (s *gormStore) Ping(_ context.Context) error {
	return s.db.DB().Ping()
}
