package catalog

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrTableNotFound is returned by the table inspection operations when the
// requested table does not exist.
var ErrTableNotFound = errors.New("table not found")

// Service exposes the catalog operations behind the HTTP and CLI surfaces.
type Service struct {
	db     *gorm.DB
	sync   *Synchronizer
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, sync *Synchronizer, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		sync:   sync,
		logger: logger,
	}
}

// ListKinds returns all entity kinds in sync order.
func (s *Service) ListKinds() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return names
}

// TableDDL renders the creation DDL for a kind, in the connected database's
// dialect.
func (s *Service) TableDDL(name string) (string, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return "", err
	}
	dialect, err := dialectOf(s.db)
	if err != nil {
		return "", err
	}
	return TableDDL(kind, dialect)
}

// DiffDDL renders the statements needed to reconcile a kind's live table
// with its expected shape.
func (s *Service) DiffDDL(name string) (string, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return "", err
	}
	return DiffDDL(s.db, kind)
}

// SyncAll syncs every kind and returns per-kind row counts.
func (s *Service) SyncAll(ctx context.Context) (map[Kind]int, error) {
	return s.sync.SyncAll(ctx)
}

// SyncOne syncs a single kind.
func (s *Service) SyncOne(ctx context.Context, name string) (int, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return 0, err
	}
	return s.sync.SyncOne(ctx, kind)
}

// ListColumns returns the live column definitions of any table, not just
// the catalog's own. Missing tables surface as ErrTableNotFound.
func (s *Service) ListColumns(table string) ([]database.ColumnInfo, error) {
	exists, err := database.HasTable(s.db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, table)
	}
	return database.TableColumns(s.db, table)
}

// IsUniqueColumn reports whether a column is covered by a unique index.
func (s *Service) IsUniqueColumn(table, column string) (bool, error) {
	exists, err := database.HasTable(s.db, table)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("%w: %q", ErrTableNotFound, table)
	}
	return database.IsUniqueIndexMember(s.db, table, column)
}
