// store.go
//
// A personal tracker for goals, habits, grinds, tasks and finances
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of lifetracker.
// lifetracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// lifetracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with lifetracker.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/localnerve/lifetracker/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Store is the data-access layer. Every exported method is one unit of work:
// it validates its input, runs inside a single database transaction when it
// writes, and returns the committed record(s) or a *types.StoreError.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// NewStore wires a store to an open connection.
func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger.With("component", "store")}
}

// DB exposes the underlying connection for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// read starts a tagged read query.
func (s *Store) read(ctx context.Context, tag string) *gorm.DB {
	return s.db.WithContext(ctx).Clauses(hints.Comment("select", "lifetracker:"+tag))
}

// write runs fn in one transaction.
func (s *Store) write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// fail normalizes err to a *types.StoreError and logs it at the level of its kind.
func (s *Store) fail(op string, err error) error {
	var se *types.StoreError
	if !errors.As(err, &se) {
		se = types.NewStorageError(op, err)
	}

	switch {
	case errors.Is(se, types.ErrNotFound):
		s.log.Warn("record not found", "op", se.Op, "detail", se.Message)
	case errors.Is(se, types.ErrValidation):
		s.log.Warn("validation failed", "op", se.Op, "detail", se.Message)
	default:
		s.log.Error("storage failure", "op", se.Op, "error", se.Err)
	}
	return se
}

// findByID loads one row by primary key id.
func findByID[T any](tx *gorm.DB, op, entity, id string) (*T, error) {
	var rec T
	err := tx.Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NewNotFoundError(op, entity, id)
	}
	if err != nil {
		return nil, types.NewStorageError(op, err)
	}
	return &rec, nil
}

// listAll returns every row of T in creation order.
func listAll[T any](q *gorm.DB) ([]T, error) {
	out := []T{}
	if err := q.Order("created_at ASC").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// mustExist fails with a not-found error unless a row of T has the given id.
func mustExist[T any](tx *gorm.DB, op, entity, id string) error {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return types.NewStorageError(op, err)
	}
	if count == 0 {
		return types.NewNotFoundError(op, entity, id)
	}
	return nil
}
