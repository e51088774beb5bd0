// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genre

import "context"

// Repository is the Genre Store. Lookups by name compare matching keys, not
// raw spelling.
//
// Absent rows are reported as apperr NOT_FOUND errors.
type Repository interface {
	List(context context.Context) ([]*Genre, error)
	FindByID(context context.Context, id string) (*Genre, error)
	FindByName(context context.Context, name string) (*Genre, error)

	// Create inserts genre. A name whose key is taken fails with a conflict.
	Create(context context.Context, genre *Genre) error

	// GetOrCreateByName returns the genre whose key matches candidate.Name,
	// inserting candidate when there is none. created reports the insert.
	GetOrCreateByName(context context.Context, candidate *Genre) (genre *Genre, created bool, err error)

	Delete(context context.Context, id string) error
}
