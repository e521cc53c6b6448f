// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists the blog document. The whole document is the unit
// of persistence: every read loads it in full and every write replaces it
// in full. There is no partial or incremental persistence.
package store

import "inkpress/internal/models"

// Store is the persistence contract handlers depend on. Tests substitute
// fakes; production uses the JSON file implementation in this package.
//
// Load returns a private copy of the current document; mutating it does
// not affect stored state. Update runs fn against the current document
// under the store's write lock and persists the result, making the whole
// read-modify-write cycle atomic within the process. If fn returns an
// error nothing is saved and the error is returned unchanged.
//
// Multi-process or multi-replica deployment is unsupported: the lock is
// process-local, so concurrent writers in separate processes can still
// lose updates.
type Store interface {
	Load() (*models.BlogData, error)
	Update(fn func(*models.BlogData) error) error
}
