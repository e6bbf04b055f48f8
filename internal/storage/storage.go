// Package storage defines where stored user records come from.
package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/rgehrsitz/pensionproj/internal/domain"
)

// SnapshotSource looks up the stored records for a user. Missing records come back as
// nil fields, never as an error; an unknown user yields empty records.
type SnapshotSource interface {
	LookupUser(ctx context.Context, userID string) (domain.UserRecords, error)
}

// MemorySource is an in-process SnapshotSource.
type MemorySource struct {
	mu    sync.RWMutex
	users map[string]domain.UserRecords
}

// NewMemorySource creates a source seeded with records keyed by profile user id.
func NewMemorySource(records ...domain.UserRecords) *MemorySource {
	m := &MemorySource{users: make(map[string]domain.UserRecords, len(records))}
	for _, r := range records {
		m.Put(r)
	}
	return m
}

// Put stores records under their profile's user id. Records without a profile are
// ignored.
func (m *MemorySource) Put(r domain.UserRecords) {
	if r.Profile == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[strings.TrimSpace(r.Profile.UserID)] = r
}

// LookupUser implements SnapshotSource.
func (m *MemorySource) LookupUser(ctx context.Context, userID string) (domain.UserRecords, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserRecords{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[strings.TrimSpace(userID)], nil
}
