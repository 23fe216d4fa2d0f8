package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	cipherDomain "github.com/allisson/reptend/internal/cipher/domain"
)

// memoryRepository is an in-memory CipherKeyRepository used by the end-to-end test.
type memoryRepository struct {
	mu   sync.Mutex
	keys []*cipherDomain.CipherKey
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, cipherKey *cipherDomain.CipherKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k.Name == cipherKey.Name && k.Version == cipherKey.Version {
			return cipherDomain.ErrCipherKeyAlreadyExists
		}
	}
	r.keys = append(r.keys, cipherKey)
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, cipherKeyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k.ID == cipherKeyID {
			now := time.Now().UTC()
			k.DeletedAt = &now
		}
	}
	return nil
}

func (r *memoryRepository) GetByName(_ context.Context, name string) (*cipherDomain.CipherKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *cipherDomain.CipherKey
	for _, k := range r.keys {
		if k.Name != name || k.DeletedAt != nil {
			continue
		}
		if latest == nil || k.Version > latest.Version {
			latest = k
		}
	}
	if latest == nil {
		return nil, cipherDomain.ErrCipherKeyNotFound
	}
	return latest, nil
}

func (r *memoryRepository) GetByNameAndVersion(
	_ context.Context,
	name string,
	version uint,
) (*cipherDomain.CipherKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k.Name == name && k.Version == version && k.DeletedAt == nil {
			return k, nil
		}
	}
	return nil, cipherDomain.ErrCipherKeyNotFound
}

func (r *memoryRepository) LatestVersion(_ context.Context, name string) (uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest uint
	for _, k := range r.keys {
		if k.Name == name && k.Version > latest {
			latest = k.Version
		}
	}
	return latest, nil
}

func (r *memoryRepository) List(_ context.Context, offset, limit int) ([]*cipherDomain.CipherKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	live := make([]*cipherDomain.CipherKey, 0, len(r.keys))
	for _, k := range r.keys {
		if k.DeletedAt == nil {
			live = append(live, k)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].Name != live[j].Name {
			return live[i].Name < live[j].Name
		}
		return live[i].Version > live[j].Version
	})
	if offset >= len(live) {
		return []*cipherDomain.CipherKey{}, nil
	}
	return live[offset:min(offset+limit, len(live))], nil
}
