package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
)

// MasterKey is the caller-owned secret the cipher derives per-message keys from and
// authenticates payloads with. It is loaded from configuration and never persisted.
type MasterKey struct {
	ID  string
	Key []byte
}

// KMSKeeper unwraps master keys stored as KMS ciphertexts. *secrets.Keeper from
// gocloud.dev/secrets satisfies it.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterKeyChain holds the loaded master keys with one designated as active.
// New cipher keys are bound to the active master key; existing cipher keys keep
// resolving the master key they were created with.
type MasterKeyChain struct {
	activeID string
	keys     sync.Map
}

// NewMasterKeyChain builds a chain from already-decoded keys.
func NewMasterKeyChain(activeID string, keys ...*MasterKey) *MasterKeyChain {
	mkc := &MasterKeyChain{activeID: activeID}
	for _, key := range keys {
		mkc.keys.Store(key.ID, key)
	}
	return mkc
}

// ActiveMasterKeyID returns the ID of the currently active master key.
func (m *MasterKeyChain) ActiveMasterKeyID() string {
	return m.activeID
}

// Get retrieves a master key by ID.
func (m *MasterKeyChain) Get(id string) (*MasterKey, bool) {
	if masterKey, ok := m.keys.Load(id); ok {
		return masterKey.(*MasterKey), ok
	}

	return nil, false
}

// Active returns the active master key.
func (m *MasterKeyChain) Active() (*MasterKey, error) {
	mk, ok := m.Get(m.activeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActiveMasterKeyNotFound, m.activeID)
	}
	return mk, nil
}

// Close zeroes all key material and empties the chain.
func (m *MasterKeyChain) Close() {
	m.keys.Range(func(_, value any) bool {
		if mk, ok := value.(*MasterKey); ok {
			Zero(mk.Key)
		}
		return true
	})
	m.activeID = ""
	m.keys.Clear()
}

// LoadMasterKeyChain parses a MASTER_KEYS value. When keeper is non-nil every entry
// is a base64 KMS ciphertext that is unwrapped through the keeper before use.
// On any error the partially built chain is zeroed.
func LoadMasterKeyChain(ctx context.Context, raw, active string, keeper KMSKeeper) (*MasterKeyChain, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMasterKeysNotSet
	}
	if active == "" {
		return nil, ErrActiveMasterKeyIDNotSet
	}

	mkc := &MasterKeyChain{activeID: active}

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			mkc.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidMasterKeysFormat, part)
		}
		id := p[0]

		key, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			mkc.Close()
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidMasterKeyBase64, id, err)
		}

		if keeper != nil {
			wrapped := key
			key, err = keeper.Decrypt(ctx, wrapped)
			if err != nil {
				mkc.Close()
				return nil, fmt.Errorf("%w for %s: %v", ErrKMSDecryptionFailed, id, err)
			}
		}

		if len(key) != MasterKeySize {
			Zero(key)
			mkc.Close()
			return nil, fmt.Errorf(
				"%w: master key %s must be %d bytes, got %d",
				ErrInvalidKeySize,
				id,
				MasterKeySize,
				len(key),
			)
		}
		mkc.keys.Store(id, &MasterKey{ID: id, Key: key})
	}

	if _, ok := mkc.Get(active); !ok {
		mkc.Close()
		return nil, fmt.Errorf("%w: ACTIVE_MASTER_KEY_ID=%s", ErrActiveMasterKeyNotFound, active)
	}

	return mkc, nil
}
