// ABOUTME: Persisted credential record for session restore across runs
// ABOUTME: Stores bearer token and cached profile in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/evmarket/evmarket-cli/internal/api"
)

// Record is the persisted session: the bearer token plus the cached user
// profile it belongs to.
type Record struct {
	Token string    `json:"token"`
	User  *api.User `json:"user,omitempty"`
}

// CredStore reads and writes the credential file. It also serves as the
// api.TokenSource for the transport: the token it holds in memory is the one
// attached to authenticated requests. All mutation goes through the session
// Store's operations.
type CredStore struct {
	configDir string

	mu     sync.RWMutex
	loaded bool
	rec    Record
}

// NewCredStore creates a credential store rooted at the given config
// directory.
func NewCredStore(configDir string) *CredStore {
	return &CredStore{configDir: configDir}
}

func (cs *CredStore) credFile() string {
	return filepath.Join(cs.configDir, "session.json")
}

// Token implements api.TokenSource. Loads lazily so a public call issued
// before Restore still carries a previously persisted token.
func (cs *CredStore) Token() string {
	cs.mu.RLock()
	if cs.loaded {
		defer cs.mu.RUnlock()
		return cs.rec.Token
	}
	cs.mu.RUnlock()

	rec, _ := cs.Load()
	return rec.Token
}

// Load reads the credential file. A missing or corrupt file yields an empty
// record, never an error the caller must branch on to stay alive.
func (cs *CredStore) Load() (Record, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	data, err := os.ReadFile(cs.credFile())
	if os.IsNotExist(err) {
		cs.rec = Record{}
		cs.loaded = true
		return cs.rec, nil
	}
	if err != nil {
		cs.rec = Record{}
		cs.loaded = true
		return cs.rec, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// Corrupt file, start anonymous
		cs.rec = Record{}
		cs.loaded = true
		return cs.rec, nil
	}

	cs.rec = rec
	cs.loaded = true
	return cs.rec, nil
}

// Save writes the record to disk and updates the in-memory copy. The file
// holds a credential, so it is not group or world readable.
func (cs *CredStore) Save(rec Record) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := os.MkdirAll(cs.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(cs.credFile(), data, 0600); err != nil {
		return err
	}

	cs.rec = rec
	cs.loaded = true
	return nil
}

// Clear deletes the credential file and forgets the in-memory record.
func (cs *CredStore) Clear() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.rec = Record{}
	cs.loaded = true

	err := os.Remove(cs.credFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
