// Package store persists the fleet's wallet records as a JSON file.
//
// The store is read whole at the start of each command and, when mutated,
// written back whole via an atomic rename. The tool assumes a single
// non-concurrent invocation; there is no file locking.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	ferrors "github.com/lugondev/solfleet/internal/errors"
)

// Record is one stored wallet: a unique name, the base58 public address, and
// the base58-encoded private key.
type Record struct {
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// Store holds the wallet list loaded from disk.
type Store struct {
	path    string
	logger  *slog.Logger
	Records []Record
}

// Open loads the wallet store at path. A missing or unparseable file is
// treated as an empty store; corruption is logged, not fatal, so a damaged
// store never blocks read-only commands.
func Open(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("wallet store unreadable, starting empty", "path", path, "error", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.Records); err != nil {
		logger.Warn("wallet store corrupt, starting empty", "path", path, "error", err)
		s.Records = nil
	}
	return s
}

// Path returns the file the store reads from and writes to.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of stored wallets.
func (s *Store) Len() int {
	return len(s.Records)
}

// Get returns the record at the 1-based position pos.
func (s *Store) Get(pos int) (Record, bool) {
	if pos < 1 || pos > len(s.Records) {
		return Record{}, false
	}
	return s.Records[pos-1], true
}

// All returns every stored record in order.
func (s *Store) All() []Record {
	return s.Records
}

// FindByName returns the record with the given name.
func (s *Store) FindByName(name string) (Record, bool) {
	for _, rec := range s.Records {
		if rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// Append adds records to the end of the store, bumping names that collide
// with existing ones. Addresses are freshly derived by callers, so name
// uniqueness is the only invariant enforced here.
func (s *Store) Append(records ...Record) {
	for _, rec := range records {
		rec.Name = s.uniqueName(rec.Name)
		s.Records = append(s.Records, rec)
	}
}

// Replace discards all stored records and installs the given list.
func (s *Store) Replace(records []Record) {
	s.Records = records
}

// Save writes the full wallet list back to disk as a whole-file replace:
// a temp file in the same directory followed by a rename.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.Records, "", "  ")
	if err != nil {
		return ferrors.StoreIO("encode", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".wallets-*.json")
	if err != nil {
		return ferrors.StoreIO("write", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ferrors.StoreIO("write", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ferrors.StoreIO("write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ferrors.StoreIO("write", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return ferrors.StoreIO("replace", err)
	}

	s.logger.Debug("wallet store saved", "path", s.path, "wallets", len(s.Records))
	return nil
}

func (s *Store) uniqueName(base string) string {
	if _, taken := s.FindByName(base); !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := s.FindByName(candidate); !taken {
			return candidate
		}
	}
}
