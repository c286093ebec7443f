// Package keystore persists key pairs in a SQLite database. Every integer is stored as decimal text.
package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bastionzero/textbookrsa"
)

// ErrNotFound is returned for IDs that are not in the store
var ErrNotFound = errors.New("key pair not found")

const schema = `
CREATE TABLE IF NOT EXISTS key_pairs (
	id         TEXT PRIMARY KEY,
	n          TEXT NOT NULL,
	e          TEXT NOT NULL,
	p          TEXT NOT NULL,
	q          TEXT NOT NULL,
	d          TEXT NOT NULL,
	bits       INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);`

// A Store is a handle on one key store database
type Store struct {
	db *sql.DB
}

// A StoredKeyPair is a stored key pair with its metadata
type StoredKeyPair struct {
	ID        uuid.UUID
	Bits      int
	CreatedAt time.Time
	textbookrsa.KeyPair
}

// Open opens (creating if needed) the key store at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key store %s: %w", path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create key store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a key pair under a new random ID
func (s *Store) Save(ctx context.Context, pub *textbookrsa.PublicKey, priv *textbookrsa.PrivateKey) (uuid.UUID, error) {
	id := uuid.New()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO key_pairs (id, n, e, p, q, d, bits, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id.String(), pub.N.String(), pub.E.String(), priv.P.String(), priv.Q.String(), priv.D.String(),
		pub.N.BitLen(), time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save key pair: %w", err)
	}
	return id, nil
}

// Load returns the key pair stored under id
func (s *Store) Load(ctx context.Context, id uuid.UUID) (*StoredKeyPair, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, n, e, p, q, d, bits, created_at FROM key_pairs WHERE id = ?", id.String())

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key pair %s: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns every stored key pair, oldest first
func (s *Store) List(ctx context.Context) ([]*StoredKeyPair, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, n, e, p, q, d, bits, created_at FROM key_pairs ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list key pairs: %w", err)
	}
	defer rows.Close()

	var entries []*StoredKeyPair
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes the key pair stored under id
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM key_pairs WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete key pair %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete key pair %s: %w", id, err)
	} else if affected == 0 {
		return fmt.Errorf("key pair %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*StoredKeyPair, error) {
	var (
		id            string
		n, e, p, q, d string
		entry         StoredKeyPair
	)
	if err := row.Scan(&id, &n, &e, &p, &q, &d, &entry.Bits, &entry.CreatedAt); err != nil {
		return nil, err
	}

	var err error
	if entry.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("corrupt key pair id %q: %w", id, err)
	}

	ints := make([]*big.Int, 5)
	for i, text := range []string{n, e, p, q, d} {
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("corrupt integer %q in key pair %s", text, id)
		}
		ints[i] = v
	}

	entry.Public = &textbookrsa.PublicKey{N: ints[0], E: ints[1]}
	entry.Private = &textbookrsa.PrivateKey{P: ints[2], Q: ints[3], D: ints[4]}
	return &entry, nil
}
