package history

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const bucketLine = "line"

// BoltStore is a durable history store backed by a bbolt database. Unlike
// the plain-file format, it survives concurrent writers and partial writes,
// which makes it suitable for history shared between long-lived sessions.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the bbolt database at the given path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLine))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &BoltStore{db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// AddLine appends a line to the database and returns its sequence number.
func (s *BoltStore) AddLine(line string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLine))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(line))
	})
	return int(seq), err
}

// AllLines returns all lines in insertion order.
func (s *BoltStore) AllLines() ([]string, error) {
	var lines []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLine))
		return b.ForEach(func(k, v []byte) error {
			lines = append(lines, string(v))
			return nil
		})
	})
	return lines, err
}

// SaveFrom replaces the database contents with the entries of the
// in-memory store, like the truncate-and-rewrite of the plain-file format.
func (s *BoltStore) SaveFrom(mem *Store) error {
	entries := mem.Entries()
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketLine)); err != nil {
			return err
		}
		b, err := tx.CreateBucket([]byte(bucketLine))
		if err != nil {
			return err
		}
		for _, entry := range entries {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := b.Put(marshalSeq(seq), []byte(entry)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// LoadInto feeds all database lines through mem.Add, oldest first.
func (s *BoltStore) LoadInto(mem *Store) error {
	lines, err := s.AllLines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		mem.Add(line)
	}
	return nil
}

func marshalSeq(seq uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return buf[:]
}
