package database

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"

	"ledger-core/wire"
)

const (
	defaultDbFile = "ledger.db"
	blocksBucket  = "blocks"
	metaBucket    = "meta"
)

var genesisKey = []byte("genesis")

var (
	ErrBlockNotFound   = errors.New("block not found")
	ErrNoGenesis       = errors.New("no genesis block stored")
	ErrGenesisMismatch = errors.New("stored genesis block differs")
)

type Storage struct {
	db *bbolt.DB
}

// NewStorage opens the block database in dataDir, creating the directory and
// buckets when missing.
func NewStorage(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = "."
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbFile := filepath.Join(dataDir, defaultDbFile)
	db, err := bbolt.Open(dbFile, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbFile, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{blocksBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveBlock stores the block keyed by its hash in the canonical encoding.
func (s *Storage) SaveBlock(block *wire.MsgBlock) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putBlock(tx, block)
	})
}

func putBlock(tx *bbolt.Tx, block *wire.MsgBlock) error {
	data, err := block.Bytes()
	if err != nil {
		return err
	}

	blockHash := block.BlockHash()
	return tx.Bucket([]byte(blocksBucket)).Put(blockHash[:], data)
}

func (s *Storage) GetBlock(hash wire.Hash) (*wire.MsgBlock, error) {
	var block wire.MsgBlock

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(blocksBucket)).Get(hash[:])
		if data == nil {
			return fmt.Errorf("%w: %v", ErrBlockNotFound, hash)
		}

		return block.Deserialize(bytes.NewReader(data))
	})
	if err != nil {
		return nil, err
	}

	return &block, nil
}

// InitGenesis stores block as block zero.  Calling it again with the same
// block is a no-op; a different block yields ErrGenesisMismatch and leaves the
// database unchanged.
func (s *Storage) InitGenesis(block *wire.MsgBlock) error {
	hash := block.BlockHash()

	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(metaBucket))
		if stored := meta.Get(genesisKey); stored != nil {
			if !bytes.Equal(stored, hash[:]) {
				var have wire.Hash
				copy(have[:], stored)
				return fmt.Errorf("%w: have %v, got %v", ErrGenesisMismatch, have, hash)
			}
			return nil
		}

		if err := putBlock(tx, block); err != nil {
			return err
		}
		if err := meta.Put(genesisKey, hash[:]); err != nil {
			return err
		}

		logrus.WithField("hash", hash.String()).Info("Stored genesis block")
		return nil
	})
}

// GenesisHash returns the hash of the stored genesis block.
func (s *Storage) GenesisHash() (wire.Hash, error) {
	var hash wire.Hash

	err := s.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket([]byte(metaBucket)).Get(genesisKey)
		if stored == nil {
			return ErrNoGenesis
		}
		copy(hash[:], stored)
		return nil
	})

	return hash, err
}
