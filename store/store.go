/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

// Package store persists search arrays in Badger.
package store

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/hypermodeinc/searcharray/codec"
	"github.com/hypermodeinc/searcharray/index"
	"github.com/hypermodeinc/searcharray/posting"
	"github.com/hypermodeinc/searcharray/tok"
	"github.com/hypermodeinc/searcharray/x"
)

// ErrNoIndex is returned by Load when nothing has been saved yet.
var ErrNoIndex = errors.New("store holds no index")

type meta struct {
	Tokenizer string `cbor:"1,keyasint"`
	NumDocs   uint32 `cbor:"2,keyasint"`
	NumTerms  uint32 `cbor:"3,keyasint"`
}

// Store holds at most one search array.
type Store struct {
	db *badger.DB
}

// Open opens or creates a store in dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, errors.Wrapf(err, "while opening store at %s", dir)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, errors.Wrap(err, "while opening in-memory store")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Size returns the on disk size of the store in bytes.
func (s *Store) Size() int64 {
	lsm, vlog := s.db.Size()
	return lsm + vlog
}

// Save replaces whatever the store holds with sa.
func (s *Store) Save(sa *index.SearchArray) error {
	if err := s.db.DropAll(); err != nil {
		return errors.Wrap(err, "while clearing store")
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	m := meta{
		Tokenizer: sa.Tokenizer().Name(),
		NumDocs:   uint32(sa.Shape()),
		NumTerms:  uint32(sa.TermDict().Len()),
	}
	data, err := codec.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "while marshalling meta")
	}
	if err := wb.Set(x.MetaKey(), data); err != nil {
		return err
	}

	for id, term := range sa.TermDict().Terms() {
		if err := wb.Set(x.TermKey(uint32(id)), []byte(term)); err != nil {
			return err
		}
	}
	for id, l := range sa.DocLens() {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], l)
		if err := wb.Set(x.DocKey(uint32(id)), buf[:]); err != nil {
			return err
		}
	}
	err = sa.Posns().Iterate(func(l *posting.List) error {
		data, err := l.Marshal()
		if err != nil {
			return err
		}
		return wb.Set(x.PostingKey(l.TermID), data)
	})
	if err != nil {
		return err
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrap(err, "while flushing index")
	}
	glog.Infof("Saved index with %d docs and %d terms", m.NumDocs, m.NumTerms)
	return nil
}

// Load reads back the saved search array. The tokenizer recorded at save time
// is used unless opts set another one.
func (s *Store) Load(opts ...index.Option) (*index.SearchArray, error) {
	var (
		m       meta
		terms   []string
		docLens []uint32
		lists   []*posting.List
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(x.MetaKey())
		if err == badger.ErrKeyNotFound {
			return ErrNoIndex
		}
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := codec.Unmarshal(data, &m); err != nil {
			return errors.Wrap(err, "while unmarshalling meta")
		}

		terms = make([]string, 0, m.NumTerms)
		err = iteratePrefix(txn, x.ByteTerm, func(pk x.ParsedKey, val []byte) error {
			if int(pk.ID) != len(terms) {
				return errors.Errorf("Missing term %d", len(terms))
			}
			terms = append(terms, string(val))
			return nil
		})
		if err != nil {
			return err
		}

		docLens = make([]uint32, 0, m.NumDocs)
		err = iteratePrefix(txn, x.ByteDoc, func(pk x.ParsedKey, val []byte) error {
			if int(pk.ID) != len(docLens) || len(val) != 4 {
				return errors.Errorf("Invalid doc length entry for doc %d", pk.ID)
			}
			docLens = append(docLens, binary.BigEndian.Uint32(val))
			return nil
		})
		if err != nil {
			return err
		}

		lists = make([]*posting.List, 0, m.NumTerms)
		return iteratePrefix(txn, x.BytePosting, func(pk x.ParsedKey, val []byte) error {
			// val is only valid inside this callback.
			l, err := posting.UnmarshalList(append([]byte(nil), val...))
			if err != nil {
				return err
			}
			if l.TermID != pk.ID {
				return errors.Errorf("Posting list key %d holds term %d", pk.ID, l.TermID)
			}
			lists = append(lists, l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if len(terms) != int(m.NumTerms) || len(docLens) != int(m.NumDocs) {
		return nil, errors.Errorf("Store is inconsistent: want %d terms and %d docs, got %d and %d",
			m.NumTerms, m.NumDocs, len(terms), len(docLens))
	}

	if t, ok := tok.GetTokenizer(m.Tokenizer); ok {
		opts = append([]index.Option{index.WithTokenizer(t)}, opts...)
	} else if len(opts) == 0 {
		return nil, errors.Errorf("Index was built with unregistered tokenizer %q", m.Tokenizer)
	}
	return index.Assemble(terms, lists, docLens, opts...)
}

func iteratePrefix(txn *badger.Txn, prefix byte,
	f func(pk x.ParsedKey, val []byte) error) error {
	p := []byte{prefix}
	itr := txn.NewIterator(badger.DefaultIteratorOptions)
	defer itr.Close()
	for itr.Seek(p); itr.ValidForPrefix(p); itr.Next() {
		item := itr.Item()
		pk, err := x.Parse(item.Key())
		if err != nil {
			return err
		}
		err = item.Value(func(val []byte) error {
			return f(pk, val)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
