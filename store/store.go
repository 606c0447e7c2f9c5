package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultListConcurrency bounds the parallel reads issued by GetAll.
const DefaultListConcurrency = 16

// Store persists records as JSON files, one directory per namespace.
// Operations return immediately with a Future and are safe for concurrent
// use. Writes to the same id race; the last completed write wins and the
// file always holds one complete record.
type Store struct {
	root            string
	files           FileProvider
	quota           QuotaManager
	quotaBytes      int64
	ids             IDGenerator
	logger          *slog.Logger
	metrics         *Metrics
	listConcurrency int
	dirs            *DirectoryCache
}

// Option configures a Store.
type Option func(*Store)

// WithFileProvider replaces the local filesystem provider.
func WithFileProvider(fp FileProvider) Option {
	return func(s *Store) { s.files = fp }
}

// WithQuota sets the quota manager and the amount requested from it.
func WithQuota(q QuotaManager, bytes int64) Option {
	return func(s *Store) {
		s.quota = q
		s.quotaBytes = bytes
	}
}

// WithIDGenerator sets the generator used for new records.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithListConcurrency bounds parallel reads in GetAll. n <= 0 means no limit.
func WithListConcurrency(n int) Option {
	return func(s *Store) { s.listConcurrency = n }
}

// New creates a store rooted at root. The root directory is created if it
// does not exist; namespace directories are created on first use.
func New(root string, opts ...Option) (*Store, error) {
	s := &Store{
		root:            root,
		files:           &OSFileProvider{},
		quota:           UnlimitedQuota{},
		quotaBytes:      DefaultQuotaBytes,
		ids:             UUIDGenerator{},
		logger:          slog.Default(),
		listConcurrency: DefaultListConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.files.CreateDirectory(root); err != nil {
		return nil, fmt.Errorf("failed to create store root %s: %w", root, err)
	}
	s.dirs = NewDirectoryCache(root, s.files, s.quota, s.quotaBytes, s.logger)
	return s, nil
}

// Root returns the store root directory.
func (s *Store) Root() string { return s.root }

// Directories exposes the namespace directory cache.
func (s *Store) Directories() *DirectoryCache { return s.dirs }

// GetOne reads the record id from namespace.
func (s *Store) GetOne(id, namespace string) *Future[Record] {
	return Go(func() (rec Record, err error) {
		defer s.metrics.observe("get", time.Now(), &err)
		dir, err := s.dirs.Resolve(namespace)
		if err != nil {
			return nil, err
		}
		return s.read(dir, id)
	})
}

func (s *Store) read(dir Directory, id string) (Record, error) {
	if !validateName(id) {
		return nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	data, err := s.files.ReadFile(dir.Path, id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Namespace: dir.Namespace, ID: id}
		}
		return nil, &FileError{Op: "read", Namespace: dir.Namespace, ID: id, Err: err}
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &ParseError{Namespace: dir.Namespace, ID: id, Err: err}
	}
	if rec == nil {
		return nil, &ParseError{Namespace: dir.Namespace, ID: id, Err: errors.New("record is not a JSON object")}
	}
	return rec, nil
}

// GetAll reads every record file in namespace. Files that cannot be read or
// parsed are skipped; only a failure to list the directory fails the call.
// The order of the result is unspecified.
func (s *Store) GetAll(namespace string) *Future[[]Record] {
	return Go(func() (recs []Record, err error) {
		defer s.metrics.observe("list", time.Now(), &err)
		dir, err := s.dirs.Resolve(namespace)
		if err != nil {
			return nil, err
		}
		entries, err := s.files.ReadDirectory(dir.Path)
		if err != nil {
			return nil, &FileError{Op: "list", Namespace: namespace, Err: err}
		}
		var (
			mu sync.Mutex
			eg errgroup.Group
		)
		if s.listConcurrency > 0 {
			eg.SetLimit(s.listConcurrency)
		}
		recs = make([]Record, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), TempFilePrefix) {
				continue
			}
			id := entry.Name()
			eg.Go(func() error {
				rec, err := s.read(dir, id)
				if err != nil {
					s.metrics.skip()
					s.logger.Debug("skipping record", "namespace", namespace, "id", id, "err", err)
					return nil
				}
				mu.Lock()
				recs = append(recs, rec)
				mu.Unlock()
				return nil
			})
		}
		_ = eg.Wait()
		return recs, nil
	})
}

// Put writes record to namespace, assigning an id first if it has none.
// The caller's map is not modified; the future resolves with the stored
// copy.
func (s *Store) Put(record Record, namespace string) *Future[Record] {
	rec := record.Clone()
	return Go(func() (_ Record, err error) {
		defer s.metrics.observe("put", time.Now(), &err)
		dir, err := s.dirs.Resolve(namespace)
		if err != nil {
			return nil, err
		}
		if err := s.assignID(rec); err != nil {
			return nil, err
		}
		id := rec.ID()
		data, err := marshalRecord(rec)
		if err != nil {
			return nil, err
		}
		if err := s.files.WriteFile(dir.Path, id, data); err != nil {
			return nil, &FileError{Op: "write", Namespace: namespace, ID: id, Err: err}
		}
		return rec, nil
	})
}

func (s *Store) assignID(rec Record) error {
	if err := rec.CheckID(); err != nil {
		return err
	}
	if rec.IsNew() {
		rec.SetID(s.ids.NewID())
	}
	if id := rec.ID(); !validateName(id) {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return nil
}

// Delete removes the record id from namespace.
func (s *Store) Delete(id, namespace string) *Future[struct{}] {
	return Go(func() (_ struct{}, err error) {
		defer s.metrics.observe("delete", time.Now(), &err)
		dir, err := s.dirs.Resolve(namespace)
		if err != nil {
			return struct{}{}, err
		}
		if !validateName(id) {
			return struct{}{}, fmt.Errorf("%q: %w", id, ErrInvalidID)
		}
		if err := s.files.DeleteFile(dir.Path, id); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return struct{}{}, &NotFoundError{Namespace: namespace, ID: id}
			}
			return struct{}{}, &FileError{Op: "delete", Namespace: namespace, ID: id, Err: err}
		}
		return struct{}{}, nil
	})
}
