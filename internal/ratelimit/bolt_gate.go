package ratelimit

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	clientBucket     = "clients"
	counterValueSize = 16
)

// boltGate counts requests per client in fixed windows stored in BoltDB.
// Each value is the window start (unix seconds) followed by the hit count.
type boltGate struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	window          time.Duration
	maxRequests     int
	cleanupInterval time.Duration
	now             func() time.Time
}

// openBolt initializes a BoltDB-backed Gate.
func openBolt(path string, opts Options) (Gate, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create gate directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(clientBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	g := &boltGate{
		db:              db,
		window:          opts.Window,
		maxRequests:     opts.MaxRequests,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	g.lastCleanup.Store(g.now().Unix())
	return g, nil
}

// Close closes the BoltDB file.
func (g *boltGate) Close() error {
	if g == nil || g.db == nil {
		return nil
	}
	return g.db.Close()
}

// ShouldGate records one request from clientAddr and reports whether the
// client has exceeded the allowance of the current window.
func (g *boltGate) ShouldGate(clientAddr string) (bool, error) {
	if g == nil || g.db == nil || clientAddr == "" {
		return false, nil
	}

	now := g.now()
	if err := g.maybeCleanupExpired(now); err != nil {
		return false, err
	}

	var gated bool
	err := g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(clientBucket))
		if bucket == nil {
			return fmt.Errorf("client bucket missing")
		}

		key := []byte(clientAddr)
		start, count, ok := decodeCounter(bucket.Get(key))
		if !ok || !now.Before(start.Add(g.window)) {
			start, count = now, 0
		}
		count++
		gated = count > uint64(g.maxRequests)
		return bucket.Put(key, encodeCounter(start, count))
	})
	return gated, err
}

// maybeCleanupExpired drops counters whose window has passed on a fixed cadence.
func (g *boltGate) maybeCleanupExpired(now time.Time) error {
	last := time.Unix(g.lastCleanup.Load(), 0)
	if now.Sub(last) < g.cleanupInterval {
		return nil
	}

	g.cleanupMu.Lock()
	defer g.cleanupMu.Unlock()

	last = time.Unix(g.lastCleanup.Load(), 0)
	if now.Sub(last) < g.cleanupInterval {
		return nil
	}

	err := g.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(clientBucket))
		if bucket == nil {
			return fmt.Errorf("client bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			start, _, ok := decodeCounter(v)
			if !ok || !now.Before(start.Add(g.window)) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		g.lastCleanup.Store(now.Unix())
	}
	return err
}

func encodeCounter(start time.Time, count uint64) []byte {
	buf := make([]byte, counterValueSize)
	binary.BigEndian.PutUint64(buf[:8], uint64(start.Unix()))
	binary.BigEndian.PutUint64(buf[8:], count)
	return buf
}

func decodeCounter(value []byte) (time.Time, uint64, bool) {
	if len(value) != counterValueSize {
		return time.Time{}, 0, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:8]))
	if unix <= 0 {
		return time.Time{}, 0, false
	}
	return time.Unix(unix, 0), binary.BigEndian.Uint64(value[8:]), true
}
