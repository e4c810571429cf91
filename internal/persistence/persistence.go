package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/markusressel/base2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketRuns = "runs"
)

type Persistence interface {
	Init() error

	SaveRun(run *Run) (err error)
	LoadRun(id string) (*Run, error)
	ListRuns() ([]RunSummary, error)
	DeleteRun(id string) (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveRun stores the given run, replacing an existing run with the same id
func (p persistence) SaveRun(run *Run) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketRuns))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(run.Id), data)
	})
}

// LoadRun loads a single run including all of its samples
func (p persistence) LoadRun(id string) (*Run, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var run Run
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(id))
		if v == nil {
			return os.ErrNotExist
		}
		return json.Unmarshal(v, &run)
	})
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns the summaries of all stored runs, oldest first
func (p persistence) ListRuns() ([]RunSummary, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []RunSummary
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				ui.Warning("Unable to unmarshal saved run %s: %v", string(k), err)
				return nil
			}
			result = append(result, run.Summary())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})
	return result, nil
}

// DeleteRun removes a run, deleting a missing run is not an error
func (p persistence) DeleteRun(id string) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketRuns))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(id))
	})
}
