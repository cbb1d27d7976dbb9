// Package store keeps the API token, a cache of the problem collection and
// the history of finished loops in a local BoltDB file
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/midaytech/brainloop/internal/apperr"
	"github.com/midaytech/brainloop/internal/models"
	"github.com/midaytech/brainloop/internal/timeutil"
)

const (
	authBucket     = "auth"
	problemsBucket = "problems"
	loopsBucket    = "loops"
)

var (
	tokenKey     = []byte("token")
	problemsKey  = []byte("collection")
	fetchedAtKey = []byte("fetched_at")
)

var (
	errAlreadyRunning = &apperr.Error{
		Message: "is brainloop already running? Only one instance can use the database at a time",
	}

	// ErrNotLoggedIn is returned when no API token is stored.
	ErrNotLoggedIn = &apperr.Error{
		Message: "not logged in: run 'brainloop login' first",
	}

	// ErrNoCache is returned when the problem collection was never cached.
	ErrNoCache = &apperr.Error{
		Message: "no cached problems: run 'brainloop list' while online first",
	}
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) SaveToken(token string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Put(tokenKey, []byte(token))
	})
}

func (c *Client) Token() (string, error) {
	var token string

	err := c.View(func(tx *bolt.Tx) error {
		token = string(tx.Bucket([]byte(authBucket)).Get(tokenKey))
		return nil
	})
	if err != nil {
		return "", err
	}

	if token == "" {
		return "", ErrNotLoggedIn
	}

	return token, nil
}

func (c *Client) DeleteToken() error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(authBucket)).Delete(tokenKey)
	})
}

func (c *Client) CacheProblems(
	problems []models.Problem,
	fetchedAt time.Time,
) error {
	value, err := json.Marshal(problems)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(problemsBucket))

		err := b.Put(problemsKey, value)
		if err != nil {
			return err
		}

		return b.Put(fetchedAtKey, timeutil.ToKey(fetchedAt))
	})
}

func (c *Client) CachedProblems() ([]models.Problem, time.Time, error) {
	var (
		problems  []models.Problem
		fetchedAt time.Time
	)

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(problemsBucket))

		v := b.Get(problemsKey)
		if len(v) == 0 {
			return ErrNoCache
		}

		err := json.Unmarshal(v, &problems)
		if err != nil {
			return err
		}

		fetchedAt, err = timeutil.FromKey(b.Get(fetchedAtKey))

		return err
	})

	return problems, fetchedAt, err
}

func (c *Client) SaveLoop(rec *models.LoopRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(loopsBucket)).
			Put(timeutil.ToKey(rec.StartTime), value)
	})
}

func (c *Client) GetLoops(
	startTime, endTime time.Time,
) ([]models.LoopRecord, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(loopsBucket)).Cursor()
		minKey := timeutil.ToKey(startTime)
		maxKey := timeutil.ToKey(endTime)

		for k, v := cur.Seek(minKey); k != nil && bytes.Compare(k, maxKey) <= 0; k, v = cur.Next() {
			b = append(b, v)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	recs := make([]models.LoopRecord, len(b))

	for i, v := range b {
		err = json.Unmarshal(v, &recs[i])
		if err != nil {
			return nil, err
		}
	}

	return recs, nil
}

func (c *Client) DeleteLoops(recs []models.LoopRecord) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range recs {
			err := tx.Bucket([]byte(loopsBucket)).
				Delete(timeutil.ToKey(recs[i].StartTime))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning.Wrap(err)
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{authBucket, problemsBucket, loopsBucket} {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
