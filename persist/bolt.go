package persist

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("ripple")

// BoltAdapter persists keys into a single bucket of a bbolt file.
type BoltAdapter struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) the bbolt file at filename.
func OpenBolt(filename string) (*BoltAdapter, error) {
	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &BoltAdapter{db: db}, nil
}

func (b *BoltAdapter) Close() error {
	return b.db.Close()
}

func (b *BoltAdapter) Load(key string) (string, bool, error) {
	var (
		data string
		ok   bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket(boltBucket).Get([]byte(key))
		if bs != nil {
			data = string(bs)
			ok = true
		}
		return nil
	})
	return data, ok, err
}

func (b *BoltAdapter) Save(key, data string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(data))
	})
}

// Keys returns every persisted key, for inspection tooling.
func (b *BoltAdapter) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(boltBucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, err
}
