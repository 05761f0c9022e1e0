/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

// Package store keeps raw log captures in a bbolt database, one bucket per device
package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-pel/pkg/log"
	"jinr.ru/greenlab/go-pel/pkg/pel"
	"jinr.ru/greenlab/go-pel/pkg/report"
)

const (
	BucketPrefix  = "pel_"
	RawBucket     = "raw"
	RecordBucket  = "record"
	UnknownSerial = "unknown"
	openTimeout   = time.Second
)

// Record describes an imported capture
type Record struct {
	ID       uint64          `json:"id"`
	Serial   string          `json:"serial"`
	Size     int             `json:"size"`
	Imported time.Time       `json:"imported"`
	Summary  *report.Summary `json:"summary"`
}

type Store struct {
	DB *bbolt.DB
}

// Open opens the database at path, creating it and its directory when missing
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func BucketName(serial string) string {
	return fmt.Sprintf("%s%s", BucketPrefix, serial)
}

func idToKey(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func deviceSerial(h *pel.LogHeader) string {
	if h.SerialNumber == "" {
		return UnknownSerial
	}
	return h.SerialNumber
}

// Import decodes a capture and stores it under the serial number of its header.
// Captures that can not be decoded are refused.
func (s *Store) Import(raw []byte, opts pel.Options) (*Record, error) {
	l, err := pel.Decode(raw, opts)
	if err != nil {
		return nil, err
	}
	record := &Record{
		Serial:   deviceSerial(l.Header),
		Size:     len(raw),
		Imported: time.Now().UTC(),
		Summary:  report.Summarize(l),
	}
	log.Debug("Importing log: device: %s size: %d", record.Serial, record.Size)

	if err := s.DB.Update(func(tx *bbolt.Tx) error {
		device, err := tx.CreateBucketIfNotExists([]byte(BucketName(record.Serial)))
		if err != nil {
			return err
		}
		raws, err := device.CreateBucketIfNotExists([]byte(RawBucket))
		if err != nil {
			return err
		}
		records, err := device.CreateBucketIfNotExists([]byte(RecordBucket))
		if err != nil {
			return err
		}
		if record.ID, err = raws.NextSequence(); err != nil {
			return err
		}
		recordBytes, err := yaml.Marshal(record)
		if err != nil {
			return err
		}
		if err := raws.Put(idToKey(record.ID), raw); err != nil {
			return err
		}
		return records.Put(idToKey(record.ID), recordBytes)
	}); err != nil {
		return nil, err
	}
	return record, nil
}

// Devices returns the serial numbers of all devices with imported logs
func (s *Store) Devices() ([]string, error) {
	devices := []string{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			if strings.HasPrefix(string(name), BucketPrefix) {
				devices = append(devices, strings.TrimPrefix(string(name), BucketPrefix))
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return devices, nil
}

func deviceBucket(tx *bbolt.Tx, serial string, name string) (*bbolt.Bucket, error) {
	device := tx.Bucket([]byte(BucketName(serial)))
	if device == nil {
		return nil, ErrDeviceNotFound{Serial: serial}
	}
	b := device.Bucket([]byte(name))
	if b == nil {
		return nil, fmt.Errorf("Bucket not found: %s/%s", BucketName(serial), name)
	}
	return b, nil
}

// List returns the records of a device in import order
func (s *Store) List(serial string) ([]*Record, error) {
	log.Debug("Listing logs: device: %s", serial)
	records := []*Record{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b, err := deviceBucket(tx, serial, RecordBucket)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, recordBytes []byte) error {
			record := &Record{}
			if err := yaml.Unmarshal(recordBytes, record); err != nil {
				log.Error("Error while unmarshalling Record %s", err)
				return err
			}
			records = append(records, record)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return records, nil
}

// Record returns the record of one log
func (s *Store) Record(serial string, id uint64) (*Record, error) {
	record := &Record{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b, err := deviceBucket(tx, serial, RecordBucket)
		if err != nil {
			return err
		}
		recordBytes := b.Get(idToKey(id))
		if recordBytes == nil {
			return ErrLogNotFound{Serial: serial, ID: id}
		}
		return yaml.Unmarshal(recordBytes, record)
	}); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns a copy of the raw capture of one log
func (s *Store) Get(serial string, id uint64) ([]byte, error) {
	log.Debug("Getting log: device: %s id: %d", serial, id)
	var raw []byte
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b, err := deviceBucket(tx, serial, RawBucket)
		if err != nil {
			return err
		}
		v := b.Get(idToKey(id))
		if v == nil {
			return ErrLogNotFound{Serial: serial, ID: id}
		}
		// bbolt values are only valid inside the transaction
		raw = append([]byte{}, v...)
		return nil
	}); err != nil {
		return nil, err
	}
	return raw, nil
}

// Delete removes one log. The device bucket is removed with its last log.
func (s *Store) Delete(serial string, id uint64) error {
	log.Debug("Deleting log: device: %s id: %d", serial, id)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		raws, err := deviceBucket(tx, serial, RawBucket)
		if err != nil {
			return err
		}
		records, err := deviceBucket(tx, serial, RecordBucket)
		if err != nil {
			return err
		}
		key := idToKey(id)
		if raws.Get(key) == nil {
			return ErrLogNotFound{Serial: serial, ID: id}
		}
		if err := raws.Delete(key); err != nil {
			return err
		}
		if err := records.Delete(key); err != nil {
			return err
		}
		if k, _ := raws.Cursor().First(); k == nil {
			return tx.DeleteBucket([]byte(BucketName(serial)))
		}
		return nil
	})
}
