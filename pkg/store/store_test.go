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

package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jinr.ru/greenlab/go-pel/pkg/events"
	"jinr.ru/greenlab/go-pel/pkg/pel"
	"jinr.ru/greenlab/go-pel/pkg/pel/peltest"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "pel.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func capture(serial string) []byte {
	return peltest.Capture(peltest.Header{SerialNumber: serial, Supported: []uint8{0x0d}},
		peltest.Event{Type: 0x0d, Payload: []byte{1, 0x50}},
		peltest.Event{Type: 0x0d, Timestamp: peltest.Timestamp(2000, 1, 0), Payload: []byte{2, 0x50}},
	)
}

func TestImport(t *testing.T) {
	s := openStore(t)
	opts := pel.Options{Registry: events.NewRegistry()}
	raw := capture("S1")

	first, err := s.Import(raw, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Import(raw, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != 1 || second.ID != 2 || first.Serial != "S1" || first.Size != len(raw) {
		t.Errorf("records %+v %+v", first, second)
	}
	if first.Summary.NumEvents != 2 || first.Summary.Span != "2s" {
		t.Errorf("summary %+v", first.Summary)
	}

	devices, err := s.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"S1"}, devices); diff != "" {
		t.Errorf("Devices() diff (-want +got):\n%s", diff)
	}

	records, err := s.List("S1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].ID != 1 || records[1].ID != 2 {
		t.Fatalf("List() = %+v", records)
	}
	if diff := cmp.Diff(first, records[0]); diff != "" {
		t.Errorf("List()[0] diff (-want +got):\n%s", diff)
	}

	got, err := s.Get("S1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(raw, got); diff != "" {
		t.Errorf("Get() diff (-want +got):\n%s", diff)
	}
	record, err := s.Record("S1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(second, record); diff != "" {
		t.Errorf("Record() diff (-want +got):\n%s", diff)
	}
}

func TestImportUnknownSerial(t *testing.T) {
	s := openStore(t)
	record, err := s.Import(capture(""), pel.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if record.Serial != UnknownSerial {
		t.Errorf("Serial = %q", record.Serial)
	}
}

func TestImportRefusesUndecodable(t *testing.T) {
	s := openStore(t)
	raw := capture("S1")
	if _, err := s.Import(raw[:pel.LogHeaderSize+10], pel.Options{}); !pel.IsTruncated(err) {
		t.Errorf("Import() error = %v, want ErrTruncated", err)
	}
	devices, err := s.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 0 {
		t.Errorf("Devices() = %v", devices)
	}
}

func TestDelete(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 2; i++ {
		if _, err := s.Import(capture("S1"), pel.Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete("S1", 1); err != nil {
		t.Fatal(err)
	}
	var notFound ErrLogNotFound
	if _, err := s.Get("S1", 1); !errors.As(err, &notFound) || notFound.ID != 1 {
		t.Errorf("Get() error = %v, want ErrLogNotFound", err)
	}
	if err := s.Delete("S1", 1); !errors.As(err, &notFound) {
		t.Errorf("Delete() error = %v, want ErrLogNotFound", err)
	}
	records, err := s.List("S1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != 2 {
		t.Errorf("List() = %+v", records)
	}

	if err := s.Delete("S1", 2); err != nil {
		t.Fatal(err)
	}
	var noDevice ErrDeviceNotFound
	if _, err := s.List("S1"); !errors.As(err, &noDevice) {
		t.Errorf("List() error = %v, want ErrDeviceNotFound", err)
	}
}
