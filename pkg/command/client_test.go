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

package command

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/events"
	"jinr.ru/greenlab/go-pel/pkg/pel/peltest"
	"jinr.ru/greenlab/go-pel/pkg/report"
	"jinr.ru/greenlab/go-pel/pkg/srv"
	"jinr.ru/greenlab/go-pel/pkg/store"
)

func sampleCapture() []byte {
	return peltest.Capture(peltest.Header{
		Revision:     1,
		SerialNumber: "S1",
		Supported:    []uint8{0x02},
	},
		peltest.Event{Type: 0x02, Payload: make([]byte, 22)},
	)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.StoreConfig.Path = filepath.Join(t.TempDir(), "pel.db")
	return cfg
}

// startServer serves the API over a local listener and points cfg at it
func startServer(t *testing.T, cfg *config.Config) {
	t.Helper()
	st, err := store.Open(cfg.StoreConfig.Path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	s, err := srv.NewApiServer(context.Background(), cfg, st, events.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	host, port, err := net.SplitHostPort(ts.Listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	cfg.APIConfig.Address = host
	cfg.APIConfig.Port, _ = strconv.Atoi(port)
}

func TestApiClient(t *testing.T) {
	cfg := testConfig(t)
	startServer(t, cfg)
	c := NewApiClient(cfg)

	decoded, err := c.Decode(sampleCapture(), report.FormatJSON, false)
	if err != nil {
		t.Fatal(err)
	}
	var l struct {
		Events []struct {
			Type    string `json:"type"`
			Decoded bool   `json:"decoded"`
		} `json:"events"`
	}
	if err := json.Unmarshal(decoded, &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Events) != 1 || !l.Events[0].Decoded {
		t.Errorf("Unexpected decoded log: %s", decoded)
	}

	record, err := c.Import(sampleCapture())
	if err != nil {
		t.Fatal(err)
	}
	if record.ID != 1 || record.Serial != "S1" {
		t.Errorf("Unexpected record: %+v", record)
	}

	devices, err := c.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"S1"}, devices); diff != "" {
		t.Errorf("Unexpected devices (-want +got):\n%s", diff)
	}

	records, err := c.Logs("S1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Size != len(sampleCapture()) {
		t.Errorf("Unexpected records: %+v", records)
	}

	if _, err := c.Log("S1", 1, report.FormatYAML, true); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteLog("S1", 1); err != nil {
		t.Fatal(err)
	}
	_, err = c.Log("S1", 1, report.FormatJSON, false)
	if !IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestApiClientDecodeError(t *testing.T) {
	cfg := testConfig(t)
	startServer(t, cfg)

	_, err := NewApiClient(cfg).Decode(make([]byte, 10), report.FormatJSON, false)
	status, ok := err.(ErrUnexpectedStatus)
	if !ok {
		t.Fatalf("Expected ErrUnexpectedStatus, got %v", err)
	}
	if status.Status != "422 Unprocessable Entity" || status.Message == "" {
		t.Errorf("Unexpected status: %+v", status)
	}
}

func TestReadCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pel.bin")
	if err := ioutil.WriteFile(path, sampleCapture(), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCapture(path, 0); err != nil {
		t.Errorf("Unlimited read failed: %v", err)
	}
	_, err := ReadCapture(path, 100)
	if _, ok := err.(ErrCaptureTooLarge); !ok {
		t.Errorf("Expected ErrCaptureTooLarge, got %v", err)
	}
	if _, err := ReadCapture(filepath.Join(t.TempDir(), "missing"), 0); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}

func TestDecodeAndImportFile(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "pel.bin")
	if err := ioutil.WriteFile(path, sampleCapture(), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := DecodeFile(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Events) != 1 || !l.Events[0].Decoded() {
		t.Errorf("Unexpected log: %+v", l.Events)
	}

	record, err := ImportFile(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	err = WithStore(cfg, func(st *store.Store) error {
		raw, err := st.Get(record.Serial, record.ID)
		if err != nil {
			return err
		}
		if diff := cmp.Diff(sampleCapture(), raw); diff != "" {
			t.Errorf("Unexpected stored capture (-want +got):\n%s", diff)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
