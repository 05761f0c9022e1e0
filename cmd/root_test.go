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

package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jinr.ru/greenlab/go-pel/pkg/pel/peltest"
)

type testEnv struct {
	dir     string
	config  string
	capture string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		config:  filepath.Join(dir, "config"),
		capture: filepath.Join(dir, "pel.bin"),
	}
	config := fmt.Sprintf(`log_level: error
store:
  path: %s
api:
  address: 127.0.0.1
  port: 8000
decode:
  max_capture_size: 1048576
`, filepath.Join(dir, "pel.db"))
	if err := ioutil.WriteFile(env.config, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	capture := peltest.Capture(peltest.Header{
		Revision:     1,
		SerialNumber: "S1",
		Supported:    []uint8{0x0d},
	},
		peltest.Event{Type: 0x0d, Payload: []byte{1, 0x50}},
		peltest.Event{Type: 0x0d, Timestamp: peltest.Timestamp(2000, 1, 0), Payload: []byte{0, 0x50}},
	)
	if err := ioutil.WriteFile(env.capture, capture, 0644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e *testEnv) run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd := NewRootCommand(out)
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("decode", env.capture)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "---\n") || !strings.Contains(out, "serialNumber: S1") {
		t.Errorf("Unexpected yaml output:\n%s", out)
	}

	out, err = env.run("decode", env.capture, "--format", "json", "--headers-only")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"serialNumber": "S1"`) || strings.Contains(out, `"decoded": true`) {
		t.Errorf("Unexpected json output:\n%s", out)
	}

	if _, err := env.run("decode", env.capture, "--format", "xml"); err == nil {
		t.Errorf("Expected an error for an unknown format")
	}
	if _, err := env.run("decode", filepath.Join(env.dir, "missing")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}
}

func TestEventsCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("events", env.capture)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "#0 ") || !strings.HasPrefix(lines[1], "#1 ") {
		t.Errorf("Unexpected events output:\n%s", out)
	}

	out, err = env.run("events", env.capture, "--summary")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "numEvents: 2") || !strings.Contains(out, "span: 2s") {
		t.Errorf("Unexpected summary output:\n%s", out)
	}
}

func TestStoreCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("store", "import", env.capture)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "device: S1 id: 1 events: 2") {
		t.Errorf("Unexpected import output:\n%s", out)
	}

	if out, err = env.run("store", "list"); err != nil || out != "S1\n" {
		t.Errorf("Unexpected list output: %q, %v", out, err)
	}
	if out, err = env.run("store", "list", "S1"); err != nil || !strings.HasPrefix(out, "1\t") {
		t.Errorf("Unexpected list output: %q, %v", out, err)
	}
	if out, err = env.run("store", "show", "S1", "1", "--summary"); err != nil || !strings.Contains(out, "serial: S1") {
		t.Errorf("Unexpected show output: %q, %v", out, err)
	}
	if out, err = env.run("store", "show", "S1", "1", "--format", "json"); err != nil || !strings.Contains(out, `"events": [`) {
		t.Errorf("Unexpected show output: %q, %v", out, err)
	}
	if _, err = env.run("store", "show", "S1", "one"); err == nil {
		t.Errorf("Expected an error for a wrong id")
	}
	if _, err = env.run("store", "delete", "S1", "1"); err != nil {
		t.Fatal(err)
	}
	if _, err = env.run("store", "delete", "S1", "1"); err == nil {
		t.Errorf("Expected an error for a deleted log")
	}
	if out, err = env.run("store", "list"); err != nil || out != "" {
		t.Errorf("Unexpected list output: %q, %v", out, err)
	}
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "log_level: error") {
		t.Errorf("Unexpected config:\n%s", out)
	}

	if _, err := env.run("config", "init"); err == nil {
		t.Errorf("Expected an error for an existing config file")
	}
	path := filepath.Join(env.dir, "new", "config")
	cmd := NewRootCommand(ioutil.Discard)
	cmd.SetArgs([]string{"--config", path, "--log-level", "error", "config", "init"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not written: %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("--log-level", "loud", "config", "show"); err == nil {
		t.Errorf("Expected an error for a wrong log level")
	}
}
