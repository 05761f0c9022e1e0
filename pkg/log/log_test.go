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

package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"error", ErrorLevel},
		{"warning", WarningLevel},
		{"WARN", WarningLevel},
		{"info", InfoLevel},
		{"Debug", DebugLevel},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseLevel(%q) = %d, %v", tc.in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) did not fail")
	}
}

func TestLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Init(buf, "info"); err != nil {
		t.Fatal(err)
	}
	defer Init(os.Stderr, "warning")

	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Warning("shown %d", 3)
	NewWriter(DebugLevel).Write([]byte("hidden\n"))
	NewWriter(InfoLevel).Write([]byte("GET /api/devices 200\n"))
	NewWriter(ErrorLevel).Println("panic:", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug output written:\n%s", out)
	}
	for _, want := range []string{
		LogPrefix,
		"[info] shown 2",
		"[warn] shown 3",
		"[info] GET /api/devices 200",
		"[error] panic: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if !Enabled(InfoLevel) || Enabled(DebugLevel) {
		t.Error("Enabled() does not follow the level")
	}
}

func TestInitInvalidLevel(t *testing.T) {
	if err := Init(os.Stderr, "warning"); err != nil {
		t.Fatal(err)
	}
	if err := Init(os.Stderr, "loud"); err == nil {
		t.Error("Init() with an invalid level did not fail")
	}
	if !Enabled(WarningLevel) || Enabled(InfoLevel) {
		t.Error("invalid level changed the current one")
	}
}
