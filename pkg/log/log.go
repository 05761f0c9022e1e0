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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type LogLevel int

const (
	LogPrefix     = "[go-pel] "
	ErrorPrefix   = "[error] "
	WarningPrefix = "[warn] "
	InfoPrefix    = "[info] "
	DebugPrefix   = "[debug] "
	HelpLevels    = "Must be one of: error, warning, info, debug."
)

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
)

type Logger struct {
	level LogLevel
	*log.Logger
}

var logger = &Logger{
	level:  WarningLevel,
	Logger: log.New(os.Stderr, LogPrefix, log.LstdFlags),
}

// ParseLevel converts a level name into a LogLevel
func ParseLevel(strLevel string) (LogLevel, error) {
	switch strings.ToLower(strLevel) {
	case "error":
		return ErrorLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	}
	return ErrorLevel, errors.New("Wrong log level. " + HelpLevels)
}

func SetLevel(strLevel string) error {
	level, err := ParseLevel(strLevel)
	if err != nil {
		return err
	}
	logger.level = level
	return nil
}

// Init sets the output and the level. An invalid level leaves the current one in place.
func Init(out io.Writer, strLevel string) error {
	logger.SetOutput(out)
	return SetLevel(strLevel)
}

// Enabled reports whether messages of the given level are written.
// Callers use it to avoid building expensive debug output such as hex dumps.
func Enabled(level LogLevel) bool {
	return logger.level >= level
}

func Error(format string, v ...interface{}) {
	if Enabled(ErrorLevel) {
		logger.Println(fmt.Sprintf(ErrorPrefix+format, v...))
	}
}

func Warning(format string, v ...interface{}) {
	if Enabled(WarningLevel) {
		logger.Println(fmt.Sprintf(WarningPrefix+format, v...))
	}
}

func Info(format string, v ...interface{}) {
	if Enabled(InfoLevel) {
		logger.Println(fmt.Sprintf(InfoPrefix+format, v...))
	}
}

func Debug(format string, v ...interface{}) {
	if Enabled(DebugLevel) {
		logger.Println(fmt.Sprintf(DebugPrefix+format, v...))
	}
}

// Writer passes everything written to it to the logger at a fixed level.
// It serves as access log output and as recovery logger of HTTP handlers.
type Writer struct {
	level LogLevel
}

func NewWriter(level LogLevel) *Writer {
	return &Writer{level: level}
}

func (w *Writer) prefix() string {
	switch w.level {
	case ErrorLevel:
		return ErrorPrefix
	case WarningLevel:
		return WarningPrefix
	case InfoLevel:
		return InfoPrefix
	}
	return DebugPrefix
}

func (w *Writer) Write(p []byte) (int, error) {
	if Enabled(w.level) {
		logger.Println(w.prefix() + strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

func (w *Writer) Println(v ...interface{}) {
	if Enabled(w.level) {
		logger.Println(w.prefix() + strings.TrimRight(fmt.Sprintln(v...), "\n"))
	}
}
