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

package pel

import (
	"fmt"

	"jinr.ru/greenlab/go-pel/pkg/log"
)

// Options control a single Decode call
type Options struct {
	// Registry selects payload decoders. A nil Registry keeps every payload raw.
	Registry *Registry
	// HeadersOnly skips payload decoders, payloads are kept raw
	HeadersOnly bool
	// StopAtLogLength stops before NumEvents records once the total log length is reached
	StopAtLogLength bool
}

// Log is a decoded Persistent Event Log
type Log struct {
	Header *LogHeader
	// Events are in capture order, which is chronological
	Events []*Event
	// Warnings that concern the log as a whole
	Warnings []Warning
}

// AllWarnings returns the log warnings followed by the warnings of every event
func (l *Log) AllWarnings() []Warning {
	all := append([]Warning{}, l.Warnings...)
	for _, ev := range l.Events {
		all = append(all, ev.Warnings...)
	}
	return all
}

func (l *Log) warn(kind WarningKind, offset int, format string, v ...interface{}) {
	w := Warning{
		Kind:   kind,
		Event:  -1,
		Offset: offset,
		What:   fmt.Sprintf(format, v...),
	}
	log.Warning("%s", w)
	l.Warnings = append(l.Warnings, w)
}

// Decode decodes a complete log capture. It either returns the whole log or
// an error; the returned log holds no references to data.
func Decode(data []byte, opts Options) (*Log, error) {
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	c := NewCursor(data)

	header, err := DecodeLogHeader(c)
	if err != nil {
		return nil, fmt.Errorf("log header: %w", err)
	}
	l := &Log{Header: header}
	if header.LogID != LogIdentifier {
		log.Info("Log identifier is 0x%02x, expected 0x%02x", header.LogID, LogIdentifier)
	}

	// every event takes at least a header, so a bogus count can not over-allocate
	capacity := int64(header.NumEvents)
	if limit := int64(c.Len() / EventHeaderSize); capacity > limit {
		capacity = limit
	}
	l.Events = make([]*Event, 0, capacity)

	for i := 0; i < int(header.NumEvents); i++ {
		if opts.StopAtLogLength && header.LogLength > 0 && uint64(c.Offset()) >= header.LogLength {
			l.warn(LogLengthMismatch, c.Offset(), "total log length %d reached after %d of %d events",
				header.LogLength, i, header.NumEvents)
			break
		}
		ev, err := DecodeEvent(c, i, registry, opts.HeadersOnly)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if !header.SupportedEvents.IsSupported(ev.Type) {
			ev.warn(UnsupportedEventType, ev.Offset, "%s is not in the supported events bitmap", ev.Type)
		}
		l.Events = append(l.Events, ev)
	}

	// bytes past the last event up to the total log length are padding
	if header.LogLength > 0 && uint64(c.Offset()) > header.LogLength {
		l.warn(LogLengthMismatch, c.Offset(), "events end at offset %d beyond total log length %d",
			c.Offset(), header.LogLength)
	}
	log.Debug("Decode: %d events, %d bytes consumed, %d bytes left", len(l.Events), c.Offset(), c.Len())
	return l, nil
}
