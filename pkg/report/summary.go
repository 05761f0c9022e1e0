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

package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"jinr.ru/greenlab/go-pel/pkg/pel"
)

// TypeCount is the number of events of one type
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Summary is a short description of a decoded log
type Summary struct {
	SerialNumber string      `json:"serialNumber"`
	ModelNumber  string      `json:"modelNumber"`
	Revision     uint8       `json:"revision"`
	NumEvents    int         `json:"numEvents"`
	Counts       []TypeCount `json:"counts"`
	// FirstTimestamp and LastTimestamp are the extremes of the event timestamps in milliseconds
	FirstTimestamp uint64 `json:"firstTimestamp"`
	LastTimestamp  uint64 `json:"lastTimestamp"`
	Span           string `json:"span"`
	Warnings       int    `json:"warnings"`
}

// Summarize counts the events of a decoded log by type.
// Counts are ordered by event type code.
func Summarize(l *pel.Log) *Summary {
	s := &Summary{
		SerialNumber: l.Header.SerialNumber,
		ModelNumber:  l.Header.ModelNumber,
		Revision:     l.Header.Revision,
		NumEvents:    len(l.Events),
		Counts:       []TypeCount{},
		Warnings:     len(l.AllWarnings()),
	}
	counts := map[pel.EventType]int{}
	for i, ev := range l.Events {
		counts[ev.Type]++
		ms := ev.Timestamp.Milliseconds
		if i == 0 || ms < s.FirstTimestamp {
			s.FirstTimestamp = ms
		}
		if ms > s.LastTimestamp {
			s.LastTimestamp = ms
		}
	}
	types := make([]pel.EventType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		s.Counts = append(s.Counts, TypeCount{Type: t.String(), Count: counts[t]})
	}
	s.Span = (time.Duration(s.LastTimestamp-s.FirstTimestamp) * time.Millisecond).String()
	return s
}

// EventLine describes an event on a single line
func EventLine(ev *pel.Event) string {
	decoded := "raw"
	if ev.Decoded() {
		decoded = "decoded"
	}
	line := fmt.Sprintf("#%-4d 0x%06x %-20s rev %d ctrl 0x%04x %s len %d %s",
		ev.Index, ev.Offset, ev.Type, ev.Revision, ev.ControllerID, ev.Timestamp, ev.EventLength, decoded)
	if n := len(ev.Warnings); n > 0 {
		line += fmt.Sprintf(" (%d warnings)", n)
	}
	return line
}

// WriteEvents writes one line per event followed by the log warnings
func WriteEvents(w io.Writer, l *pel.Log) error {
	for _, ev := range l.Events {
		if _, err := fmt.Fprintln(w, EventLine(ev)); err != nil {
			return err
		}
	}
	for _, warning := range l.AllWarnings() {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}
