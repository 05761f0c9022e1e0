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
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jinr.ru/greenlab/go-pel/pkg/pel/peltest"
)

func sampleEvents() []peltest.Event {
	return []peltest.Event{
		{Type: uint8(EventTypeFirmwareCommit), Revision: 1, Timestamp: peltest.Timestamp(100, 1, 0), Payload: []byte{7, 0, 0, 0}},
		{Type: 0xee, Timestamp: peltest.Timestamp(200, 1, 0), Payload: []byte{1, 2, 3}},
		{Type: uint8(EventTypeVendorSpecific), VendorInfo: []byte{0x11}, Payload: []byte{0x22, 0x33}},
	}
}

func TestDecodeEmptyLog(t *testing.T) {
	l, err := Decode(make([]byte, LogHeaderSize), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Events) != 0 || len(l.AllWarnings()) != 0 {
		t.Errorf("Events=%d Warnings=%v", len(l.Events), l.AllWarnings())
	}
}

func TestDecodeShortHeader(t *testing.T) {
	_, err := Decode(make([]byte, LogHeaderSize-1), Options{})
	if !IsTruncated(err) {
		t.Fatalf("Decode() error = %v, want ErrTruncated", err)
	}
	if !strings.HasPrefix(err.Error(), "log header:") {
		t.Errorf("error %q does not name the log header", err)
	}
}

func TestDecode(t *testing.T) {
	events := sampleEvents()
	data := peltest.Capture(peltest.Header{
		Revision:     1,
		SerialNumber: "S1",
		Supported:    []uint8{uint8(EventTypeFirmwareCommit), uint8(EventTypeVendorSpecific)},
	}, events...)
	l, err := Decode(data, Options{Registry: testRegistry(EventTypeFirmwareCommit, testDecoder(4))})
	if err != nil {
		t.Fatal(err)
	}
	if l.Header.SerialNumber != "S1" || l.Header.NumEvents != 3 {
		t.Errorf("Header = %+v", l.Header)
	}
	if len(l.Events) != 3 {
		t.Fatalf("%d events, want 3", len(l.Events))
	}

	offset := LogHeaderSize
	for i, ev := range l.Events {
		if ev.Index != i || ev.Offset != offset {
			t.Errorf("event %d: Index=%d Offset=%d, want offset %d", i, ev.Index, ev.Offset, offset)
		}
		offset += len(events[i].Bytes())
	}
	if p, ok := l.Events[0].Payload.(*testPayload); !ok || p.Value != 7 {
		t.Errorf("event 0 payload = %+v", l.Events[0].Payload)
	}
	if diff := cmp.Diff([]byte{0x22, 0x33}, l.Events[2].Payload.(*RawPayload).Data); diff != "" {
		t.Errorf("event 2 data diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x11}, l.Events[2].VendorInfo); diff != "" {
		t.Errorf("event 2 vendor info diff (-want +got):\n%s", diff)
	}

	// 0xee is not in the bitmap
	want := []Warning{{Kind: UnsupportedEventType, Event: 1, Offset: l.Events[1].Offset,
		What: "Unknown(0xee) is not in the supported events bitmap"}}
	if diff := cmp.Diff(want, l.AllWarnings()); diff != "" {
		t.Errorf("warnings diff (-want +got):\n%s", diff)
	}
}

func TestDecodeIsPure(t *testing.T) {
	data := peltest.Capture(peltest.Header{Revision: 2, Generation: 1}, sampleEvents()...)
	opts := Options{Registry: testRegistry(EventTypeFirmwareCommit, testDecoder(4))}
	first, err := Decode(data, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Decode(data, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second decode differs (-first +second):\n%s", diff)
	}

	for i := range data {
		data[i] = 0
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("decoded log changed with the input (-first +second):\n%s", diff)
	}
	if first.Events[1].Payload.(*RawPayload).Data[0] != 1 {
		t.Error("decoded log shares memory with the input")
	}
}

func TestDecodeConcurrent(t *testing.T) {
	data := peltest.Capture(peltest.Header{}, sampleEvents()...)
	registry := testRegistry(EventTypeFirmwareCommit, testDecoder(4))
	want, err := Decode(data, Options{Registry: registry})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Decode(data, Options{Registry: registry})
			if err != nil {
				t.Error(err)
				return
			}
			if !cmp.Equal(want, got) {
				t.Error("concurrent decode differs")
			}
		}()
	}
	wg.Wait()
}

func TestDecodeTooFewEvents(t *testing.T) {
	data := peltest.Capture(peltest.Header{NumEvents: 4}, sampleEvents()...)
	_, err := Decode(data, Options{})
	if !IsTruncated(err) {
		t.Fatalf("Decode() error = %v, want ErrTruncated", err)
	}
	if !strings.HasPrefix(err.Error(), "event 3:") {
		t.Errorf("error %q does not name event 3", err)
	}
}

func TestDecodeHugeEventCount(t *testing.T) {
	data := peltest.Capture(peltest.Header{NumEvents: 0xffffffff}, sampleEvents()...)
	if _, err := Decode(data, Options{}); !IsTruncated(err) {
		t.Errorf("Decode() error = %v, want ErrTruncated", err)
	}
}

func TestDecodeStopAtLogLength(t *testing.T) {
	events := sampleEvents()
	length := LogHeaderSize + len(events[0].Bytes()) + len(events[1].Bytes())
	data := peltest.Capture(peltest.Header{NumEvents: 5, LogLength: uint64(length)}, events...)

	l, err := Decode(data, Options{StopAtLogLength: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Events) != 2 {
		t.Errorf("%d events, want 2", len(l.Events))
	}
	if diff := cmp.Diff([]WarningKind{LogLengthMismatch}, warningKinds(l.Warnings)); diff != "" {
		t.Errorf("warning kinds diff (-want +got):\n%s", diff)
	}

	if _, err := Decode(data, Options{}); !IsTruncated(err) {
		t.Errorf("Decode() without StopAtLogLength error = %v, want ErrTruncated", err)
	}
}

func TestDecodePadding(t *testing.T) {
	data := peltest.Capture(peltest.Header{}, sampleEvents()...)
	padded := append(data, make([]byte, 100)...)
	l, err := Decode(padded, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Events) != 3 || len(l.Warnings) != 0 {
		t.Errorf("Events=%d Warnings=%v", len(l.Events), l.Warnings)
	}
}

func TestDecodeBeyondLogLength(t *testing.T) {
	data := peltest.Capture(peltest.Header{LogLength: LogHeaderSize + 10}, sampleEvents()...)
	l, err := Decode(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Events) != 3 {
		t.Errorf("%d events, want 3", len(l.Events))
	}
	want := []Warning{{Kind: LogLengthMismatch, Event: -1, Offset: len(data),
		What: "events end at offset " + strconv.Itoa(len(data)) + " beyond total log length 522"}}
	if diff := cmp.Diff(want, l.Warnings); diff != "" {
		t.Errorf("warnings diff (-want +got):\n%s", diff)
	}
}

func TestDecodeHeadersOnly(t *testing.T) {
	data := peltest.Capture(peltest.Header{}, sampleEvents()...)
	l, err := Decode(data, Options{
		Registry:    testRegistry(EventTypeFirmwareCommit, testDecoder(4)),
		HeadersOnly: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range l.Events {
		if ev.Decoded() {
			t.Errorf("event %d payload is %T", ev.Index, ev.Payload)
		}
	}
}
