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

import "testing"

func TestSupportedEventsEmpty(t *testing.T) {
	var s SupportedEvents
	for tag := 0; tag < 256; tag++ {
		if s.IsSupported(EventType(tag)) {
			t.Errorf("empty bitmap supports 0x%02x", tag)
		}
	}
}

func TestSupportedEventsFull(t *testing.T) {
	var s SupportedEvents
	for i := range s {
		s[i] = 0xff
	}
	for tag := 0; tag < 256; tag++ {
		if !s.IsSupported(EventType(tag)) {
			t.Errorf("full bitmap does not support 0x%02x", tag)
		}
	}
}

func TestSupportedEventsSingleBit(t *testing.T) {
	for tag := 0; tag < 256; tag++ {
		var s SupportedEvents
		s[tag/8] = 1 << (tag % 8)
		for other := 0; other < 256; other++ {
			if got := s.IsSupported(EventType(other)); got != (other == tag) {
				t.Fatalf("bit for 0x%02x: IsSupported(0x%02x) = %v", tag, other, got)
			}
		}
	}
}

func TestSupportedEventsSetAndTypes(t *testing.T) {
	var s SupportedEvents
	s.Set(EventTypeSmartHealth)
	s.Set(EventTypeThermalExcursion)
	s.Set(EventTypeTcgDefined)
	types := s.Types()
	want := []EventType{EventTypeSmartHealth, EventTypeThermalExcursion, EventTypeTcgDefined}
	if len(types) != len(want) {
		t.Fatalf("Types() = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Types()[%d] = %s, want %s", i, types[i], want[i])
		}
	}
	// byte 0 bit 1, byte 1 bit 5, byte 27 bit 7
	if s[0] != 0x02 || s[1] != 0x20 || s[27] != 0x80 {
		t.Errorf("bitmap bytes = %x", s[:])
	}
}

func TestDecodeSupportedEvents(t *testing.T) {
	data := make([]byte, 33)
	data[31] = 0x80
	c := NewCursor(data)
	s, err := DecodeSupportedEvents(c)
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsSupported(255) || c.Offset() != SupportedEventsSize {
		t.Errorf("IsSupported(255) = %v, offset %d", s.IsSupported(255), c.Offset())
	}
	if _, err := DecodeSupportedEvents(NewCursor(make([]byte, 31))); !IsTruncated(err) {
		t.Errorf("DecodeSupportedEvents() error = %v, want ErrTruncated", err)
	}
}
