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

// SupportedEventsSize is the size of the supported events bitmap in bytes
const SupportedEventsSize = 32

// SupportedEvents is the 256-bit bitmap of event types a log may contain.
// Event type N is bit N%8 of byte N/8.
type SupportedEvents [SupportedEventsSize]byte

func DecodeSupportedEvents(c *Cursor) (SupportedEvents, error) {
	var s SupportedEvents
	b, err := c.Take(SupportedEventsSize, "supported events bitmap")
	if err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

func (s *SupportedEvents) IsSupported(t EventType) bool {
	return s[t/8]&(1<<(t%8)) != 0
}

// Set marks an event type as supported
func (s *SupportedEvents) Set(t EventType) {
	s[t/8] |= 1 << (t % 8)
}

// Types returns the supported event types in ascending order
func (s *SupportedEvents) Types() []EventType {
	var types []EventType
	for i := 0; i < 256; i++ {
		if s.IsSupported(EventType(i)) {
			types = append(types, EventType(i))
		}
	}
	return types
}
