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

import "fmt"

type WarningKind int

const (
	// PayloadLengthMismatch: the decoder consumed a different number of bytes than declared
	PayloadLengthMismatch WarningKind = iota
	// PayloadDecodeFailed: the decoder failed and the payload was kept raw
	PayloadDecodeFailed
	// PayloadTruncated: the payload ended inside a variable part
	PayloadTruncated
	// VendorInfoOverflow: VSIL is larger than the event body
	VendorInfoOverflow
	// UnsupportedEventType: the supported events bitmap does not list the event type
	UnsupportedEventType
	// LogLengthMismatch: the events do not end at the declared total log length
	LogLengthMismatch
)

func (k WarningKind) String() string {
	switch k {
	case PayloadLengthMismatch:
		return "PayloadLengthMismatch"
	case PayloadDecodeFailed:
		return "PayloadDecodeFailed"
	case PayloadTruncated:
		return "PayloadTruncated"
	case VendorInfoOverflow:
		return "VendorInfoOverflow"
	case UnsupportedEventType:
		return "UnsupportedEventType"
	case LogLengthMismatch:
		return "LogLengthMismatch"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a recoverable anomaly. Event is the index of the event it
// belongs to, or -1 for anomalies of the log as a whole.
type Warning struct {
	Kind   WarningKind
	Event  int
	Offset int
	What   string
}

func (w Warning) String() string {
	if w.Event < 0 {
		return fmt.Sprintf("%s at offset %d: %s", w.Kind, w.Offset, w.What)
	}
	return fmt.Sprintf("%s in event %d at offset %d: %s", w.Kind, w.Event, w.Offset, w.What)
}
