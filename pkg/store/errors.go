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

package store

import "fmt"

// ErrLogNotFound returned when a device has no log with the given id
type ErrLogNotFound struct {
	Serial string
	ID     uint64
}

func (e ErrLogNotFound) Error() string {
	return fmt.Sprintf("Log %d not found for device %s", e.ID, e.Serial)
}

// ErrDeviceNotFound returned when no log was imported for a device
type ErrDeviceNotFound struct {
	Serial string
}

func (e ErrDeviceNotFound) Error() string {
	return fmt.Sprintf("Device not found: %s", e.Serial)
}
