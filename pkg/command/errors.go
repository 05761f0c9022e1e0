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

package command

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ErrUnexpectedStatus returned when the API server responds with an unexpected status
type ErrUnexpectedStatus struct {
	Status  string
	Message string
}

func (e ErrUnexpectedStatus) Error() string {
	message := strings.TrimSpace(e.Message)
	if message == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, message)
}

func (e ErrUnexpectedStatus) NotFound() bool {
	return strings.HasPrefix(e.Status, strconv.Itoa(http.StatusNotFound))
}

// ErrCaptureTooLarge returned when a capture file exceeds the configured size
type ErrCaptureTooLarge struct {
	Path  string
	Size  int64
	Limit int64
}

func (e ErrCaptureTooLarge) Error() string {
	return fmt.Sprintf("Capture %s is %d bytes, the limit is %d bytes", e.Path, e.Size, e.Limit)
}
