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

package srv

import (
	_ "embed"
	"sort"

	"github.com/go-openapi/loads"
)

//go:embed swagger.json
var swaggerJSON []byte

// Spec is the analyzed OpenAPI document describing the API
type Spec struct {
	doc *loads.Document
}

// LoadSpec parses and analyzes the embedded OpenAPI document
func LoadSpec() (*Spec, error) {
	doc, err := loads.Analyzed(swaggerJSON, "")
	if err != nil {
		return nil, ErrSpec{Err: err}
	}
	return &Spec{doc: doc}, nil
}

func (s *Spec) Raw() []byte {
	return s.doc.Raw()
}

func (s *Spec) BasePath() string {
	return s.doc.BasePath()
}

func (s *Spec) Title() string {
	info := s.doc.Spec().Info
	if info == nil {
		return ""
	}
	return info.Title
}

// OperationIDs returns the sorted ids of all documented operations
func (s *Spec) OperationIDs() []string {
	ids := s.doc.Analyzer.OperationIDs()
	sort.Strings(ids)
	return ids
}
