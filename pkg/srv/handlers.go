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
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-pel/pkg/log"
	"jinr.ru/greenlab/go-pel/pkg/pel"
	"jinr.ru/greenlab/go-pel/pkg/report"
	"jinr.ru/greenlab/go-pel/pkg/store"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeYAML = "application/x-yaml"
)

// decodeOptions returns the configured decode options overridden by the request query
func (s *ApiServer) decodeOptions(r *http.Request) (pel.Options, error) {
	opts := pel.Options{
		Registry:        s.registry,
		HeadersOnly:     s.Config.DecodeConfig.HeadersOnly,
		StopAtLogLength: s.Config.DecodeConfig.StopAtLogLength,
	}
	if v := r.URL.Query().Get("headers_only"); v != "" {
		headersOnly, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("headers_only: %w", err)
		}
		opts.HeadersOnly = headersOnly
	}
	return opts, nil
}

func requestFormat(r *http.Request) (report.Format, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		return report.FormatJSON, nil
	}
	return report.ParseFormat(v)
}

// readCapture reads the request body up to the configured capture size
func (s *ApiServer) readCapture(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := http.MaxBytesReader(w, r.Body, s.Config.DecodeConfig.MaxCaptureSize)
	raw, err := ioutil.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Capture exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return raw, true
}

// storeError maps store errors to response codes
func storeError(w http.ResponseWriter, err error) {
	var logNotFound store.ErrLogNotFound
	var deviceNotFound store.ErrDeviceNotFound
	if errors.As(err, &logNotFound) || errors.As(err, &deviceNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.Error("Store error: %s", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

// writeLog decodes a capture and writes the report in the requested format
func (s *ApiServer) writeLog(w http.ResponseWriter, r *http.Request, raw []byte) {
	opts, err := s.decodeOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := requestFormat(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	l, err := pel.Decode(raw, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	data, err := report.Marshal(report.New(l), format)
	if err != nil {
		log.Error("Error while marshaling report: %s", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if format == report.FormatYAML {
		w.Header().Set("Content-Type", ContentTypeYAML)
	} else {
		w.Header().Set("Content-Type", ContentTypeJSON)
	}
	w.Write(data)
}

func (s *ApiServer) handleDecode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := s.readCapture(w, r)
		if !ok {
			return
		}
		log.Debug("Decoding capture: size: %d", len(raw))
		s.writeLog(w, r, raw)
	}
}

func (s *ApiServer) handleImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := s.readCapture(w, r)
		if !ok {
			return
		}
		opts, err := s.decodeOptions(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		record, err := s.store.Import(raw, opts)
		if err != nil {
			if isDecodeError(err) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			storeError(w, err)
			return
		}
		log.Info("Imported log: device: %s id: %d", record.Serial, record.ID)
		writeJSON(w, http.StatusCreated, record)
	}
}

func (s *ApiServer) handleDevices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		devices, err := s.store.Devices()
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, devices)
	}
}

func (s *ApiServer) handleLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.store.List(mux.Vars(r)["serial"])
		if err != nil {
			storeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func logID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (s *ApiServer) handleLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := logID(w, r)
		if !ok {
			return
		}
		raw, err := s.store.Get(mux.Vars(r)["serial"], id)
		if err != nil {
			storeError(w, err)
			return
		}
		s.writeLog(w, r, raw)
	}
}

func (s *ApiServer) handleDeleteLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := logID(w, r)
		if !ok {
			return
		}
		serial := mux.Vars(r)["serial"]
		if err := s.store.Delete(serial, id); err != nil {
			storeError(w, err)
			return
		}
		log.Info("Deleted log: device: %s id: %d", serial, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// isDecodeError reports whether err was returned by the decoder rather than the store
func isDecodeError(err error) bool {
	var malformed pel.ErrMalformedEventHeader
	return pel.IsTruncated(err) || errors.As(err, &malformed)
}
