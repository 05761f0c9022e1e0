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
	"context"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/events"
	"jinr.ru/greenlab/go-pel/pkg/log"
	"jinr.ru/greenlab/go-pel/pkg/pel"
	"jinr.ru/greenlab/go-pel/pkg/srv"
	"jinr.ru/greenlab/go-pel/pkg/store"
)

// ReadCapture reads a capture file that is not larger than limit bytes
func ReadCapture(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if limit > 0 && info.Size() > limit {
		return nil, ErrCaptureTooLarge{Path: path, Size: info.Size(), Limit: limit}
	}
	log.Debug("Reading capture: %s size: %d", path, info.Size())
	return ioutil.ReadFile(path)
}

// DecodeOptions returns the configured decode options with all payload decoders
func DecodeOptions(cfg *config.Config) pel.Options {
	return pel.Options{
		Registry:        events.NewRegistry(),
		HeadersOnly:     cfg.DecodeConfig.HeadersOnly,
		StopAtLogLength: cfg.DecodeConfig.StopAtLogLength,
	}
}

// DecodeFile reads and decodes a capture file
func DecodeFile(path string, cfg *config.Config) (*pel.Log, error) {
	raw, err := ReadCapture(path, cfg.DecodeConfig.MaxCaptureSize)
	if err != nil {
		return nil, err
	}
	return pel.Decode(raw, DecodeOptions(cfg))
}

// WithStore opens the local store for the duration of f
func WithStore(cfg *config.Config, f func(st *store.Store) error) error {
	st, err := store.Open(cfg.StoreConfig.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	return f(st)
}

// ImportFile decodes a capture file and keeps it in the local store
func ImportFile(path string, cfg *config.Config) (*store.Record, error) {
	raw, err := ReadCapture(path, cfg.DecodeConfig.MaxCaptureSize)
	if err != nil {
		return nil, err
	}
	var record *store.Record
	err = WithStore(cfg, func(st *store.Store) error {
		record, err = st.Import(raw, DecodeOptions(cfg))
		return err
	})
	return record, err
}

// StartApiServer serves the API until the process is interrupted
func StartApiServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.StoreConfig.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	s, err := srv.NewApiServer(ctx, cfg, st, events.NewRegistry())
	if err != nil {
		return err
	}
	return s.Run()
}
