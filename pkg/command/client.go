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
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-pel/pkg/config"
	"jinr.ru/greenlab/go-pel/pkg/report"
	"jinr.ru/greenlab/go-pel/pkg/store"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
	req       *req.Req
}

func NewApiClient(cfg *config.Config) *ApiClient {
	r := req.New()
	r.SetTimeout(time.Duration(cfg.APIConfig.Timeout) * time.Second)
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("%s/api", cfg.APIEndpoint()),
		req:       r,
	}
}

func (c *ApiClient) logsUrl(serial string) string {
	return fmt.Sprintf("%s/devices/%s/logs", c.ApiPrefix, serial)
}

func (c *ApiClient) logUrl(serial string, id uint64) string {
	return fmt.Sprintf("%s/%d", c.logsUrl(serial), id)
}

func decodeParams(format report.Format, headersOnly bool) req.QueryParam {
	return req.QueryParam{
		"format":       string(format),
		"headers_only": strconv.FormatBool(headersOnly),
	}
}

var captureHeader = req.Header{"Content-Type": "application/octet-stream"}

// checkStatus returns ErrUnexpectedStatus unless the response has the expected status code
func checkStatus(r *req.Resp, expected int) error {
	if r.Response().StatusCode != expected {
		return ErrUnexpectedStatus{
			Status:  r.Response().Status,
			Message: r.String(),
		}
	}
	return nil
}

// Decode sends a raw capture to the server and returns the decoded report
func (c *ApiClient) Decode(raw []byte, format report.Format, headersOnly bool) ([]byte, error) {
	r, err := c.req.Post(fmt.Sprintf("%s/decode", c.ApiPrefix), captureHeader, decodeParams(format, headersOnly), raw)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// Import sends a raw capture to the server store
func (c *ApiClient) Import(raw []byte) (*store.Record, error) {
	r, err := c.req.Post(fmt.Sprintf("%s/logs", c.ApiPrefix), captureHeader, raw)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusCreated); err != nil {
		return nil, err
	}
	record := &store.Record{}
	if err := r.ToJSON(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Devices returns the serial numbers of devices with stored logs
func (c *ApiClient) Devices() ([]string, error) {
	r, err := c.req.Get(fmt.Sprintf("%s/devices", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	var devices []string
	if err := r.ToJSON(&devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Logs returns the records of the logs stored for a device
func (c *ApiClient) Logs(serial string) ([]*store.Record, error) {
	r, err := c.req.Get(c.logsUrl(serial))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	var records []*store.Record
	if err := r.ToJSON(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// Log returns the decoded report of a stored log
func (c *ApiClient) Log(serial string, id uint64, format report.Format, headersOnly bool) ([]byte, error) {
	r, err := c.req.Get(c.logUrl(serial, id), decodeParams(format, headersOnly))
	if err != nil {
		return nil, err
	}
	if err := checkStatus(r, http.StatusOK); err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// DeleteLog removes a stored log
func (c *ApiClient) DeleteLog(serial string, id uint64) error {
	r, err := c.req.Delete(c.logUrl(serial, id))
	if err != nil {
		return err
	}
	return checkStatus(r, http.StatusNoContent)
}

// IsNotFound reports whether err is a not found response of the server
func IsNotFound(err error) bool {
	var status ErrUnexpectedStatus
	return errors.As(err, &status) && status.NotFound()
}
