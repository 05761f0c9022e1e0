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

package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
	sigsyaml "sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-pel/pkg/log"
)

type StoreConfig struct {
	Path string `yaml:"path" json:"path"`
}

type APIConfig struct {
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
	Port    int    `yaml:"port,omitempty" json:"port,omitempty"`
	// Timeout of remote requests in seconds
	Timeout int `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type DecodeConfig struct {
	// MaxCaptureSize limits the size of captures read from files and requests
	MaxCaptureSize  int64 `yaml:"max_capture_size" json:"max_capture_size"`
	HeadersOnly     bool  `yaml:"headers_only" json:"headers_only"`
	StopAtLogLength bool  `yaml:"stop_at_log_length" json:"stop_at_log_length"`
}

type Config struct {
	LogLevel      string `yaml:"log_level" json:"log_level"`
	*StoreConfig  `yaml:"store" json:"store"`
	*APIConfig    `yaml:"api" json:"api"`
	*DecodeConfig `yaml:"decode" json:"decode"`
	filepath      string
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, StoreFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		StoreConfig: &StoreConfig{
			Path: DefaultStorePath(),
		},
		APIConfig: &APIConfig{
			Address: DefaultAPIAddress,
			Port:    DefaultAPIPort,
			Timeout: DefaultRemoteTimeout,
		},
		DecodeConfig: &DecodeConfig{
			MaxCaptureSize: DefaultMaxCaptureSize,
		},
		filepath: DefaultConfigPath(),
	}
}

// Load returns the defaults overridden by the config file at path.
// A missing file is not an error. An empty path means DefaultConfigPath.
func Load(path string) (*Config, error) {
	c := NewDefaultConfig()
	if path != "" {
		c.filepath = path
	}
	if err := c.LoadConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("Config file %s not found, using defaults", c.filepath)
			return c, nil
		}
		return nil, err
	}
	return c, c.Validate()
}

func (c *Config) FilePath() string {
	return c.filepath
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = ioutil.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

func (c *Config) LoadConfig() error {
	data, err := ioutil.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return ErrInvalidConfig{Field: "log_level", Reason: err.Error()}
	}
	if c.StoreConfig == nil || c.StoreConfig.Path == "" {
		return ErrInvalidConfig{Field: "store.path", Reason: "must not be empty"}
	}
	if c.APIConfig == nil || c.APIConfig.Port <= 0 || c.APIConfig.Port > 65535 {
		return ErrInvalidConfig{Field: "api.port", Reason: "must be in range 1-65535"}
	}
	if c.DecodeConfig == nil || c.DecodeConfig.MaxCaptureSize <= 0 {
		return ErrInvalidConfig{Field: "decode.max_capture_size", Reason: "must be positive"}
	}
	return nil
}

// ListenAddress is the address the API server binds to
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.APIConfig.Address, strconv.Itoa(c.APIConfig.Port))
}

// APIEndpoint is the base URL the API client talks to
func (c *Config) APIEndpoint() string {
	return fmt.Sprintf("http://%s", c.ListenAddress())
}

func (c *Config) String() string {
	result, err := sigsyaml.Marshal(c)
	if err != nil {
		log.Error("Error occured while marshaling config, %s", err)
		return ""
	}
	return fmt.Sprintf("---\n%s", string(result))
}
