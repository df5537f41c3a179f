/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/rxapi/cache/strategy"
)

// document is the YAML shape of a runtime configuration file.
// Absent keys keep their defaults.
type document struct {
	MaxUnwrap       *int    `yaml:"maxUnwrap,omitempty"`
	Cache           *string `yaml:"cache,omitempty"`
	CacheSize       *int    `yaml:"cacheSize,omitempty"`
	VerifyContracts *bool   `yaml:"verifyContracts,omitempty"`
}

// Load reads a YAML document from r and overlays it on DefaultConfig.
// Unknown keys are rejected. The result is validated.
func Load(r io.Reader) (apis.Config, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return apis.Config{}, errors.Wrap(err, "objrt(config): decode")
	}

	var opts []Option
	if doc.MaxUnwrap != nil {
		if *doc.MaxUnwrap < 0 {
			return apis.Config{}, errors.Wrapf(ErrInvalidMaxUnwrap, "%d", *doc.MaxUnwrap)
		}
		opts = append(opts, WithMaxUnwrap(*doc.MaxUnwrap))
	}
	if doc.Cache != nil {
		s, err := strategy.Parse(*doc.Cache)
		if err != nil {
			return apis.Config{}, errors.Wrap(err, "objrt(config): cache")
		}
		opts = append(opts, WithCache(s))
	}
	if doc.CacheSize != nil {
		if *doc.CacheSize <= 0 {
			return apis.Config{}, errors.Wrapf(ErrInvalidCacheSize, "%d", *doc.CacheSize)
		}
		opts = append(opts, WithCacheSize(*doc.CacheSize))
	}
	if doc.VerifyContracts != nil {
		opts = append(opts, WithVerifyContracts(*doc.VerifyContracts))
	}

	cfg := NewConfig(opts...)
	if err := Validate(cfg); err != nil {
		return apis.Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load over the named file.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, errors.Wrapf(err, "objrt(config): read %s", path)
	}
	cfg, err := Load(bytes.NewReader(data))
	if err != nil {
		return apis.Config{}, errors.WithMessage(err, path)
	}
	return cfg, nil
}

// Marshal renders cfg as a YAML document accepted by Load.
func Marshal(cfg apis.Config) ([]byte, error) {
	text, err := cfg.Cache.MarshalText()
	if err != nil {
		return nil, err
	}
	cache := string(text)
	return yaml.Marshal(document{
		MaxUnwrap:       &cfg.MaxUnwrap,
		Cache:           &cache,
		CacheSize:       &cfg.CacheSize,
		VerifyContracts: &cfg.VerifyContracts,
	})
}
