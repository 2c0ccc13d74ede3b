// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gostlink

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	AllSupportedVIds = 0
	AllSupportedPIds = 0

	DefaultBlockSize = 1024
	MaxBlockSize     = dataBufferSize
	MaxVerbosity     = 3
)

// Config selects the probe to open and tunes the tool around it.
// A zero VendorID or ProductID matches every supported st-link.
type Config struct {
	VendorID  uint16 `yaml:"vid"`
	ProductID uint16 `yaml:"pid"`
	Serial    string `yaml:"serial"`

	// BlockSize is the largest memory transfer issued in one usb command.
	BlockSize int `yaml:"block_size"`
	Verbosity int `yaml:"verbosity"`
}

func DefaultConfig() Config {
	return NewStLinkConfig(AllSupportedVIds, AllSupportedPIds, "", DefaultBlockSize)
}

func NewStLinkConfig(vid, pid uint16, serial string, blockSize int) Config {
	return Config{
		VendorID:  vid,
		ProductID: pid,
		Serial:    serial,
		BlockSize: blockSize,
	}
}

// LoadConfig reads a yaml file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.BlockSize <= 0 || c.BlockSize > MaxBlockSize {
		return fmt.Errorf("block size %d out of range (1..%d)", c.BlockSize, MaxBlockSize)
	}
	if c.BlockSize%4 != 0 {
		return fmt.Errorf("block size %d is not a multiple of 4", c.BlockSize)
	}
	if c.Verbosity < 0 || c.Verbosity > MaxVerbosity {
		return fmt.Errorf("verbosity %d out of range (0..%d)", c.Verbosity, MaxVerbosity)
	}
	return nil
}
