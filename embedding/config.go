// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package embedding

import (
	"errors"
	"strings"
	"time"
)

// DefaultTimeout bounds a single provider call. The rule-based matching
// path must complete even when the provider hangs, so every embed call
// carries a deadline.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for embedding providers.
type Config struct {
	// Host is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server.
	Host string

	// Model is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	Model string

	// Token authenticates against the embedding service.
	// "none" works for local services that don't require authentication.
	Token string

	// Timeout bounds each provider call. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the embedding model name.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// DefaultConfig returns a config pointed at a local OpenAI-compatible server.
func DefaultConfig() *Config {
	return &Config{
		Host:    "http://localhost:11434/v1",
		Model:   "embeddinggemma",
		Token:   "none",
		Timeout: DefaultTimeout,
	}
}

// NewConfig creates a config from defaults plus the given options.
func NewConfig(opts ...ConfigOption) *Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize trims whitespace and fills zero values with defaults.
func (c *Config) Normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.Model = strings.TrimSpace(c.Model)
	if c.Token == "" {
		c.Token = "none"
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate normalizes the config and checks required fields.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("embedding config: Host is required")
	}
	if c.Model == "" {
		return errors.New("embedding config: Model is required")
	}
	return nil
}
