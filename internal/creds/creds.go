package creds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMissingField is returned for a credentials file without a required field.
var ErrMissingField = errors.New("missing credentials field")

// RobotCredentials holds the connection details for a Viam robot.
type RobotCredentials struct {
	Address  string `json:"address"`
	EntityID string `json:"entity_id"`
	APIKey   string `json:"api_key"`
}

// Validate checks that every field is set.
func (c *RobotCredentials) Validate() error {
	switch {
	case c.Address == "":
		return fmt.Errorf("%w: address", ErrMissingField)
	case c.EntityID == "":
		return fmt.Errorf("%w: entity_id", ErrMissingField)
	case c.APIKey == "":
		return fmt.Errorf("%w: api_key", ErrMissingField)
	}
	return nil
}

// Load reads, parses and validates robot credentials from a JSON file.
func Load(path string) (*RobotCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	var c RobotCredentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing credentials file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("credentials file %s: %w", path, err)
	}
	return &c, nil
}
