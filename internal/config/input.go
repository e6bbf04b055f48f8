package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario and user record files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// Format is an input file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks the encoding from the file extension. Anything that is not .json
// is read as YAML.
func DetectFormat(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFromFile loads a projection request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ProjectionRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	req, err := ip.Parse(data, DetectFormat(filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return req, nil
}

// Parse decodes and validates a projection request.
func (ip *InputParser) Parse(data []byte, format Format) (*domain.ProjectionRequest, error) {
	var req domain.ProjectionRequest
	if err := decode(data, format, &req); err != nil {
		return nil, err
	}

	if err := ip.ValidateInput(&req); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &req, nil
}

// ValidateInput validates a loaded request
func (ip *InputParser) ValidateInput(req *domain.ProjectionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty input", domain.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	// Duplicate event names make the per-year event column ambiguous.
	seen := make(map[string]int, len(req.Events))
	for i, e := range req.Events {
		name := e.DisplayName()
		if name == "" {
			continue
		}
		if j, ok := seen[name]; ok {
			return fmt.Errorf("%w: events %d and %d are both named %q", domain.ErrInvalidInput, j, i, name)
		}
		seen[name] = i
	}
	return nil
}

// UserRecordsFile is the import format for the user store.
type UserRecordsFile struct {
	Users []domain.UserRecords `json:"users" yaml:"users"`
}

// LoadUserRecords reads user records for import.
func (ip *InputParser) LoadUserRecords(filename string) ([]domain.UserRecords, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file UserRecordsFile
	if err := decode(data, DetectFormat(filename), &file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if len(file.Users) == 0 {
		return nil, fmt.Errorf("%w: %s contains no users", domain.ErrInvalidInput, filename)
	}

	for i, u := range file.Users {
		if err := ip.validateUserRecords(u); err != nil {
			return nil, fmt.Errorf("user %d: %w", i, err)
		}
	}
	return file.Users, nil
}

func (ip *InputParser) validateUserRecords(u domain.UserRecords) error {
	if u.Profile == nil || strings.TrimSpace(u.Profile.UserID) == "" {
		return fmt.Errorf("%w: profile.user_id is required", domain.ErrInvalidInput)
	}
	snapshot := domain.BuildSnapshot(u)
	if err := snapshot.Validate(); err != nil {
		return err
	}
	overrides := domain.ProfileOverrides(u)
	return overrides.Validate()
}

func decode(data []byte, format Format, out any) error {
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: failed to parse JSON: %v", domain.ErrInvalidInput, err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: failed to parse YAML: %v", domain.ErrInvalidInput, err)
		}
	}
	return nil
}
