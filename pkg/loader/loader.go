package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/xhad/profile-embed/internal/models"
)

// LoadProfile reads the portfolio data file at path.
func LoadProfile(path string) (*models.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	profile, err := DecodeProfile(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return profile, nil
}

// DecodeProfile decodes a single JSON object. Trailing data is an error.
func DecodeProfile(r io.Reader) (*models.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
