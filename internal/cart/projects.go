package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/kv"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const projectCodeAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewProjectCode generates a short code for a new project, e.g. "P-7K2Q9XMA".
func NewProjectCode() (string, error) {
	id, err := gonanoid.Generate(projectCodeAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate project code: %w", err)
	}
	return "P-" + id, nil
}

// ValidateProjectCode rejects codes that cannot be part of a storage key.
func ValidateProjectCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("project code cannot be empty")
	}
	if err := kv.ValidateKey(ProjectKey(code)); err != nil {
		return fmt.Errorf("invalid project code %q", code)
	}
	return nil
}

// ListProjects returns the codes of every project with a stored item list.
func ListProjects(backend kv.Backend) ([]string, error) {
	keys, err := backend.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	codes := []string{}
	for _, key := range keys {
		if code, ok := strings.CutPrefix(key, projectKeyPrefix); ok && code != "" {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// ActiveProject returns the project code remembered between CLI runs, or ""
// when none is remembered.
func ActiveProject(backend kv.Backend) (string, error) {
	code, err := backend.Get(ActiveProjectKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read active project: %w", err)
	}
	return strings.TrimSpace(code), nil
}

// SetActiveProject remembers code; an empty code forgets the selection.
func SetActiveProject(backend kv.Backend, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		if err := backend.Remove(ActiveProjectKey); err != nil {
			return fmt.Errorf("failed to clear active project: %w", err)
		}
		return nil
	}

	if err := ValidateProjectCode(code); err != nil {
		return err
	}
	if err := backend.Set(ActiveProjectKey, code); err != nil {
		return fmt.Errorf("failed to store active project: %w", err)
	}
	return nil
}
