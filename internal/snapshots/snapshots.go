// Package snapshots compares JSON renderings of values with snapshot files
// stored next to the tests.
package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephburnett/jd/lib"
)

// Dir holds the snapshot files, relative to the package under test.
const Dir = "__snapshots__"

// Test compares value, rendered as JSON, with the snapshot called name.
// A missing snapshot is written, except in CI where it is an error. Set
// UPDATE_SNAPSHOTS=true to rewrite snapshots after an intended change.
func Test(name string, value any) error {
	got, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	snapPath := filepath.Join(Dir, name+".snap")

	if os.Getenv("UPDATE_SNAPSHOTS") == "true" {
		return writeSnap(snapPath, got)
	}

	want, err := os.ReadFile(snapPath) //#nosec G304 -- test fixture path
	if errors.Is(err, os.ErrNotExist) {
		if os.Getenv("GITHUB_ACTIONS") == "true" {
			return fmt.Errorf("snapshot %s is missing; run the tests locally with UPDATE_SNAPSHOTS=true and commit it", snapPath)
		}
		return writeSnap(snapPath, got)
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", snapPath, err)
	}

	gotNode, err := jd.ReadJsonString(string(got))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	wantNode, err := jd.ReadJsonString(string(want))
	if err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", snapPath, err)
	}

	if diff := wantNode.Diff(gotNode); len(diff) > 0 {
		return fmt.Errorf("%s does not match its snapshot:\n%s\nrun with UPDATE_SNAPSHOTS=true if this is expected", name, diff.Render())
	}
	return nil
}

func writeSnap(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}
