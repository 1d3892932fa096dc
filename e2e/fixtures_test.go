//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory to hold a collection
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateRecord writes a record file under tree/month in the workspace
func (tf *TUITestFramework) CreateRecord(tree, month, name, content string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	dir := filepath.Join(tf.workspace, "collection", tree, month)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create month directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}
	return path, nil
}

// CreateBrokenRecord lists a record whose content cannot be read
func (tf *TUITestFramework) CreateBrokenRecord(tree, month, name string) error {
	dir := filepath.Join(tf.workspace, "collection", tree, month)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create month directory: %w", err)
	}
	return os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, name))
}

// CreateCollection writes the standard two-tree collection and returns its root
func (tf *TUITestFramework) CreateCollection() (string, error) {
	records := []struct{ tree, month, name, content string }{
		{"pure", "2024-03", "alpha.sgf", "(;GM[1]SZ[9]PB[Kim]PW[Lee];B[ee];W[cc])"},
		{"pure", "2024-03", "beta.sgf", "(;GM[1]SZ[9]PB[Park]PW[Cho];B[dd])"},
		{"pure", "2024-02", "gamma.sgf", "(;GM[1]SZ[9];B[gg])"},
		{"ai", "2024-03", "alpha.sgf", "(;GM[1]SZ[9]PB[Kim]PW[Lee];B[ee](;W[cc])(;W[gg]))"},
		{"ai", "2024-02", "gamma.sgf", "(;GM[1]SZ[9];B[gg])"},
	}
	for _, r := range records {
		if _, err := tf.CreateRecord(r.tree, r.month, r.name, r.content); err != nil {
			return "", err
		}
	}
	return filepath.Join(tf.workspace, "collection"), nil
}
