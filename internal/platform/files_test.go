package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	nonExistentFile := filepath.Join(t.TempDir(), "nonexistent.png")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")

	path, err := SaveFile(dir, "req-1.png", []byte("first"))
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if path != filepath.Join(dir, "req-1.png") {
		t.Errorf("Unexpected path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("Expected content 'first', got %q", data)
	}

	// A second save with the same name must not overwrite
	second, err := SaveFile(dir, "req-1.png", []byte("second"))
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if second != filepath.Join(dir, "req-1 (1).png") {
		t.Errorf("Expected numbered name, got %s", second)
	}

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 files, got %d", len(entries))
	}
}

func TestSaveFile_StripsDirectories(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveFile(dir, "../../escape.zip", []byte("x"))
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("File escaped the target directory: %s", path)
	}
}

func TestSaveFile_EmptyName(t *testing.T) {
	_, err := SaveFile(t.TempDir(), "  ", []byte("x"))
	if !errors.Is(err, ErrEmptyFileName) {
		t.Errorf("Expected ErrEmptyFileName, got %v", err)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	path, err := UniquePath(dir, "anim.gif")
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	if path != filepath.Join(dir, "anim.gif") {
		t.Errorf("Expected plain name, got %s", path)
	}

	for _, name := range []string{"anim.gif", "anim (1).gif"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	path, err = UniquePath(dir, "anim.gif")
	if err != nil {
		t.Fatalf("UniquePath failed: %v", err)
	}
	if path != filepath.Join(dir, "anim (2).gif") {
		t.Errorf("Expected anim (2).gif, got %s", path)
	}
}
