package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGetRobHomeWithEnvVar tests ROB_HOME env var takes precedence
func TestGetRobHomeWithEnvVar(t *testing.T) {
	customHome := filepath.Join(t.TempDir(), "custom")
	t.Setenv("ROB_HOME", customHome)

	home, err := GetRobHome()
	if err != nil {
		t.Fatalf("GetRobHome() error = %v", err)
	}
	if home != customHome {
		t.Errorf("GetRobHome() = %q, want %q", home, customHome)
	}
	if info, err := os.Stat(home); err != nil || !info.IsDir() {
		t.Errorf("home directory not created: %v", err)
	}
}

// TestGetRobHomeWithMarker tests the nearest .rob-root ancestor is used
func TestGetRobHomeWithMarker(t *testing.T) {
	t.Setenv("ROB_HOME", "")

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, RootMarker), nil, 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "reviews", "2024")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, nested)

	home, err := GetRobHome()
	if err != nil {
		t.Fatalf("GetRobHome() error = %v", err)
	}
	if want := filepath.Join(root, ".rob"); home != want {
		t.Errorf("GetRobHome() = %q, want %q", home, want)
	}
}

// TestGetRobHomeFallback tests the working directory fallback
func TestGetRobHomeFallback(t *testing.T) {
	t.Setenv("ROB_HOME", "")

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	if _, ok := findProjectRoot(dir); ok {
		t.Skip("a .rob-root marker exists above the temp directory")
	}

	home, err := GetRobHome()
	if err != nil {
		t.Fatalf("GetRobHome() error = %v", err)
	}
	if want := filepath.Join(dir, ".rob"); home != want {
		t.Errorf("GetRobHome() = %q, want %q", home, want)
	}
}
