package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zephyrtronium/calc"
)

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Precision != calc.DefaultPrec {
		t.Errorf("default precision is %d", cfg.Precision)
	}
	if cfg.Scientific {
		t.Error("scientific notation on by default")
	}
	if cfg.Given == nil || len(cfg.Given) != 0 {
		t.Errorf("default given is %v", cfg.Given)
	}
}

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "calc.yaml")
	src := `precision: 40
scientific: true
history: /tmp/hist
given:
  y: x + 1
  x: "2"
`
	if err := os.WriteFile(name, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Precision != 40 || !cfg.Scientific || cfg.History != "/tmp/hist" {
		t.Errorf("wrong config %+v", cfg)
	}
	if got, want := cfg.names(), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("want names %q, got %q", want, got)
	}
	if cfg.Given["y"] != "x + 1" {
		t.Errorf("y is %q", cfg.Given["y"])
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file gave %v", err)
	}
	name := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(name, []byte("precision: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(name); err == nil {
		t.Error("no error from malformed config")
	}
}
