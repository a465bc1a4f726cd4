package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/surfacelab/pkg/formats"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

func TestBuildFlagsConfig(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantGrid int
		wantTopo surface.Topology
		wantErr  bool
	}{
		{"defaults", nil, 150, surface.Triangles, false},
		{"wireframe preset", []string{"-variant", "wireframe"}, 100, surface.Wireframe, false},
		{"steps override", []string{"-variant", "lit", "-steps", "8"}, 8, surface.Triangles, false},
		{"unknown variant", []string{"-variant", "solid"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, bf := newFlagSet("test")
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			cfg, err := bf.config()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Grid.USteps != tt.wantGrid || cfg.Grid.VSteps != tt.wantGrid {
				t.Errorf("grid %dx%d, want %d", cfg.Grid.USteps, cfg.Grid.VSteps, tt.wantGrid)
			}
			if cfg.Topology != tt.wantTopo {
				t.Errorf("topology %v, want %v", cfg.Topology, tt.wantTopo)
			}
		})
	}
}

func TestBuildFlagsBuild(t *testing.T) {
	fs, bf := newFlagSet("test")
	fs.Parse([]string{"-steps", "4", "-c", "0"})

	m, _, err := bf.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.VertexCount() != 25 || m.Params.C != 0 {
		t.Errorf("unexpected mesh %s", m)
	}
	if err := m.Check(); err != nil {
		t.Errorf("check: %v", err)
	}

	fs, bf = newFlagSet("test")
	fs.Parse([]string{"-steps", "256"})
	if _, _, err := bf.build(); !errors.Is(err, surface.ErrIndexOverflow) {
		t.Errorf("expected ErrIndexOverflow at 257x257 with 16-bit indices, got %v", err)
	}
}

func TestPrintSTL(t *testing.T) {
	fs, bf := newFlagSet("test")
	fs.Parse([]string{"-variant", "lit", "-steps", "4"})
	m, _, err := bf.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "surface.stl")
	if err := formats.SaveSTL(path, m); err != nil {
		t.Fatalf("SaveSTL: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	stl, err := formats.ParseSTL(data)
	if err != nil {
		t.Fatalf("ParseSTL: %v", err)
	}

	var out bytes.Buffer
	printSTL(&out, path, stl)
	for _, want := range []string{
		"Header:     surfacelab a=1.000 c=0.500 phi=0.300",
		"Facets:     32 ",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
