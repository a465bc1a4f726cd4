// surfacetool builds surface meshes from the command line and inspects or
// exports them without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Faultbox/surfacelab/pkg/formats"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "export":
		err = cmdExport(args)
	case "check":
		err = cmdCheck(args)
	case "stl":
		err = cmdSTL(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`surfacetool - surface mesh utility

Usage:
  surfacetool <command> [options]

Commands:
  info   [options]               Build a mesh and print counts and bounds
  export [options] <file>        Write the mesh as .obj or .stl
  check  [options]               Build a mesh and verify its invariants
  stl    <file>                  Read a binary STL file and print a summary

Options:
  -a, -c, -phi                   Shape parameters (default 1, 0.5, 0.3)
  -variant                       wireframe, lit or textured (default textured)
  -steps                         Grid steps along u and v (0 = variant default)
  -index                         Index width, 16 or 32 (default 16)

Examples:
  surfacetool info -a 2 -phi 0.7
  surfacetool export -variant lit -steps 64 surface.obj
  surfacetool check -c 0 -steps 255
  surfacetool stl surface.stl`)
}

// buildFlags are the options shared by all commands.
type buildFlags struct {
	params  surface.Params
	variant string
	steps   int
	index   int
}

func newFlagSet(name string) (*flag.FlagSet, *buildFlags) {
	bf := &buildFlags{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Float64Var(&bf.params.A, "a", 1.0, "Base radius")
	fs.Float64Var(&bf.params.C, "c", 0.5, "Curvature")
	fs.Float64Var(&bf.params.Phi, "phi", 0.3, "Tilt in radians")
	fs.StringVar(&bf.variant, "variant", "textured", "Preset: wireframe, lit or textured")
	fs.IntVar(&bf.steps, "steps", 0, "Grid steps along u and v (0 = preset default)")
	fs.IntVar(&bf.index, "index", 16, "Index width: 16 or 32")
	return fs, bf
}

// config resolves the flags into a builder configuration.
func (bf *buildFlags) config() (surface.Config, error) {
	v, err := surface.ParseVariant(bf.variant)
	if err != nil {
		return surface.Config{}, err
	}
	cfg := surface.VariantConfig(v)
	if bf.steps > 0 {
		cfg.Grid.USteps = bf.steps
		cfg.Grid.VSteps = bf.steps
	}
	cfg.IndexWidth = surface.IndexWidth(bf.index)
	return cfg, nil
}

func (bf *buildFlags) build() (*surface.Mesh, time.Duration, error) {
	cfg, err := bf.config()
	if err != nil {
		return nil, 0, err
	}
	b, err := surface.NewBuilder(cfg)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	m, err := b.Build(bf.params)
	return m, time.Since(start), err
}

func cmdInfo(args []string) error {
	fs, bf := newFlagSet("info")
	fs.Parse(args)

	m, elapsed, err := bf.build()
	if err != nil {
		return err
	}
	printInfo(m, elapsed)
	return nil
}

func printInfo(m *surface.Mesh, elapsed time.Duration) {
	b := m.Bounds()
	fmt.Printf("Params:     %s\n", m.Params)
	fmt.Printf("Grid:       %dx%d\n", m.Grid.USteps, m.Grid.VSteps)
	fmt.Printf("Topology:   %s\n", m.Topology)
	fmt.Printf("Vertices:   %d\n", m.VertexCount())
	fmt.Printf("Primitives: %d\n", m.PrimitiveCount())
	fmt.Printf("Attributes: %s\n", attributeList(m))
	fmt.Printf("Extent:     z %.4f .. %.4f (half height %.4f)\n", m.Extent.Min, m.Extent.Max, m.Extent.HalfHeight())
	fmt.Printf("Bounds:     min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Printf("Build time: %s\n", elapsed)
}

func attributeList(m *surface.Mesh) string {
	names := []string{"position"}
	if m.Normals != nil {
		names = append(names, "normal")
	}
	if m.Tangents != nil {
		names = append(names, "tangent")
	}
	if m.UVs != nil {
		names = append(names, "uv")
	}
	return strings.Join(names, ", ")
}

func cmdExport(args []string) error {
	fs, bf := newFlagSet("export")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: surfacetool export [options] <file.obj|file.stl>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	m, _, err := bf.build()
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		err = formats.SaveOBJ(path, m)
	case ".stl":
		err = formats.SaveSTL(path, m)
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %s\n", path, m)
	return nil
}

func cmdCheck(args []string) error {
	fs, bf := newFlagSet("check")
	fs.Parse(args)

	m, _, err := bf.build()
	if err != nil {
		return err
	}
	if err := m.Check(); err != nil {
		return err
	}
	fmt.Printf("OK: %s\n", m)
	return nil
}

func cmdSTL(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: surfacetool stl <file.stl>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	stl, err := formats.ParseSTL(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	printSTL(os.Stdout, args[0], stl)
	return nil
}

func printSTL(w io.Writer, path string, stl *formats.STL) {
	lo, hi := stl.Bounds()
	degenerate := 0
	for _, f := range stl.Facets {
		if f.Normal == ([3]float32{}) {
			degenerate++
		}
	}
	fmt.Fprintf(w, "File:       %s\n", path)
	fmt.Fprintf(w, "Header:     %s\n", stl.Title())
	fmt.Fprintf(w, "Facets:     %d (%d without normal)\n", len(stl.Facets), degenerate)
	fmt.Fprintf(w, "Bounds:     min (%.3f, %.3f, %.3f) max (%.3f, %.3f, %.3f)\n",
		lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}
