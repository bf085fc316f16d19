// Command cadopt is the CLI front-end over the geometry preprocessing
// core: it parses a DXF drawing, runs it through pkg/preprocess, and
// writes the result as JSON, an SVG preview, and/or a .3mf asset (§6).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/chazu/cadcore/internal/dxfsource"
	"github.com/chazu/cadcore/internal/writer/jsonwriter"
	"github.com/chazu/cadcore/internal/writer/svgpreview"
	"github.com/chazu/cadcore/internal/writer/threemf"
	"github.com/chazu/cadcore/pkg/geom"
	"github.com/chazu/cadcore/pkg/preprocess"
)

const (
	exitOK         = 0
	exitFileError  = 1
	exitParseError = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cadopt", flag.ContinueOnError)
	output := fs.String("o", "out.json", "output JSON path")
	fs.StringVar(output, "output", "out.json", "output JSON path")
	writeGLB := fs.Bool("g", false, "also write a .3mf binary asset next to the output")
	fs.BoolVar(writeGLB, "glb", false, "also write a .3mf binary asset next to the output")
	wireframe := fs.Bool("w", false, "also write an .svg debug preview next to the output")
	fs.BoolVar(wireframe, "wireframe", false, "also write an .svg debug preview next to the output")
	junkFilter := fs.Bool("j", true, "enable percentile cull + island removal")
	fs.BoolVar(junkFilter, "junk-filter", true, "enable percentile cull + island removal")
	decimate := fs.Int("d", 0, "vertex-clustering grid resolution, 32..1024 (0 disables)")
	fs.IntVar(decimate, "decimate", 0, "vertex-clustering grid resolution, 32..1024 (0 disables)")
	minComponent := fs.Int("min-component", 100, "minimum triangle-island size kept by the junk filter")
	layers := fs.String("l", "", "comma-separated list of layers to include (default: all)")
	fs.StringVar(layers, "layers", "", "comma-separated list of layers to include (default: all)")

	if err := fs.Parse(args); err != nil {
		return exitFileError
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cadopt [flags] <drawing.dxf>")
		return exitFileError
	}
	inputPath := fs.Arg(0)

	logger := newLogger()
	runID := uuid.New()
	logger.Printf("run %s: opening %s", runID, inputPath)

	opts := geom.DefaultPreprocessorOptions()
	if *layers != "" {
		opts.IncludeLayers = geom.NewIncludeLayers(strings.Split(*layers, ","))
	}
	opts.JunkFilterEnabled = *junkFilter
	opts.JunkFilterMinComponentSize = *minComponent
	if *decimate != 0 {
		opts.ClusterGrid = clampGrid(*decimate)
	}
	if err := geom.ValidateOptions(opts); err != nil {
		logger.Printf("run %s: invalid options: %v", runID, err)
		return exitFileError
	}

	source, err := dxfsource.Open(inputPath)
	if err != nil {
		logger.Printf("run %s: %v", runID, err)
		return exitFileError
	}

	result, err := preprocess.Run(source, opts, func(layer string, processed, total int) {
		logger.Printf("run %s: simplifying %q: %d/%d", runID, layer, processed, total)
	})
	if err != nil {
		logger.Printf("run %s: parse failure: %v", runID, err)
		return exitParseError
	}

	logger.Printf("run %s: %d entities -> %d polylines, %d meshes (%.2f%% vertex reduction)",
		runID, result.Stats.OriginalEntities, len(result.Polylines), len(result.Meshes), result.Stats.ReductionPercent())

	if err := writeOutputs(*output, result, *writeGLB, *wireframe); err != nil {
		logger.Printf("run %s: %v", runID, err)
		return exitFileError
	}

	return exitOK
}

func writeOutputs(jsonPath string, result geom.OptimizedGeometry, writeThreeMF, writeSVG bool) error {
	f, err := os.Create(jsonPath)
	if err != nil {
		return errors.Wrapf(err, "create output %q", jsonPath)
	}
	defer f.Close()
	if err := jsonwriter.Write(f, result); err != nil {
		return errors.Wrap(err, "write json output")
	}

	base := strings.TrimSuffix(jsonPath, ".json")

	if writeThreeMF {
		mf, err := os.Create(base + ".3mf")
		if err != nil {
			return errors.Wrapf(err, "create %s.3mf", base)
		}
		defer mf.Close()
		if err := threemf.Write(mf, result); err != nil {
			return errors.Wrap(err, "write 3mf output")
		}
	}

	if writeSVG {
		sf, err := os.Create(base + ".svg")
		if err != nil {
			return errors.Wrapf(err, "create %s.svg", base)
		}
		defer sf.Close()
		svgpreview.Write(sf, result, svgpreview.DefaultOptions())
	}

	return nil
}

func clampGrid(grid int) int {
	if grid < 32 {
		return 32
	}
	if grid > 1024 {
		return 1024
	}
	return grid
}

// newLogger writes to stderr through go-colorable: ANSI escape sequences
// pass through when stderr is an interactive terminal and are stripped
// otherwise. The log lines this command prints carry no color codes.
func newLogger() *log.Logger {
	out := colorable.NewColorableStderr()
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		out = colorable.NewNonColorable(os.Stderr)
	}
	return log.New(out, "", log.LstdFlags)
}
