// Package main provides a file-to-file retopology command around the
// Instant Meshes engine: it remeshes the input file into the output
// file and reports the result size.
package main

import (
	"flag"
	"log"

	"github.com/banshee-data/retopo/bridge"
	"github.com/banshee-data/retopo/engine"
)

// Config holds the command configuration.
type Config struct {
	Input      string
	Output     string
	Binary     string
	ParamsFile string
	Verbose    bool
	Params     engine.Params
}

// debugLogger forwards engine debug output to the standard logger.
type debugLogger struct{}

func (debugLogger) Debugf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func main() {
	cfg := parseFlags()

	if cfg.Input == "" || cfg.Output == "" {
		log.Fatal("Both -in and -out are required")
	}

	if cfg.ParamsFile != "" {
		pc, err := engine.LoadParamsConfig(cfg.ParamsFile)
		if err != nil {
			log.Fatalf("Failed to load params file: %v", err)
		}
		cfg.Params = overlayFlags(pc.Apply(engine.DefaultParams()), cfg.Params)
	}

	eng := engine.NewCommandEngine(cfg.Binary)
	b := bridge.New(eng)
	if cfg.Verbose {
		eng.SetLogger(debugLogger{})
		b.SetLogger(debugLogger{})
	}

	vertices, faces, err := b.RemeshFile(cfg.Input, cfg.Output, cfg.Params)
	if err != nil {
		log.Fatalf("Remesh failed: %v", err)
	}

	log.Printf("Wrote %s: %d vertices, %d faces (width %d)",
		cfg.Output, vertices.Rows(), faces.Rows(), faces.Cols)
}

func parseFlags() Config {
	cfg := Config{Params: engine.DefaultParams()}

	flag.StringVar(&cfg.Input, "in", "", "Path to input mesh or point cloud")
	flag.StringVar(&cfg.Output, "out", "", "Path to output mesh")
	flag.StringVar(&cfg.Binary, "engine", "", "Instant Meshes binary (default: InstantMeshes on PATH)")
	flag.StringVar(&cfg.ParamsFile, "params", "", "JSON params file; flags set below override it")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")

	flag.IntVar(&cfg.Params.TargetVertexCount, "vertices", cfg.Params.TargetVertexCount, "Target vertex count (-1: derive from input)")
	flag.IntVar(&cfg.Params.TargetFaceCount, "faces", cfg.Params.TargetFaceCount, "Target face count (-1: unset)")
	flag.Float64Var(&cfg.Params.TargetEdgeLength, "edge-length", cfg.Params.TargetEdgeLength, "Target edge length (-1: unset)")
	flag.IntVar(&cfg.Params.Rosy, "rosy", cfg.Params.Rosy, "Orientation symmetry order (2, 4 or 6)")
	flag.IntVar(&cfg.Params.Posy, "posy", cfg.Params.Posy, "Position symmetry order (4 or 6)")
	flag.Float64Var(&cfg.Params.CreaseAngle, "crease", cfg.Params.CreaseAngle, "Crease angle threshold in degrees (-1: disabled)")
	flag.BoolVar(&cfg.Params.Extrinsic, "extrinsic", cfg.Params.Extrinsic, "Use extrinsic smoothness energy")
	flag.BoolVar(&cfg.Params.AlignToBoundaries, "boundaries", cfg.Params.AlignToBoundaries, "Align fields to boundaries")
	flag.IntVar(&cfg.Params.SmoothIterations, "smooth", cfg.Params.SmoothIterations, "Smoothing iteration count")
	flag.IntVar(&cfg.Params.KnnPoints, "knn", cfg.Params.KnnPoints, "kNN point count for point-cloud mode")
	flag.BoolVar(&cfg.Params.PureQuad, "pure-quad", cfg.Params.PureQuad, "Generate a pure quad mesh")
	flag.BoolVar(&cfg.Params.Deterministic, "deterministic", cfg.Params.Deterministic, "Deterministic (reproducible) mode")
	flag.IntVar(&cfg.Params.Threads, "threads", cfg.Params.Threads, "Engine thread count (0: automatic)")

	flag.Parse()

	return cfg
}

// overlayFlags copies the values of explicitly set parameter flags
// from flagged onto base, so the command line wins over the params
// file and the file wins over the defaults.
func overlayFlags(base, flagged engine.Params) engine.Params {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vertices":
			base.TargetVertexCount = flagged.TargetVertexCount
		case "faces":
			base.TargetFaceCount = flagged.TargetFaceCount
		case "edge-length":
			base.TargetEdgeLength = flagged.TargetEdgeLength
		case "rosy":
			base.Rosy = flagged.Rosy
		case "posy":
			base.Posy = flagged.Posy
		case "crease":
			base.CreaseAngle = flagged.CreaseAngle
		case "extrinsic":
			base.Extrinsic = flagged.Extrinsic
		case "boundaries":
			base.AlignToBoundaries = flagged.AlignToBoundaries
		case "smooth":
			base.SmoothIterations = flagged.SmoothIterations
		case "knn":
			base.KnnPoints = flagged.KnnPoints
		case "pure-quad":
			base.PureQuad = flagged.PureQuad
		case "deterministic":
			base.Deterministic = flagged.Deterministic
		case "threads":
			base.Threads = flagged.Threads
		}
	})
	return base
}
