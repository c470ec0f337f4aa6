// Command retrofit converts a legacy warehouse layout for AGV operation and
// prints a feasibility report.
//
//	retrofit -layout site.yaml -out site.json.sz
//	retrofit -reference -json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dd0wney/cluso-retrofit/pkg/config"
	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/distance"
	"github.com/dd0wney/cluso-retrofit/pkg/export"
	"github.com/dd0wney/cluso-retrofit/pkg/layout"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
	"github.com/dd0wney/cluso-retrofit/pkg/warehouse"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	layoutPath   string
	reference    bool
	configPath   string
	algorithm    string
	outPath      string
	matrixPath   string
	matrixFormat string
	graphPath    string
	jsonOutput   bool
	logLevel     string
	logFormat    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("retrofit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.layoutPath, "layout", "", "Legacy layout file (.yaml, .yml or .json)")
	fs.BoolVar(&o.reference, "reference", false, "Convert the built-in 5-aisle reference layout")
	fs.StringVar(&o.configPath, "config", "", "Simulation config YAML (defaults when empty)")
	fs.StringVar(&o.algorithm, "algorithm", "auto", "Distance algorithm: auto, floyd-warshall or dijkstra")
	fs.StringVar(&o.outPath, "out", "", "Write the export document here (.sz suffix compresses)")
	fs.StringVar(&o.matrixPath, "matrix", "", "Write the distance matrix here")
	fs.StringVar(&o.matrixFormat, "matrix-format", "nested", "Distance matrix layout: nested or flat")
	fs.StringVar(&o.graphPath, "graph", "", "Write the navigation graph here")
	fs.BoolVar(&o.jsonOutput, "json", false, "Print the conversion result as JSON instead of the report")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "text", "Log format: text or json")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.layoutPath != "" && o.reference {
		return o, errors.New("-layout and -reference are mutually exclusive")
	}
	if o.layoutPath == "" {
		o.reference = true
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	level, err := logging.LookupLevel(o.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger, err := logging.New(o.logFormat, stderr, level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := convert(ctx, o, logger, stdout); err != nil {
		logger.Error("retrofit failed", logging.Error(err))
		fmt.Fprintln(stderr, errorStyle.Render("error: "+err.Error()))
		return 1
	}
	return 0
}

func convert(ctx context.Context, o options, logger logging.Logger, stdout io.Writer) error {
	w, err := loadLayout(o)
	if err != nil {
		return err
	}

	opts := converter.DefaultOptions()
	opts.Logger = logger
	if opts.Distance.Algorithm, err = distance.ParseAlgorithm(o.algorithm); err != nil {
		return err
	}
	if o.configPath != "" {
		if opts.Config, err = config.Load(o.configPath); err != nil {
			return err
		}
	}

	out, err := converter.New(opts).Convert(ctx, w)
	if err != nil {
		return err
	}
	if err := writeExports(o, out, logger); err != nil {
		return err
	}

	if o.jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	_, err = io.WriteString(stdout, renderReport(out))
	return err
}

func loadLayout(o options) (*warehouse.LegacyWarehouse, error) {
	if o.reference {
		return navgraph.BuildReference(navgraph.DefaultReferenceConfig())
	}
	return layout.LoadFile(o.layoutPath)
}

func writeExports(o options, out *converter.RoboticWarehouse, logger logging.Logger) error {
	if o.outPath != "" {
		doc, err := export.Build(out, export.DefaultOptions())
		if err != nil {
			return err
		}
		if err := export.SaveFile(o.outPath, doc, export.DefaultOptions()); err != nil {
			return err
		}
		logger.Info("wrote export", logging.Path(o.outPath), logging.RunID(out.RunID))
	}
	if o.matrixPath != "" {
		format, err := export.ParseMatrixFormat(o.matrixFormat)
		if err != nil {
			return err
		}
		doc, err := export.DistanceMatrix(out.DistanceMatrix, nil, format)
		if err != nil {
			return err
		}
		if err := saveJSON(o.matrixPath, doc); err != nil {
			return err
		}
		logger.Info("wrote distance matrix", logging.Path(o.matrixPath))
	}
	if o.graphPath != "" {
		if err := saveJSON(o.graphPath, export.NavigationGraph(out.Nodes, out.Edges, true)); err != nil {
			return err
		}
		logger.Info("wrote navigation graph", logging.Path(o.graphPath))
	}
	return nil
}

func saveJSON(path string, v any) error {
	opts := export.Options{Pretty: true, Compress: strings.HasSuffix(path, export.CompressedExt)}
	data, err := export.Marshal(v, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
