package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/chigwell/graph-ui/pkg/graph"
	"github.com/chigwell/graph-ui/pkg/graph/algorithms"
	"github.com/chigwell/graph-ui/pkg/graph/export"
	"github.com/chigwell/graph-ui/pkg/graph/processors"
	"github.com/chigwell/graph-ui/pkg/graph/visualizer"
	"github.com/chigwell/graph-ui/services"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	envFile         = flag.String("env", ".env", "Path to environment file")
	input           = flag.String("input", "", "Input file, or a directory of input files")
	model           = flag.String("model", "", "Model identifier (defaults to OLLAMA_MODEL, then the first installed model)")
	endpoint        = flag.String("endpoint", "", "Ollama base URL (defaults to OLLAMA_URL)")
	temperature     = flag.Float64("temperature", -1, "Sampling temperature (negative keeps the configured value)")
	segmentSize     = flag.Int("segment-size", 0, "Maximum characters per segment (0 keeps the configured value)")
	csvDir          = flag.String("csv", "", "Directory for the timestamped CSV export (empty skips it)")
	outputFile      = flag.String("output", "", "Output file path for the JSON graph (empty skips it)")
	visualize       = flag.Bool("visualize", false, "Generate a visualization of the graph")
	visualizeOutput = flag.String("viz-output", "graph.html", "Output file for the visualization")
	focus           = flag.String("focus", "", "Only visualize the neighbourhood of this node")
	depth           = flag.Int("depth", 2, "Hops around -focus to include in the visualization")
	listModels      = flag.Bool("list-models", false, "List the models installed at the endpoint and exit")
	logLevel        = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	cfg, err := graph.RunConfigFromEnv()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	applyFlags(&cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *listModels {
		models, err := services.ListModels(ctx, cfg.Endpoint)
		if err != nil {
			logger.Fatalf("Failed to fetch models: %v", err)
		}
		selected, _ := services.SelectModel(models, cfg.Model)
		for _, m := range models {
			marker := " "
			if m == selected {
				marker = "*"
			}
			fmt.Printf("%s %s (%s)\n", marker, m.Name, m.Alias)
		}
		return
	}

	if *input == "" {
		logger.Fatal("Input file or directory must be specified")
	}

	text, err := readInput(ctx, *input)
	if err != nil {
		logger.Fatalf("Failed to read input: %v", err)
	}

	if cfg.Model == "" {
		models, err := services.ListModels(ctx, cfg.Endpoint)
		if err != nil {
			logger.Fatalf("No model given and models could not be listed: %v", err)
		}
		selected, ok := services.SelectModel(models, "")
		if !ok {
			logger.Fatalf("No models installed at %s", cfg.Endpoint)
		}
		logger.Infof("Using model %s", selected.Name)
		cfg.Model = selected.Alias
	}

	// The pipeline's own logger stays quiet; progress is printed through the sink.
	quiet := logrus.New()
	quiet.SetOutput(os.Stderr)
	quiet.SetLevel(logrus.PanicLevel)

	pipeline := graph.NewPipeline(services.DefaultOllamaExtractor(),
		graph.WithLogger(quiet),
		graph.WithEventSink(func(e graph.LogEvent) {
			logger.Log(e.Level, e.Message)
		}),
	)

	result, runErr := pipeline.Run(ctx, text, cfg)
	if result.State != graph.StateCompleted && result.State != graph.StateFailed {
		// Rejected before starting.
		logger.Fatalf("Run not started: %v", runErr)
	}

	rows := result.Graph.Rows()
	now := time.Now()

	if *csvDir != "" && len(rows) > 0 {
		path, err := export.WriteCSV(*csvDir, rows, now)
		if err != nil {
			logger.Errorf("Failed to export CSV: %v", err)
		} else {
			logger.Infof("CSV saved to %s", path)
		}
	}

	if *outputFile != "" {
		if err := export.WriteJSON(*outputFile, export.NewDocument(result.Graph, now)); err != nil {
			logger.Errorf("Failed to store graph: %v", err)
		} else {
			logger.Infof("Graph saved to %s", *outputFile)
		}
	}

	if *visualize {
		projection := result.Graph.Projection()
		if *focus != "" {
			traversal := algorithms.NewGraphTraversal(result.Graph)
			nodes, err := traversal.Traverse(*focus, *depth, algorithms.BFS)
			if err != nil {
				logger.Warnf("Ignoring -focus: %v", err)
			} else {
				projection = traversal.Subgraph(nodes)
			}
		}

		viz := visualizer.NewD3Visualizer(*visualizeOutput)
		if err := viz.Visualize(projection); err != nil {
			logger.Errorf("Failed to visualize graph: %v", err)
		} else {
			logger.Infof("Visualization saved to %s", *visualizeOutput)
		}
	}

	if result.State == graph.StateFailed {
		logger.Errorf("Run %s failed after %d of %d segments: %v",
			result.ID, result.Processed, result.Segments, runErr)
		os.Exit(1)
	}
	logger.Infof("Graph generated with %d nodes and %d edges",
		result.Graph.NodeCount(), result.Graph.EdgeCount())
}

func applyFlags(cfg *graph.RunConfig) {
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *temperature >= 0 {
		cfg.Temperature = *temperature
	}
	if *segmentSize != 0 {
		cfg.SegmentSize = *segmentSize
	}
}

// readInput loads a single file, or every supported file under a directory
// joined by blank lines.
func readInput(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return processors.LoadFile(ctx, path)
	}

	files, err := readInputFiles(path)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no input files found in %s", path)
	}

	texts := make([]string, 0, len(files))
	for _, file := range files {
		text, err := processors.LoadFile(ctx, file)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n\n"), nil
}

// readInputFiles lists the supported files under inputDir.
func readInputFiles(inputDir string) ([]string, error) {
	supportedExtensions := map[string]bool{
		".txt": true, ".md": true, ".html": true, ".htm": true, ".pdf": true,
	}

	var files []string
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			ext := strings.ToLower(filepath.Ext(path))
			if supportedExtensions[ext] {
				files = append(files, path)
			}
		}
		return nil
	})

	return files, err
}
