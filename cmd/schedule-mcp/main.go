package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/schedule-ocr-mcp/internal/logger"
	"github.com/ironsheep/schedule-ocr-mcp/internal/ocr"
	"github.com/ironsheep/schedule-ocr-mcp/internal/pipeline"
	"github.com/ironsheep/schedule-ocr-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var log = logger.Get("main")

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("schedule-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "parse":
			os.Exit(runParse(os.Args[2:]))
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(2)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig("")
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	log.Info("schedule MCP server starting", "version", Version, "commit", GitCommit, "strategy", cfg.Strategy)

	server.ServerVersion = Version
	srv := server.New(cfg, newEngine(cfg))
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("schedule-mcp - extract schedules from images")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  schedule-mcp                 Run the MCP server on stdin/stdout")
	fmt.Println("  schedule-mcp parse [options] <image>")
	fmt.Println("                               Parse one image and print the result as JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug    Log level (debug, info, warn, error)\n", logger.EnvLevel)
	fmt.Printf("  %s=path     YAML configuration file\n", pipeline.EnvConfig)
	fmt.Println()
	fmt.Println("Run 'schedule-mcp parse -h' for parse options.")
}

// loadConfig reads path, or the file named by the environment when path is
// empty, over the default configuration.
func loadConfig(path string) (pipeline.Config, error) {
	if path == "" {
		path = os.Getenv(pipeline.EnvConfig)
	}
	if path == "" {
		return pipeline.DefaultConfig(), nil
	}
	return pipeline.LoadConfig(path)
}

// newEngine returns the Tesseract engine, or nil when OCR is unavailable.
func newEngine(cfg pipeline.Config) ocr.Engine {
	t, err := ocr.NewTesseract(cfg.OCROptions())
	if err != nil {
		log.Warn("OCR unavailable; only region tools will work", "error", err)
		return nil
	}
	return t
}
