package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/ironsheep/schedule-ocr-mcp/internal/detection"
	"github.com/ironsheep/schedule-ocr-mcp/internal/export"
	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
	"github.com/ironsheep/schedule-ocr-mcp/internal/pipeline"
)

// runParse implements "schedule-mcp parse" and returns the exit code.
func runParse(args []string) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	strategy := fs.String("strategy", "", "Detection strategy: color or table (default from config)")
	configPath := fs.String("config", "", "YAML configuration file (default $"+pipeline.EnvConfig+")")
	overlayPath := fs.String("overlay", "", "Write a PNG with the detected regions outlined")
	xlsxPath := fs.String("xlsx", "", "Write the schedule to an Excel workbook")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: schedule-mcp parse [options] <image>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}
	if *strategy != "" {
		cfg.Strategy = detection.Strategy(*strategy)
	}

	p, err := pipeline.New(cfg, newEngine(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 2
	}

	ctx := context.Background()
	res := p.ParseFile(ctx, path)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write result: %v\n", err)
		return 1
	}
	if res.Failed() {
		return 1
	}

	if *overlayPath != "" {
		if err := writeOverlay(ctx, p, path, *overlayPath); err != nil {
			fmt.Fprintf(os.Stderr, "overlay: %v\n", err)
			return 1
		}
	}
	if *xlsxPath != "" {
		if err := export.SaveXLSX(*xlsxPath, res); err != nil {
			fmt.Fprintf(os.Stderr, "xlsx: %v\n", err)
			return 1
		}
	}
	return 0
}

func writeOverlay(ctx context.Context, p *pipeline.Pipeline, src, dst string) error {
	img, err := p.Load(src)
	if err != nil {
		return err
	}
	rects, err := p.Regions(ctx, img)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := png.Encode(out, imaging.DrawRegions(img, rects, imaging.DefaultOverlayColor, 2)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
