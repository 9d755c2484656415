package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/schedule-ocr-mcp/internal/detection"
	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
	"github.com/ironsheep/schedule-ocr-mcp/internal/logger"
	"github.com/ironsheep/schedule-ocr-mcp/internal/ocr"
)

const tracerName = "github.com/ironsheep/schedule-ocr-mcp/internal/pipeline"

// Pipeline turns a schedule image into recognized text blocks.
//
// A Pipeline holds only configuration and collaborators; every Parse call
// loads and owns its own image, so one Pipeline may serve concurrent calls.
type Pipeline struct {
	cfg      Config
	engine   ocr.Engine
	detector detection.Detector
	log      *slog.Logger
	tracer   trace.Tracer
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithDetector replaces the detector chosen by Config.Strategy.
func WithDetector(d detection.Detector) Option {
	return func(p *Pipeline) { p.detector = d }
}

// WithLogger replaces the default "pipeline" logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New validates cfg and builds a pipeline. engine may be nil, in which case
// Regions works but any run that finds regions fails.
func New(cfg Config, engine ocr.Engine, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:    cfg,
		engine: engine,
		log:    logger.Get("pipeline"),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.detector == nil {
		d, err := detection.NewDetector(cfg.Strategy, cfg.detectionOptions())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		p.detector = d
	}
	return p, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Load reads and validates an image with the configured minimum size.
func (p *Pipeline) Load(path string) (image.Image, error) {
	return imaging.Load(path, p.cfg.MinImageSize)
}

// ParseFile runs the pipeline on the image at path.
func (p *Pipeline) ParseFile(ctx context.Context, path string) Result {
	return p.run(ctx, func() (image.Image, error) {
		return imaging.Load(path, p.cfg.MinImageSize)
	})
}

// ParseBytes runs the pipeline on an encoded image.
func (p *Pipeline) ParseBytes(ctx context.Context, data []byte) Result {
	return p.run(ctx, func() (image.Image, error) {
		return imaging.LoadBytes(data, p.cfg.MinImageSize)
	})
}

// ParseImage runs the pipeline on an already decoded image. The image is
// checked against the minimum size but is never modified.
func (p *Pipeline) ParseImage(ctx context.Context, img image.Image) Result {
	return p.run(ctx, func() (image.Image, error) {
		if err := imaging.CheckSize(img, p.cfg.MinImageSize); err != nil {
			return nil, err
		}
		return img, nil
	})
}

// Regions runs detection, extraction and filtering without recognition and
// returns the surviving rectangles in reading order.
func (p *Pipeline) Regions(ctx context.Context, img image.Image) ([]image.Rectangle, error) {
	return p.regions(ctx, p.log, img)
}

func (p *Pipeline) run(ctx context.Context, load func() (image.Image, error)) (res Result) {
	runID := uuid.NewString()
	log := p.log.With("run", runID)

	ctx, span := p.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("strategy", string(p.cfg.Strategy)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: panic: %v", ErrUnexpected, r)
			log.Error("pipeline panicked", "panic", r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			res = ErrorResult(err)
		}
	}()

	fail := func(stage string, err error) Result {
		res := ErrorResult(err)
		log.Error("pipeline aborted", "stage", stage, "kind", res.Kind(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, res.Error)
		return res
	}

	_, loadSpan := p.tracer.Start(ctx, "pipeline.load")
	img, err := load()
	loadSpan.End()
	if err != nil {
		return fail("load", err)
	}

	rects, err := p.regions(ctx, log, img)
	if err != nil {
		return fail("detect", fmt.Errorf("%w: %w", ErrUnexpected, err))
	}

	if len(rects) > 0 && p.engine == nil {
		return fail("recognize", fmt.Errorf("%w: %w", ErrUnexpected, ocr.ErrOCRNotEnabled))
	}
	texts := p.recognizeAll(ctx, log, img, rects)

	_, assembleSpan := p.tracer.Start(ctx, "pipeline.assemble")
	res = Assemble(texts)
	assembleSpan.SetAttributes(attribute.Int("blocks", len(res.Schedule)))
	assembleSpan.End()

	if len(res.Schedule) == 0 {
		log.Warn("no text extracted", "regions", len(rects))
	} else {
		log.Info("schedule extracted", "regions", len(rects), "blocks", len(res.Schedule))
	}
	return res
}

func (p *Pipeline) regions(ctx context.Context, log *slog.Logger, img image.Image) ([]image.Rectangle, error) {
	_, span := p.tracer.Start(ctx, "pipeline.detect")
	mask, err := p.detector.Detect(img)
	span.End()
	if err != nil {
		return nil, err
	}

	_, span = p.tracer.Start(ctx, "pipeline.extract")
	defer span.End()

	origin := img.Bounds().Min
	rects := detection.Extract(mask, p.cfg.Retrieval)
	for i := range rects {
		rects[i] = rects[i].Add(origin)
	}
	log.Info("contours traced", "count", len(rects), "retrieval", p.cfg.Retrieval)

	minW, minH := p.cfg.MinSize()
	kept, dropped := detection.Filter(rects, minW, minH)
	for _, r := range dropped {
		log.Debug("region skipped: too small", "rect", r, "min_width", minW, "min_height", minH)
	}
	detection.SortReadingOrder(kept)

	span.SetAttributes(attribute.Int("contours", len(rects)), attribute.Int("regions", len(kept)))
	return kept, nil
}

// recognizeAll recognizes every region with at most Workers in flight.
// Results are stored by index, so their order never depends on completion
// order.
func (p *Pipeline) recognizeAll(ctx context.Context, log *slog.Logger, img image.Image, rects []image.Rectangle) []RegionText {
	out := make([]RegionText, len(rects))

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i, r := range rects {
		i, r := i, r
		g.Go(func() error {
			out[i] = p.recognize(ctx, log, img, i, r)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// recognize isolates one region: engine errors and panics become a
// RegionText with Err set and no text.
func (p *Pipeline) recognize(ctx context.Context, log *slog.Logger, img image.Image, index int, rect image.Rectangle) (rt RegionText) {
	_, span := p.tracer.Start(ctx, "pipeline.recognize", trace.WithAttributes(
		attribute.Int("index", index),
		attribute.String("rect", rect.String()),
	))
	defer span.End()

	rt.Rect = rect
	defer func() {
		if r := recover(); r != nil {
			rt.Text = ""
			rt.Err = fmt.Errorf("recognizer panic: %v", r)
		}
		if rt.Err != nil {
			log.Warn("region recognition failed", "region", index, "rect", rect, "kind", KindRecognitionFailure, "error", rt.Err)
			span.RecordError(rt.Err)
		}
	}()

	text, err := ocr.RecognizeRegion(p.engine, img, rect, p.cfg.Upscale)
	if err != nil {
		rt.Err = err
		return rt
	}
	rt.Text = text
	log.Debug("region recognized", "region", index, "rect", rect, "text", text)
	return rt
}
