package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/schedule-ocr-mcp/internal/detection"
	"github.com/ironsheep/schedule-ocr-mcp/internal/export"
	"github.com/ironsheep/schedule-ocr-mcp/internal/imaging"
	"github.com/ironsheep/schedule-ocr-mcp/internal/ocr"
	"github.com/ironsheep/schedule-ocr-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "schedule_parse").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Invalid arguments and load failures of the region tools return a JSON-RPC
// error response with code -32000. schedule_parse never does: its error
// results are content too.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "schedule_parse":
		return s.handleScheduleParse(ctx, args)
	case "schedule_detect_regions":
		return s.handleDetectRegions(ctx, args)
	case "schedule_debug_overlay":
		return s.handleDebugOverlay(ctx, args)
	case "schedule_export_xlsx":
		return s.handleExportXLSX(ctx, args)
	case "image_load":
		return s.handleImageLoad(args)
	case "ocr_info":
		return ocr.GetInfo(), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// scheduleArgs holds the per-call overrides shared by the schedule tools.
type scheduleArgs struct {
	Path      string `json:"path"`
	Strategy  string `json:"strategy"`
	MinWidth  *int   `json:"min_width"`
	MinHeight *int   `json:"min_height"`
	Language  string `json:"language"`
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// pipelineFor applies a's overrides to the server configuration.
func (s *Server) pipelineFor(a scheduleArgs) (*pipeline.Pipeline, error) {
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	cfg := s.cfg
	if a.Strategy != "" {
		cfg.Strategy = detection.Strategy(a.Strategy)
	}
	if a.MinWidth != nil {
		cfg.MinWidth = *a.MinWidth
	}
	if a.MinHeight != nil {
		cfg.MinHeight = *a.MinHeight
	}

	engine := s.engine
	if a.Language != "" && a.Language != cfg.Language {
		cfg.Language = a.Language
		e, err := s.newEngine(cfg.OCROptions())
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", a.Language, err)
		}
		engine = e
	}

	return pipeline.New(cfg, engine)
}

// loadError prefixes a load failure with its caller-facing message.
func loadError(err error) error {
	return fmt.Errorf("%s: %w", pipeline.KindOf(err).Message(), err)
}

func (s *Server) handleScheduleParse(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a scheduleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.pipelineFor(a)
	if err != nil {
		return nil, err
	}
	return p.ParseFile(ctx, a.Path), nil
}

// RegionInfo describes one detected region.
type RegionInfo struct {
	pipeline.Position
	FillColor string `json:"fill_color"`
}

// RegionsResult is returned by schedule_detect_regions.
type RegionsResult struct {
	Strategy string       `json:"strategy"`
	Count    int          `json:"count"`
	Regions  []RegionInfo `json:"regions"`
}

func (s *Server) handleDetectRegions(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a scheduleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.pipelineFor(a)
	if err != nil {
		return nil, err
	}

	img, err := p.Load(a.Path)
	if err != nil {
		return nil, loadError(err)
	}
	rects, err := p.Regions(ctx, img)
	if err != nil {
		return nil, err
	}

	regions := make([]RegionInfo, len(rects))
	for i, r := range rects {
		regions[i] = RegionInfo{
			Position:  pipeline.PositionOf(r),
			FillColor: imaging.FillColorHex(img, r),
		}
	}
	return &RegionsResult{
		Strategy: string(p.Config().Strategy),
		Count:    len(regions),
		Regions:  regions,
	}, nil
}

type overlayArgs struct {
	scheduleArgs
	Color string `json:"color"`
}

// OverlayResult is returned by schedule_debug_overlay.
type OverlayResult struct {
	Count int `json:"count"`
	*imaging.PNGResult
}

func (s *Server) handleDebugOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOverlayColor
	}
	p, err := s.pipelineFor(a.scheduleArgs)
	if err != nil {
		return nil, err
	}

	img, err := p.Load(a.Path)
	if err != nil {
		return nil, loadError(err)
	}
	rects, err := p.Regions(ctx, img)
	if err != nil {
		return nil, err
	}

	png, err := imaging.EncodePNGResult(imaging.DrawRegions(img, rects, a.Color, 2))
	if err != nil {
		return nil, err
	}
	return &OverlayResult{Count: len(rects), PNGResult: png}, nil
}

type exportArgs struct {
	scheduleArgs
	Output string `json:"output"`
}

// ExportResult is returned by schedule_export_xlsx.
type ExportResult struct {
	Output  string `json:"output"`
	Blocks  int    `json:"blocks"`
	Warning string `json:"warning,omitempty"`
}

func (s *Server) handleExportXLSX(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, errors.New("output is required")
	}
	p, err := s.pipelineFor(a.scheduleArgs)
	if err != nil {
		return nil, err
	}

	res := p.ParseFile(ctx, a.Path)
	if err := export.SaveXLSX(a.Output, res); err != nil {
		return nil, err
	}
	return &ExportResult{Output: a.Output, Blocks: len(res.Schedule), Warning: res.Warning}, nil
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	info, err := imaging.LoadImageInfo(a.Path, s.cfg.MinImageSize)
	if err != nil {
		return nil, loadError(err)
	}
	return info, nil
}
