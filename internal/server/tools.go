package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the schedule image (PNG, JPEG, or GIF)",
	}
}

func strategyProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"color", "table"},
		"description": "Region detection strategy: \"color\" for saturated calendar blocks, \"table\" for ruled grids. Defaults to the server configuration.",
	}
}

func minSizeProperties(props map[string]interface{}) map[string]interface{} {
	props["min_width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Minimum region width in pixels. Omit for the strategy default (table 50, color 20).",
	}
	props["min_height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Minimum region height in pixels. Omit for the strategy default (table 20, color 10).",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "schedule_parse",
			Description: "Extract a schedule from an image: detect table cells or colored blocks, OCR each one, " +
				"and return the text blocks in reading order (top-to-bottom, then left-to-right) with their pixel positions. " +
				"Returns {\"schedule\": [...]}, {\"warning\": ..., \"schedule\": []} when no text is found, or {\"error\": ...}.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": minSizeProperties(map[string]interface{}{
					"path":     pathProperty(),
					"strategy": strategyProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code(s), e.g. \"eng\" or \"eng+deu\". Defaults to the server configuration.",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "schedule_detect_regions",
			Description: "Run region detection only (no OCR) and return the candidate rectangles in reading order with their average fill color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": minSizeProperties(map[string]interface{}{
					"path":     pathProperty(),
					"strategy": strategyProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "schedule_debug_overlay",
			Description: "Draw the detected regions onto a copy of the image, numbered in reading order, and return it as base64-encoded PNG. Use this to check why a region was or was not found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": minSizeProperties(map[string]interface{}{
					"path":     pathProperty(),
					"strategy": strategyProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as #RRGGBB. Default #00FF00",
						"default":     "#00FF00",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "schedule_export_xlsx",
			Description: "Extract a schedule and write it to an Excel workbook with one row per text block.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"strategy": strategyProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the .xlsx file to write",
					},
				},
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, and whether it meets the minimum size for parsing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ocr_info",
			Description: "Report whether OCR is available, the Tesseract version, and the installed languages.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
