package server

import (
	"context"
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"schedule_parse",
		"schedule_detect_regions",
		"schedule_debug_overlay",
		"schedule_export_xlsx",
		"image_load",
		"ocr_info",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
	}{
		{"schedule_parse", []string{"path"}},
		{"schedule_detect_regions", []string{"path"}},
		{"schedule_debug_overlay", []string{"path"}},
		{"schedule_export_xlsx", []string{"path", "output"}},
		{"image_load", []string{"path"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			required, ok := toolByName(t, tt.tool).InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(required) != len(tt.required) {
				t.Fatalf("required: got %v, want %v", required, tt.required)
			}
			for i := range required {
				if required[i] != tt.required[i] {
					t.Errorf("required[%d]: got %s, want %s", i, required[i], tt.required[i])
				}
			}
		})
	}
}

func TestToolDefinitions_StrategyEnum(t *testing.T) {
	for _, name := range []string{"schedule_parse", "schedule_detect_regions", "schedule_debug_overlay", "schedule_export_xlsx"} {
		t.Run(name, func(t *testing.T) {
			props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})
			strategy, ok := props["strategy"].(map[string]interface{})
			if !ok {
				t.Fatal("strategy property should exist and be a map")
			}
			enum, ok := strategy["enum"].([]string)
			if !ok || len(enum) != 2 || enum[0] != "color" || enum[1] != "table" {
				t.Errorf("strategy enum: got %v, want [color table]", strategy["enum"])
			}
		})
	}
}

func TestToolDefinitions_OverlayColorDefault(t *testing.T) {
	props := toolByName(t, "schedule_debug_overlay").InputSchema["properties"].(map[string]interface{})
	color, ok := props["color"].(map[string]interface{})
	if !ok {
		t.Fatal("color property should exist")
	}
	if color["default"] != "#00FF00" {
		t.Errorf("color default: got %v, want #00FF00", color["default"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
