// Package server implements the MCP (Model Context Protocol) server for
// schedule extraction.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - schedule_parse: Extract the schedule (text blocks in reading order)
//   - schedule_detect_regions: Detected rectangles with fill colors, no OCR
//   - schedule_debug_overlay: Numbered region outlines as base64 PNG
//   - schedule_export_xlsx: Extract and write an Excel workbook
//   - image_load: Image metadata and minimum-size check
//   - ocr_info: Tesseract availability, version and languages
//
// The schedule tools accept strategy, min_width and min_height overrides on
// top of the configuration the server was started with. schedule_parse also
// accepts a language override.
//
// # Error Handling
//
// schedule_parse always answers with content: a failed parse is reported as
// {"error": "..."} so that callers see the same shape as the CLI. Every
// other tool reports failures as JSON-RPC errors with:
//   - code: -32000 (tool execution failure) or -32602 (malformed params)
//   - message: "Tool execution failed"
//   - data: the error text
//
// # Usage
//
//	srv := server.New(pipeline.DefaultConfig(), engine)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
