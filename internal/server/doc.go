// Package server implements the MCP (Model Context Protocol) server that
// drives a photo editing session.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Logs go to stderr or a log file, never stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - photo_load: Load a photo, resetting enhancement and crop state
//   - photo_info: Describe the session
//
// Enhancement:
//   - photo_enhance: Apply a preset (standard, natural, vivid, pro)
//   - photo_enhance_accurate: Apply sharpen/contrast/colour parameters
//
// Crop:
//   - photo_crop_mode: Start or cancel a selection
//   - photo_crop_point: Record a corner in source or viewport coordinates
//   - photo_crop_commit: Crop to the selection
//   - photo_crop_undo: Restore the image from before the last crop
//
// Preview and output:
//   - photo_geometry: Viewport scale and letterbox offsets
//   - photo_sample: Colour values (hex, RGB, HSV, L*a*b*) at given points
//   - photo_preview: Letterboxed preview as base64 PNG, optionally with a grid
//   - photo_save: Write the current image to disk
//
// # Session
//
// A server owns exactly one session. Tool calls are serialized, so a client
// may pipeline requests but they are executed one at a time, in order.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, server.WithLogger(logger))
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
