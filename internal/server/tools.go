package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "photo_load",
			Description: "Load a photo into the editing session. Resets any enhancement, crop selection and undo history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (JPEG, PNG, WebP, GIF, BMP or TIFF)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "photo_info",
			Description: "Describe the session: loaded file, current image size, crop state and whether a crop can be undone.",
			InputSchema: noArgs(),
		},

		// Enhancement
		{
			Name:        "photo_enhance",
			Description: "Apply an enhancement preset to the loaded photo. Presets always start from the loaded (or last cropped) image and do not stack.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"standard", "natural", "vivid", "pro"},
						"description": "Preset to apply. Default standard",
						"default":     "standard",
					},
				},
			},
		},
		{
			Name:        "photo_enhance_accurate",
			Description: "Apply the parametric enhancement: gamma contrast, saturation boost and optional sharpening. Out-of-range values are clamped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sharpen_strength": map[string]interface{}{
						"type":        "number",
						"description": "Sharpening strength, 0 to 5. Default 1",
						"minimum":     0,
						"maximum":     5,
					},
					"contrast": map[string]interface{}{
						"type":        "number",
						"description": "Contrast (gamma), 0.5 to 2. Default 1",
						"minimum":     0.5,
						"maximum":     2,
					},
					"color_boost": map[string]interface{}{
						"type":        "number",
						"description": "Saturation boost, 0 to 100. Default 0",
						"minimum":     0,
						"maximum":     100,
					},
				},
			},
		},

		// Crop
		{
			Name:        "photo_crop_mode",
			Description: "Enable or disable crop mode. Enabling starts a new, empty selection; disabling discards it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"enabled": map[string]interface{}{
						"type":        "boolean",
						"description": "true to start selecting, false to cancel",
					},
				},
				"required": []string{"enabled"},
			},
		},
		{
			Name:        "photo_crop_point",
			Description: "Record one corner of the crop rectangle. Two points are needed; a third is rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate",
					},
					"space": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"source", "viewport"},
						"description": "Coordinate space of x and y: source image pixels, or a click on the preview. Default source",
						"default":     "source",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "photo_crop_commit",
			Description: "Crop to the rectangle spanned by the two recorded points. The result becomes the image later enhancements start from.",
			InputSchema: noArgs(),
		},
		{
			Name:        "photo_crop_undo",
			Description: "Restore the image as it was before the last crop.",
			InputSchema: noArgs(),
		},

		// Preview and output
		{
			Name:        "photo_geometry",
			Description: "Return how the current image is fitted into the preview viewport: scale, letterbox offsets and scaled size.",
			InputSchema: noArgs(),
		},
		{
			Name:        "photo_sample",
			Description: "Sample the colour of the current (enhanced or cropped) image at one or more points. Returns hex, RGB, HSV and L*a*b* values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional name echoed in the result"},
							},
							"required": []string{"x", "y"},
						},
					},
					"space": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"source", "viewport"},
						"description": "Coordinate space of the points. Default source",
						"default":     "source",
					},
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "photo_preview",
			Description: "Render the letterboxed preview, with any crop selection drawn on it, as a base64-encoded PNG. An optional grid labelled in source pixels helps pick crop points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Grid spacing in source pixels. 0 (default) draws no grid",
						"default":     0,
					},
					"grid_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Label grid intersections with source coordinates. Default true",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid color as hex RGB or RGBA. Default #FF000080",
						"default":     "#FF000080",
					},
				},
			},
		},
		{
			Name:        "photo_save",
			Description: "Save the current image. The format follows the file extension; JPEG uses the given quality.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute output path",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100. Defaults to the configured quality",
						"minimum":     1,
						"maximum":     100,
					},
				},
				"required": []string{"path"},
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
