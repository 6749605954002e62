package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"

	"github.com/ironsheep/phototuner/internal/enhance"
	pimaging "github.com/ironsheep/phototuner/internal/imaging"
	"github.com/ironsheep/phototuner/internal/preview"
	"github.com/ironsheep/phototuner/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "photo_load", "photo_enhance").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.mu.Lock()
	result, err := s.executeTool(params.Name, params.Arguments)
	s.mu.Unlock()
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
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

// executeTool dispatches tool execution to the appropriate handler function.
// The caller must hold s.mu.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "photo_load":
		return s.handlePhotoLoad(args)
	case "photo_info":
		return s.handlePhotoInfo()

	// Enhancement
	case "photo_enhance":
		return s.handlePhotoEnhance(args)
	case "photo_enhance_accurate":
		return s.handlePhotoEnhanceAccurate(args)

	// Crop
	case "photo_crop_mode":
		return s.handleCropMode(args)
	case "photo_crop_point":
		return s.handleCropPoint(args)
	case "photo_crop_commit":
		return s.handleCropCommit()
	case "photo_crop_undo":
		return s.handleCropUndo()

	// Preview and output
	case "photo_geometry":
		return s.handleGeometry()
	case "photo_sample":
		return s.handleSample(args)
	case "photo_preview":
		return s.handlePreview(args)
	case "photo_save":
		return s.handlePhotoSave(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating missing arguments as an
// empty object.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(bytes.TrimSpace(args)) == 0 || bytes.Equal(bytes.TrimSpace(args), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// requireImage fails when no photo has been loaded.
func (s *Server) requireImage() error {
	if !s.session.Loaded() {
		return fmt.Errorf("%w: call photo_load first", session.ErrNoImage)
	}
	return nil
}

// === Session Handlers ===

type photoLoadArgs struct {
	Path string `json:"path"`
}

// PhotoLoadResult describes a freshly loaded photo.
type PhotoLoadResult struct {
	Path          string           `json:"path"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	Format        string           `json:"format"`
	FileSizeBytes int64            `json:"file_size_bytes"`
	FileSize      string           `json:"file_size"`
	Session       string           `json:"session"`
	Geometry      preview.Geometry `json:"geometry"`
}

func (s *Server) handlePhotoLoad(args json.RawMessage) (interface{}, error) {
	var a photoLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	buf, info, err := pimaging.LoadImageInfo(a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.session.Load(buf); err != nil {
		return nil, err
	}
	s.path = a.Path
	s.info = info
	s.mode = ""
	s.logger.Info("photo loaded", "path", a.Path, "width", info.Width, "height", info.Height,
		"size", humanize.Bytes(uint64(info.FileSizeBytes)))

	return &PhotoLoadResult{
		Path:          a.Path,
		Width:         info.Width,
		Height:        info.Height,
		Format:        info.Format,
		FileSizeBytes: info.FileSizeBytes,
		FileSize:      humanize.Bytes(uint64(info.FileSizeBytes)),
		Session:       s.session.ID(),
		Geometry:      s.session.Geometry(),
	}, nil
}

// PhotoInfoResult is a snapshot of the session.
type PhotoInfoResult struct {
	Session      string        `json:"session"`
	Loaded       bool          `json:"loaded"`
	Path         string        `json:"path,omitempty"`
	Format       string        `json:"format,omitempty"`
	FileSize     string        `json:"file_size,omitempty"`
	Width        int           `json:"width"`
	Height       int           `json:"height"`
	Megapixels   string        `json:"megapixels,omitempty"`
	Enhancement  string        `json:"enhancement,omitempty"`
	CropState    string        `json:"crop_state"`
	CropPoints   []image.Point `json:"crop_points"`
	CanUndoCrop  bool          `json:"can_undo_crop"`
	ViewportSize [2]int        `json:"viewport_size"`
}

func (s *Server) handlePhotoInfo() (interface{}, error) {
	g := s.session.Geometry()
	res := &PhotoInfoResult{
		Session:      s.session.ID(),
		Loaded:       s.session.Loaded(),
		Path:         s.path,
		Enhancement:  s.mode,
		CropState:    s.session.State().String(),
		CropPoints:   s.session.Points(),
		CanUndoCrop:  s.session.CanUndo(),
		ViewportSize: [2]int{g.ViewportWidth, g.ViewportHeight},
	}
	if s.info != nil {
		res.Format = s.info.Format
		res.FileSize = humanize.Bytes(uint64(s.info.FileSizeBytes))
	}
	if w := s.session.Working(); w != nil {
		res.Width, res.Height = w.Width, w.Height
		res.Megapixels = humanize.FtoaWithDigits(float64(w.Width*w.Height)/1e6, 2)
	}
	if res.ViewportSize == [2]int{} {
		res.ViewportSize = [2]int{s.cfg.PreviewWidth, s.cfg.PreviewHeight}
	}
	return res, nil
}

// === Enhancement Handlers ===

type photoEnhanceArgs struct {
	Mode string `json:"mode"`
}

// EnhanceResult reports the enhancement applied and the image size.
type EnhanceResult struct {
	Enhancement string          `json:"enhancement"`
	Params      *enhance.Params `json:"params,omitempty"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
}

func (s *Server) handlePhotoEnhance(args json.RawMessage) (interface{}, error) {
	var a photoEnhanceArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	mode := enhance.Standard
	if a.Mode != "" {
		m, err := enhance.ParseMode(a.Mode)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	if err := s.session.ApplyPreset(mode); err != nil {
		return nil, err
	}
	s.mode = mode.String()

	w := s.session.Working()
	return &EnhanceResult{Enhancement: s.mode, Width: w.Width, Height: w.Height}, nil
}

type photoEnhanceAccurateArgs struct {
	SharpenStrength *float64 `json:"sharpen_strength"`
	Contrast        *float64 `json:"contrast"`
	ColorBoost      *float64 `json:"color_boost"`
}

func (s *Server) handlePhotoEnhanceAccurate(args json.RawMessage) (interface{}, error) {
	var a photoEnhanceAccurateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	p := enhance.DefaultParams()
	if a.SharpenStrength != nil {
		p.SharpenStrength = *a.SharpenStrength
	}
	if a.Contrast != nil {
		p.Contrast = *a.Contrast
	}
	if a.ColorBoost != nil {
		p.ColorBoost = *a.ColorBoost
	}
	if err := s.session.ApplyAccurate(p); err != nil {
		return nil, err
	}
	p = p.Clamped()
	s.mode = "accurate"

	w := s.session.Working()
	return &EnhanceResult{Enhancement: s.mode, Params: &p, Width: w.Width, Height: w.Height}, nil
}

// === Crop Handlers ===

type cropModeArgs struct {
	Enabled *bool `json:"enabled"`
}

// CropStateResult reports the crop state after a crop tool call.
type CropStateResult struct {
	CropState  string        `json:"crop_state"`
	CropPoints []image.Point `json:"crop_points"`
}

func (s *Server) handleCropMode(args json.RawMessage) (interface{}, error) {
	var a cropModeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Enabled == nil {
		return nil, errors.New("enabled is required")
	}
	if *a.Enabled {
		s.session.EnableCropMode()
	} else {
		s.session.DisableCropMode()
	}
	return s.cropState(), nil
}

type cropPointArgs struct {
	X     *int   `json:"x"`
	Y     *int   `json:"y"`
	Space string `json:"space"`
}

// CropPointResult reports where a crop point landed in the source image.
type CropPointResult struct {
	CropStateResult
	Point    image.Point `json:"point"`
	InSource bool        `json:"in_source"`
}

func (s *Server) handleCropPoint(args json.RawMessage) (interface{}, error) {
	var a cropPointArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.X == nil || a.Y == nil {
		return nil, errors.New("x and y are required")
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	p := image.Pt(*a.X, *a.Y)
	switch a.Space {
	case "", "source":
		if err := s.session.RecordPoint(p); err != nil {
			return nil, err
		}
	case "viewport":
		src, err := s.session.RecordViewportPoint(p)
		if err != nil {
			return nil, err
		}
		p = src
	default:
		return nil, fmt.Errorf("invalid space: %q (must be source or viewport)", a.Space)
	}

	return &CropPointResult{
		CropStateResult: *s.cropState(),
		Point:           p,
		InSource:        s.session.Geometry().InSource(p),
	}, nil
}

type samplePoint struct {
	X     *int   `json:"x"`
	Y     *int   `json:"y"`
	Label string `json:"label,omitempty"`
}

type sampleArgs struct {
	Points []samplePoint `json:"points"`
	Space  string        `json:"space"`
}

// LabeledSample is a colour sample with the caller's label attached.
type LabeledSample struct {
	Label string `json:"label,omitempty"`
	pimaging.ColorSample
}

// SampleResult lists the colours under each requested point of the current
// image.
type SampleResult struct {
	Enhancement string          `json:"enhancement"`
	Samples     []LabeledSample `json:"samples"`
}

func (s *Server) handleSample(args json.RawMessage) (interface{}, error) {
	var a sampleArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, errors.New("at least one point is required")
	}
	if a.Space != "" && a.Space != "source" && a.Space != "viewport" {
		return nil, fmt.Errorf("invalid space: %q (must be source or viewport)", a.Space)
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}

	g := s.session.Geometry()
	points := make([]image.Point, len(a.Points))
	for i, sp := range a.Points {
		if sp.X == nil || sp.Y == nil {
			return nil, fmt.Errorf("point %d: x and y are required", i)
		}
		points[i] = image.Pt(*sp.X, *sp.Y)
		if a.Space == "viewport" {
			points[i] = g.ToSource(points[i])
		}
	}

	samples, err := pimaging.SampleColors(s.session.Working(), points)
	if err != nil {
		return nil, err
	}
	res := &SampleResult{Enhancement: s.mode, Samples: make([]LabeledSample, len(samples))}
	for i, cs := range samples {
		res.Samples[i] = LabeledSample{Label: a.Points[i].Label, ColorSample: cs}
	}
	return res, nil
}

// CropResult reports the image size after a crop or undo.
type CropResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Restored *bool  `json:"restored,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (s *Server) handleCropCommit() (interface{}, error) {
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	out, err := s.session.CommitCrop()
	if err != nil {
		return nil, err
	}
	res := &CropResult{Width: out.Width, Height: out.Height}
	if out.Empty() {
		res.Message = "selection had zero width or height; image is now empty, use photo_crop_undo to restore"
	}
	return res, nil
}

func (s *Server) handleCropUndo() (interface{}, error) {
	restored := s.session.UndoCrop()
	res := &CropResult{Restored: &restored}
	if w := s.session.Working(); w != nil {
		res.Width, res.Height = w.Width, w.Height
	}
	if !restored {
		res.Message = "nothing to undo"
	}
	return res, nil
}

func (s *Server) cropState() *CropStateResult {
	return &CropStateResult{
		CropState:  s.session.State().String(),
		CropPoints: s.session.Points(),
	}
}

// === Preview and Output Handlers ===

func (s *Server) handleGeometry() (interface{}, error) {
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	return s.session.Geometry(), nil
}

// PreviewResult carries the rendered preview image.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	MimeType    string `json:"mime_type"`
	ImageBase64 string `json:"image_base64"`
}

type previewArgs struct {
	GridSpacing int    `json:"grid_spacing"`
	GridLabels  *bool  `json:"grid_labels"`
	GridColor   string `json:"grid_color"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing < 0 {
		return nil, fmt.Errorf("grid_spacing must not be negative, got %d", a.GridSpacing)
	}

	img := s.session.Preview()
	if a.GridSpacing > 0 && s.session.Loaded() {
		grid := preview.Grid{Spacing: a.GridSpacing, Labels: a.GridLabels == nil || *a.GridLabels}
		if a.GridColor != "" {
			c, err := preview.ParseHexColor(a.GridColor)
			if err != nil {
				return nil, err
			}
			grid.Color = c
		}
		preview.DrawGrid(img, s.session.Geometry(), grid)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return &PreviewResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		MimeType:    "image/png",
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

type photoSaveArgs struct {
	Path    string `json:"path"`
	Quality int    `json:"quality"`
}

// SaveResult describes the written file.
type SaveResult struct {
	Path          string `json:"path"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	FileSize      string `json:"file_size"`
}

func (s *Server) handlePhotoSave(args json.RawMessage) (interface{}, error) {
	var a photoSaveArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	if err := s.requireImage(); err != nil {
		return nil, err
	}
	if a.Quality == 0 {
		a.Quality = s.cfg.JPEGQuality
	}

	w := s.session.Working()
	if err := pimaging.Encode(w, a.Path, a.Quality); err != nil {
		return nil, err
	}
	stat, err := os.Stat(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	s.logger.Info("photo saved", "path", a.Path, "size", humanize.Bytes(uint64(stat.Size())))

	return &SaveResult{
		Path:          a.Path,
		Width:         w.Width,
		Height:        w.Height,
		FileSizeBytes: stat.Size(),
		FileSize:      humanize.Bytes(uint64(stat.Size())),
	}, nil
}
