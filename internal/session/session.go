package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ironsheep/phototuner/internal/enhance"
	"github.com/ironsheep/phototuner/internal/imaging"
	"github.com/ironsheep/phototuner/internal/preview"
)

// MaxPoints is the number of points that define a crop rectangle.
const MaxPoints = 2

var (
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrCropModeDisabled is returned when a point is recorded outside crop mode.
	ErrCropModeDisabled = fmt.Errorf("%w: crop mode is not enabled", imaging.ErrInvalidSelection)

	// ErrSelectionFull is returned when a third point is recorded. The
	// selection is left unchanged; EnableCropMode starts a new one.
	ErrSelectionFull = fmt.Errorf("%w: selection already has %d points", imaging.ErrInvalidSelection, MaxPoints)
)

// State is the crop state of a session.
type State int

const (
	// Idle: crop mode disabled, selection empty.
	Idle State = iota
	// Selecting: crop mode enabled, collecting points.
	Selecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// snapshot is the pair of buffers restored by UndoCrop.
type snapshot struct {
	source  *imaging.Buffer
	working *imaging.Buffer
}

// Session is one interactive editing session: the loaded image, its current
// enhanced version, the preview geometry and the crop selection.
//
// The source buffer is the image enhancements are computed from; the
// working buffer is what is displayed, cropped and saved. Committing a crop
// makes the cropped working buffer the new source, so later enhancements
// start from the cropped image.
//
// A Session is not safe for concurrent use; callers must serialize access.
type Session struct {
	id     string
	logger *slog.Logger

	viewportW, viewportH int

	source   *imaging.Buffer
	working  *imaging.Buffer
	geometry preview.Geometry

	state  State
	points []image.Point
	undo   *snapshot
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty session previewing into a viewportW x viewportH
// viewport.
func New(viewportW, viewportH int, opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		logger:    slog.Default(),
		viewportW: viewportW,
		viewportH: viewportH,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.id))
	return s
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// Load installs buf as both source and working image and resets the crop
// state: selection cleared, crop mode disabled, undo slot emptied.
//
// The session takes ownership of buf.
func (s *Session) Load(buf *imaging.Buffer) error {
	if buf.Empty() {
		return imaging.ErrEmptyImage
	}
	g, err := preview.Compute(buf.Width, buf.Height, s.viewportW, s.viewportH)
	if err != nil {
		return fmt.Errorf("failed to fit image into viewport: %w", err)
	}
	s.source = buf
	s.working = buf
	s.geometry = g
	s.undo = nil
	s.state = Idle
	s.points = nil
	s.logger.Debug("image loaded", "width", buf.Width, "height", buf.Height)
	return nil
}

// Loaded reports whether an image has been loaded.
func (s *Session) Loaded() bool { return s.working != nil }

// Source returns the buffer enhancements are computed from.
// The returned buffer must not be modified.
func (s *Session) Source() *imaging.Buffer { return s.source }

// Working returns the current displayed buffer.
// The returned buffer must not be modified.
func (s *Session) Working() *imaging.Buffer { return s.working }

// Geometry returns the preview geometry of the working buffer. It is the
// zero Geometry while no image or an empty image is loaded.
func (s *Session) Geometry() preview.Geometry { return s.geometry }

// State returns the crop state.
func (s *Session) State() State { return s.state }

// Points returns a copy of the recorded selection in source coordinates.
func (s *Session) Points() []image.Point {
	return append([]image.Point(nil), s.points...)
}

// CanUndo reports whether a crop can be undone.
func (s *Session) CanUndo() bool { return s.undo != nil }

// ApplyPreset replaces the working buffer with the preset applied to the
// source.
func (s *Session) ApplyPreset(mode enhance.Mode) error {
	if s.source == nil {
		return ErrNoImage
	}
	out, err := enhance.Enhance(s.source, mode)
	if err != nil {
		return fmt.Errorf("failed to apply preset %s: %w", mode, err)
	}
	s.logger.Debug("preset applied", "mode", mode.String())
	return s.setWorking(out)
}

// ApplyAccurate replaces the working buffer with the source enhanced by p.
func (s *Session) ApplyAccurate(p enhance.Params) error {
	if s.source == nil {
		return ErrNoImage
	}
	out, err := enhance.EnhanceAccurate(s.source, p)
	if err != nil {
		return fmt.Errorf("failed to apply accurate enhancement: %w", err)
	}
	p = p.Clamped()
	s.logger.Debug("accurate enhancement applied",
		"sharpen", p.SharpenStrength, "contrast", p.Contrast, "color_boost", p.ColorBoost)
	return s.setWorking(out)
}

// EnableCropMode enters Selecting with an empty selection.
func (s *Session) EnableCropMode() {
	s.state = Selecting
	s.points = nil
	s.logger.Debug("crop mode enabled")
}

// DisableCropMode returns to Idle and discards the selection.
func (s *Session) DisableCropMode() {
	s.state = Idle
	s.points = nil
	s.logger.Debug("crop mode disabled")
}

// RecordPoint appends a source-coordinate point to the selection.
//
// # Errors
//
//   - ErrCropModeDisabled if the session is not Selecting
//   - ErrSelectionFull if two points are already recorded; the point is
//     discarded and the selection is unchanged
func (s *Session) RecordPoint(p image.Point) error {
	if s.state != Selecting {
		return ErrCropModeDisabled
	}
	if len(s.points) >= MaxPoints {
		s.logger.Debug("crop point discarded", "x", p.X, "y", p.Y)
		return ErrSelectionFull
	}
	s.points = append(s.points, p)
	s.logger.Debug("crop point recorded", "x", p.X, "y", p.Y, "count", len(s.points))
	return nil
}

// RecordViewportPoint maps a click in viewport coordinates to the source
// through the current geometry and records it. The mapped point is
// returned even when recording fails.
func (s *Session) RecordViewportPoint(p image.Point) (image.Point, error) {
	if s.working == nil {
		return image.Point{}, ErrNoImage
	}
	if s.geometry.Scale <= 0 {
		return image.Point{}, imaging.ErrEmptyImage
	}
	src := s.geometry.ToSource(p)
	return src, s.RecordPoint(src)
}

// CommitCrop cuts the rectangle spanned by the two recorded points out of
// the working buffer.
//
// On success the previous working and source buffers go to the undo slot,
// the cropped buffer becomes both source and working buffer, the selection
// is cleared and the session returns to Idle. A rectangle of zero width or
// height produces an empty buffer; in that case the preview geometry is
// zero until another image is loaded or the crop is undone.
//
// # Errors
//
// Returns an ErrInvalidSelection error, leaving the session unchanged, if
// the selection does not hold exactly two points or the working buffer is
// already empty (ErrEmptyImage). Refusing the second case keeps the undo
// slot holding the last non-empty image.
func (s *Session) CommitCrop() (*imaging.Buffer, error) {
	if s.working == nil {
		return nil, ErrNoImage
	}
	if s.working.Empty() {
		return nil, fmt.Errorf("%w: nothing to crop, undo the previous crop first", imaging.ErrEmptyImage)
	}
	if len(s.points) != MaxPoints {
		return nil, fmt.Errorf("%w: need %d points, have %d", imaging.ErrInvalidSelection, MaxPoints, len(s.points))
	}

	rect := imaging.RectFromPoints(s.points[0], s.points[1])
	cropped := imaging.Crop(s.working, rect)

	s.undo = &snapshot{source: s.source, working: s.working}
	s.source = cropped
	s.points = nil
	s.state = Idle
	s.logger.Debug("crop committed", "rect", rect.String(), "width", cropped.Width, "height", cropped.Height)

	if err := s.setWorking(cropped); err != nil && !errors.Is(err, imaging.ErrEmptyImage) {
		return nil, err
	}
	return cropped, nil
}

// UndoCrop restores the buffers saved by the last CommitCrop, clears the
// selection and returns to Idle. It reports whether anything was restored;
// without a prior crop it does nothing.
func (s *Session) UndoCrop() bool {
	if s.undo == nil {
		return false
	}
	snap := s.undo
	s.undo = nil
	s.source = snap.source
	s.points = nil
	s.state = Idle
	s.logger.Debug("crop undone", "width", snap.working.Width, "height", snap.working.Height)
	_ = s.setWorking(snap.working)
	return true
}

// Preview renders the working buffer into the viewport, with the selection
// drawn while Selecting. Before any image is loaded it returns the
// placeholder panel.
func (s *Session) Preview() *image.NRGBA {
	if s.working == nil {
		return preview.Placeholder(s.viewportW, s.viewportH)
	}
	var marks []image.Point
	if s.state == Selecting {
		marks = s.points
	}
	return preview.Render(s.working, s.geometry, marks)
}

// setWorking installs buf as the working buffer and recomputes the preview
// geometry for it.
func (s *Session) setWorking(buf *imaging.Buffer) error {
	s.working = buf
	g, err := preview.Compute(buf.Width, buf.Height, s.viewportW, s.viewportH)
	if err != nil {
		s.geometry = preview.Geometry{ViewportWidth: s.viewportW, ViewportHeight: s.viewportH}
		return err
	}
	s.geometry = g
	return nil
}
