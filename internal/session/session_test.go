package session

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/phototuner/internal/enhance"
	"github.com/ironsheep/phototuner/internal/imaging"
	"github.com/ironsheep/phototuner/internal/preview"
)

func quietSession(t *testing.T) *Session {
	t.Helper()
	return New(600, 400, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// patternBuffer fills each pixel with a value derived from its position so
// crops can be checked pixel by pixel.
func patternBuffer(width, height int) *imaging.Buffer {
	buf := imaging.NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetRGB(x, y, uint8(x), uint8(y), uint8(x+y))
		}
	}
	return buf
}

func loaded(t *testing.T, w, h int) *Session {
	t.Helper()
	s := quietSession(t)
	require.NoError(t, s.Load(patternBuffer(w, h)))
	return s
}

func TestNew(t *testing.T) {
	s := quietSession(t)
	assert.NotEmpty(t, s.ID())
	assert.NotEqual(t, s.ID(), quietSession(t).ID())
	assert.False(t, s.Loaded())
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.CanUndo())
}

func TestLoad(t *testing.T) {
	s := loaded(t, 300, 300)

	assert.True(t, s.Loaded())
	assert.Same(t, s.Source(), s.Working())
	g := s.Geometry()
	assert.Equal(t, 300, g.SourceWidth)
	assert.InDelta(t, 400.0/300.0, g.Scale, 1e-12)

	require.ErrorIs(t, s.Load(imaging.NewBuffer(0, 0)), imaging.ErrEmptyImage)
}

func TestLoad_ResetsCropState(t *testing.T) {
	s := loaded(t, 300, 300)
	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(10, 10)))
	require.NoError(t, s.RecordPoint(image.Pt(20, 20)))
	_, err := s.CommitCrop()
	require.NoError(t, err)
	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(1, 1)))

	require.NoError(t, s.Load(patternBuffer(50, 50)))
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Points())
	assert.False(t, s.CanUndo())
}

func TestCommitCrop(t *testing.T) {
	tests := []struct {
		name   string
		points []image.Point
	}{
		{"top-left first", []image.Point{{10, 10}, {200, 150}}},
		{"bottom-right first", []image.Point{{200, 150}, {10, 10}}},
		{"anti-diagonal", []image.Point{{10, 150}, {200, 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(t, 300, 300)
			original := s.Working()

			s.EnableCropMode()
			for _, p := range tt.points {
				require.NoError(t, s.RecordPoint(p))
			}
			out, err := s.CommitCrop()
			require.NoError(t, err)

			assert.Equal(t, 190, out.Width)
			assert.Equal(t, 140, out.Height)
			assert.Equal(t, original.RGBAt(10, 10), out.RGBAt(0, 0))
			assert.Equal(t, original.RGBAt(199, 149), out.RGBAt(189, 139))

			assert.Same(t, out, s.Working())
			assert.Same(t, out, s.Source())
			assert.Equal(t, Idle, s.State())
			assert.Empty(t, s.Points())
			assert.True(t, s.CanUndo())
			assert.Equal(t, 190, s.Geometry().SourceWidth)
		})
	}
}

func TestCommitCrop_IncompleteSelection(t *testing.T) {
	for _, n := range []int{0, 1} {
		s := loaded(t, 300, 300)
		s.EnableCropMode()
		for i := 0; i < n; i++ {
			require.NoError(t, s.RecordPoint(image.Pt(i*10, i*10)))
		}
		before := s.Working()

		_, err := s.CommitCrop()
		require.ErrorIs(t, err, imaging.ErrInvalidSelection, "with %d points", n)
		assert.Equal(t, Selecting, s.State())
		assert.Len(t, s.Points(), n)
		assert.Same(t, before, s.Working())
		assert.False(t, s.CanUndo())
	}
}

func TestCommitCrop_Degenerate(t *testing.T) {
	s := loaded(t, 300, 300)
	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(50, 10)))
	require.NoError(t, s.RecordPoint(image.Pt(50, 200)))

	out, err := s.CommitCrop()
	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Equal(t, preview.Geometry{ViewportWidth: 600, ViewportHeight: 400}, s.Geometry())

	assert.Equal(t, 0, out.Width)
	assert.Equal(t, 190, out.Height)

	require.True(t, s.UndoCrop())
	assert.Equal(t, 300, s.Working().Width)
}

func TestCommitCrop_EmptyWorkingKeepsUndo(t *testing.T) {
	s := loaded(t, 300, 300)
	original := s.Working()

	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(50, 10)))
	require.NoError(t, s.RecordPoint(image.Pt(50, 200)))
	_, err := s.CommitCrop()
	require.NoError(t, err)
	empty := s.Working()
	require.True(t, empty.Empty())

	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(0, 0)))
	require.NoError(t, s.RecordPoint(image.Pt(10, 10)))
	out, err := s.CommitCrop()
	require.ErrorIs(t, err, imaging.ErrEmptyImage)
	require.ErrorIs(t, err, imaging.ErrInvalidSelection)
	assert.Nil(t, out)
	assert.Same(t, empty, s.Working())
	assert.Equal(t, Selecting, s.State())
	assert.Len(t, s.Points(), 2)

	require.True(t, s.UndoCrop())
	assert.Same(t, original, s.Working())
	assert.Equal(t, 300, s.Working().Width)
	assert.Equal(t, 300, s.Working().Height)
	assert.True(t, s.Working().Equal(patternBuffer(300, 300)))
}

func TestLoad_InvalidViewportLeavesSessionEmpty(t *testing.T) {
	s := New(0, 400, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	err := s.Load(patternBuffer(20, 20))
	require.ErrorIs(t, err, imaging.ErrEmptyImage)
	assert.False(t, s.Loaded())
	assert.Nil(t, s.Source())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, preview.Geometry{}, s.Geometry())
}

func TestCommitCrop_ClipsToBounds(t *testing.T) {
	s := loaded(t, 100, 80)
	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(-20, 40)))
	require.NoError(t, s.RecordPoint(image.Pt(60, 500)))

	out, err := s.CommitCrop()
	require.NoError(t, err)
	assert.Equal(t, 60, out.Width)
	assert.Equal(t, 40, out.Height)
}

func TestRecordPoint(t *testing.T) {
	s := loaded(t, 300, 300)

	require.ErrorIs(t, s.RecordPoint(image.Pt(1, 1)), ErrCropModeDisabled)
	require.ErrorIs(t, s.RecordPoint(image.Pt(1, 1)), imaging.ErrInvalidSelection)

	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(1, 1)))
	require.NoError(t, s.RecordPoint(image.Pt(2, 2)))

	err := s.RecordPoint(image.Pt(3, 3))
	require.ErrorIs(t, err, ErrSelectionFull)
	assert.Equal(t, []image.Point{{1, 1}, {2, 2}}, s.Points())

	s.EnableCropMode()
	assert.Empty(t, s.Points(), "re-enabling starts a new selection")

	require.NoError(t, s.RecordPoint(image.Pt(5, 5)))
	s.DisableCropMode()
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Points())
}

func TestRecordViewportPoint(t *testing.T) {
	s := loaded(t, 150, 100) // scale 4, no margins
	s.EnableCropMode()

	src, err := s.RecordViewportPoint(image.Pt(40, 80))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(10, 20), src)
	assert.Equal(t, []image.Point{{10, 20}}, s.Points())

	_, err = quietSession(t).RecordViewportPoint(image.Pt(0, 0))
	require.ErrorIs(t, err, ErrNoImage)
}

func TestUndoCrop(t *testing.T) {
	s := loaded(t, 300, 300)
	original := s.Working().Clone()

	assert.False(t, s.UndoCrop(), "undo without a crop is a no-op")
	assert.True(t, original.Equal(s.Working()))

	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(10, 10)))
	require.NoError(t, s.RecordPoint(image.Pt(200, 150)))
	_, err := s.CommitCrop()
	require.NoError(t, err)

	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(3, 3)))

	require.True(t, s.UndoCrop())
	assert.True(t, original.Equal(s.Working()))
	assert.True(t, original.Equal(s.Source()))
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Points())
	assert.Equal(t, 300, s.Geometry().SourceWidth)

	assert.False(t, s.UndoCrop(), "only one level of undo")
}

func TestApplyPreset(t *testing.T) {
	s := quietSession(t)
	require.ErrorIs(t, s.ApplyPreset(enhance.Natural), ErrNoImage)

	require.NoError(t, s.Load(patternBuffer(40, 30)))
	source := s.Source()

	require.NoError(t, s.ApplyPreset(enhance.Natural))
	assert.Same(t, source, s.Source(), "presets do not change the source")
	assert.NotSame(t, source, s.Working())

	want, err := enhance.Enhance(source, enhance.Natural)
	require.NoError(t, err)
	assert.True(t, want.Equal(s.Working()))

	// Presets do not stack.
	require.NoError(t, s.ApplyPreset(enhance.Natural))
	assert.True(t, want.Equal(s.Working()))
}

func TestApplyAccurate(t *testing.T) {
	s := loaded(t, 40, 30)
	p := enhance.Params{SharpenStrength: 0, Contrast: 1.5, ColorBoost: 20}

	require.NoError(t, s.ApplyAccurate(p))
	want, err := enhance.EnhanceAccurate(s.Source(), p)
	require.NoError(t, err)
	assert.True(t, want.Equal(s.Working()))
}

func TestEnhanceAfterCrop(t *testing.T) {
	s := loaded(t, 300, 300)
	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(0, 0)))
	require.NoError(t, s.RecordPoint(image.Pt(100, 50)))
	_, err := s.CommitCrop()
	require.NoError(t, err)

	require.NoError(t, s.ApplyPreset(enhance.Standard))
	assert.Equal(t, 100, s.Working().Width)
	assert.Equal(t, 50, s.Working().Height)
}

func TestPreview(t *testing.T) {
	empty := quietSession(t).Preview()
	assert.Equal(t, image.Rect(0, 0, 600, 400), empty.Bounds())
	assert.Equal(t, preview.PlaceholderColor, empty.NRGBAAt(300, 200))

	s := loaded(t, 300, 300)
	s.EnableCropMode()
	require.NoError(t, s.RecordPoint(image.Pt(150, 150)))

	img := s.Preview()
	assert.Equal(t, image.Rect(0, 0, 600, 400), img.Bounds())
	at := s.Geometry().ToPreview(image.Pt(150, 150))
	assert.Equal(t, preview.MarkerColor, img.NRGBAAt(at.X, at.Y))

	s.DisableCropMode()
	assert.NotEqual(t, preview.MarkerColor, s.Preview().NRGBAAt(at.X, at.Y))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "selecting", Selecting.String())
	assert.Equal(t, "State(7)", State(7).String())
}
