package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/phototuner/internal/imaging"
)

// NewCropCmd crops a photo to the rectangle spanned by two corner points.
func NewCropCmd(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop",
		Short: "crop a photo to the rectangle between two points",
		Long: `Crop a photo to the rectangle spanned by --from and --to.

Points are source pixel coordinates unless --viewport is set, in which case
they are clicks on the letterboxed preview (see the preview command) and are
mapped back to the source first. Any enhancement flag enhances the photo
before cropping.`,
		Example: "  phototuner crop -i in.jpg -o out.jpg --from 10,10 --to 200,150",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			from, _ := cmd.Flags().GetIntSlice("from")
			to, _ := cmd.Flags().GetIntSlice("to")
			viewport, _ := cmd.Flags().GetBool("viewport")

			if input == "" {
				return fmt.Errorf("input path is required")
			}
			p1, err := parsePoint("from", from)
			if err != nil {
				return err
			}
			p2, err := parsePoint("to", to)
			if err != nil {
				return err
			}

			s, err := loadSession(a, input)
			if err != nil {
				return err
			}
			label := "unenhanced"
			if enhancementRequested(cmd) {
				if label, err = applyEnhancement(cmd, s); err != nil {
					return err
				}
			}

			s.EnableCropMode()
			for _, p := range []image.Point{p1, p2} {
				if viewport {
					src, err := s.RecordViewportPoint(p)
					if err != nil {
						return err
					}
					slog.DebugContext(ctx, "Viewport point mapped", "viewport", p.String(), "source", src.String())
				} else if err := s.RecordPoint(p); err != nil {
					return err
				}
			}

			out, err := s.CommitCrop()
			if err != nil {
				return err
			}
			if out.Empty() {
				return fmt.Errorf("crop %v-%v: %w", p1, p2, imaging.ErrEmptyImage)
			}
			return writeResult(cmd, a, out, output, fmt.Sprintf("Cropped %s (%s)", input, label))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "", "Input image path")
	pf.StringP("output", "o", "cropped.jpg", "Output image path")
	pf.IntSlice("from", nil, "First corner as x,y")
	pf.IntSlice("to", nil, "Opposite corner as x,y")
	pf.Bool("viewport", false, "Points are preview viewport coordinates")
	pf.Int("quality", 0, "JPEG quality 1-100 (default: configured quality)")
	addEnhanceFlags(pf)
	return cmd
}

func parsePoint(name string, v []int) (image.Point, error) {
	if len(v) != 2 {
		return image.Point{}, errors.New("--" + name + " must be given as x,y")
	}
	return image.Pt(v[0], v[1]), nil
}
