package cmd

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/phototuner/internal/preview"
)

// NewPreviewCmd renders the letterboxed viewport preview of a photo.
func NewPreviewCmd(ctx context.Context, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "render the letterboxed preview of a photo",
		Long: `Render a photo into the preview viewport the way the editor shows it:
scaled to fit, centered on a dark background. Points given with --mark (source
coordinates) are drawn as crop markers, and --grid overlays a grid labelled
in source pixels for choosing crop points. Any enhancement flag enhances the
photo first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			marks, _ := cmd.Flags().GetIntSlice("mark")
			if input == "" {
				return fmt.Errorf("input path is required")
			}
			if len(marks)%2 != 0 || len(marks) > 4 {
				return fmt.Errorf("--mark takes up to two x,y points")
			}

			s, err := loadSession(a, input)
			if err != nil {
				return err
			}
			if enhancementRequested(cmd) {
				if _, err := applyEnhancement(cmd, s); err != nil {
					return err
				}
			}
			if len(marks) > 0 {
				s.EnableCropMode()
				for i := 0; i < len(marks); i += 2 {
					if err := s.RecordPoint(image.Pt(marks[i], marks[i+1])); err != nil {
						return err
					}
				}
			}

			img := s.Preview()
			if spacing, _ := cmd.Flags().GetInt("grid"); spacing > 0 {
				labels, _ := cmd.Flags().GetBool("grid-labels")
				grid := preview.Grid{Spacing: spacing, Labels: labels}
				if hex, _ := cmd.Flags().GetString("grid-color"); hex != "" {
					if grid.Color, err = preview.ParseHexColor(hex); err != nil {
						return err
					}
				}
				preview.DrawGrid(img, s.Geometry(), grid)
			}
			if err := imaging.Save(img, output); err != nil {
				return fmt.Errorf("failed to save preview: %w", err)
			}
			g := s.Geometry()
			fmt.Fprintf(cmd.OutOrStdout(), "Preview %s -> %s (scale %.4f, offset %d,%d)\n",
				input, output, g.Scale, g.OffsetX, g.OffsetY)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("input", "i", "", "Input image path")
	pf.StringP("output", "o", "preview.png", "Output image path")
	pf.IntSlice("mark", nil, "Crop marker points as x1,y1[,x2,y2]")
	pf.Int("grid", 0, "Overlay a grid every N source pixels")
	pf.Bool("grid-labels", true, "Label grid intersections with source coordinates")
	pf.String("grid-color", "", "Grid color as hex RGB or RGBA (default #FF000080)")
	addEnhanceFlags(pf)
	return cmd
}
