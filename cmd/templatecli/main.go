// Command templatecli inspects and renders template files from the
// command line.
package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/tiff"

	"template-designer/internal/render"
	"template-designer/internal/store"
	"template-designer/internal/template"
	"template-designer/internal/version"
	"template-designer/pkg/geometry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "templatecli",
		Short:   "Inspect and render photo strip templates",
		Version: fmt.Sprintf("%s (built %s, commit %s)", version.Version, version.BuildTime, version.GitCommit),
	}
	root.AddCommand(newInfoCmd(), newRenderCmd(), newNewCmd())
	return root
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <template>",
		Short: "Print template metadata and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := template.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Name:    %s\n", tpl.Name)
			fmt.Printf("Canvas:  %g x %g units\n", tpl.CanvasWidth, tpl.CanvasHeight)
			fmt.Printf("DPI:     %g\n", tpl.DPI)
			fmt.Printf("Created: %s\n", tpl.Created.Format("2006-01-02 15:04"))
			fmt.Printf("Items:   %d\n", len(tpl.Items))
			for i, snap := range tpl.Items {
				fmt.Printf("  %2d. %-12s at (%g, %g) %g x %g",
					i+1, snap.Kind, snap.Left, snap.Top, snap.Width, snap.Height)
				if snap.Angle != 0 {
					fmt.Printf(" rotated %g°", snap.Angle)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		out           string
		dpi           float64
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Render a template to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := template.Load(args[0])
			if err != nil {
				return err
			}
			st := store.NewStore()
			if err := tpl.ApplyTo(st); err != nil {
				return err
			}
			renderDPI := dpi
			if renderDPI <= 0 {
				renderDPI = tpl.DPI
			}
			img, err := render.Render(st,
				geometry.NewSize(tpl.CanvasWidth, tpl.CanvasHeight),
				render.Options{WidthPx: width, HeightPx: height, DPI: renderDPI})
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("encode %s: %w", out, err)
			}
			b := img.Bounds()
			fmt.Printf("Wrote %s (%dx%d px)\n", out, b.Dx(), b.Dy())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "out.png", "output PNG path")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "render DPI (0 uses the template's DPI)")
	cmd.Flags().IntVar(&width, "width", 0, "output width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "output height in pixels")
	return cmd
}

func newNewCmd() *cobra.Command {
	var (
		width  float64
		height float64
		dpi    float64
	)
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty template file in the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl := template.New(args[0], width, height)
			if dpi > 0 {
				tpl.DPI = dpi
			}
			path := template.DefaultPath(".", args[0])
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := tpl.Save(path); err != nil {
				return err
			}
			fmt.Printf("Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 192, "canvas width in units")
	cmd.Flags().Float64Var(&height, "height", 576, "canvas height in units")
	cmd.Flags().Float64Var(&dpi, "dpi", 300, "template DPI")
	return cmd
}
