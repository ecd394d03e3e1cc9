// Command exporttest renders a template file to a PNG and reports
// timing, for checking export output without the UI.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	_ "golang.org/x/image/tiff"

	"template-designer/internal/render"
	"template-designer/internal/store"
	"template-designer/internal/template"
	"template-designer/pkg/geometry"
)

func main() {
	templatePath := flag.String("template", "", "Path to template file")
	outPath := flag.String("out", "out.png", "Output PNG path")
	dpi := flag.Float64("dpi", 0, "Render DPI (0 uses the template's DPI)")
	width := flag.Int("width", 0, "Output width in pixels (0 keeps native size)")
	height := flag.Int("height", 0, "Output height in pixels (0 keeps native size)")
	flag.Parse()

	if *templatePath == "" {
		fmt.Println("Usage: exporttest -template <path> [-out out.png] [-dpi 300] [-width N -height N]")
		os.Exit(1)
	}

	tpl, err := template.Load(*templatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load template: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %q: %gx%g units, %d items\n",
		tpl.Name, tpl.CanvasWidth, tpl.CanvasHeight, len(tpl.Items))

	st := store.NewStore()
	if err := tpl.ApplyTo(st); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to instantiate items: %v\n", err)
		os.Exit(1)
	}

	renderDPI := *dpi
	if renderDPI <= 0 {
		renderDPI = tpl.DPI
	}

	start := time.Now()
	img, err := render.Render(st,
		geometry.NewSize(tpl.CanvasWidth, tpl.CanvasHeight),
		render.Options{WidthPx: *width, HeightPx: *height, DPI: renderDPI})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Render failed: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode PNG: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("Rendered %dx%d px at %.0f DPI in %s\n", b.Dx(), b.Dy(), renderDPI, elapsed)
	fmt.Printf("Wrote %s\n", *outPath)
}
