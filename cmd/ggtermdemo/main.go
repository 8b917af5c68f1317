// Command ggtermdemo renders every terminal decoration into a PNG using the
// software rect renderer.
//
// Usage:
//
//	ggtermdemo -output decorations.png
//	ggtermdemo -scene scene.toml -size 20
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggterm"
)

func main() {
	var (
		scenePath = flag.String("scene", "", "optional TOML scene file")
		output    = flag.String("output", "decorations.png", "output file")
		fontSize  = flag.Float64("size", 0, "font size in pixels (overrides the scene)")
		fontPath  = flag.String("font", "", "TTF/OTF font file (default Go Mono)")
		verbose   = flag.Bool("v", false, "log renderer activity to stderr")
	)
	flag.Parse()

	if *verbose {
		ggterm.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	scene := defaultScene()
	if *scenePath != "" {
		var err error
		if scene, err = loadScene(*scenePath); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}
	if *fontSize > 0 {
		scene.FontSize = *fontSize
	}
	if *fontPath != "" {
		scene.Font = *fontPath
	}

	target, err := renderScene(scene)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := target.EncodePNG(f); err != nil {
		_ = f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, target.Width(), target.Height())
}
