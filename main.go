// bmpview decodes a 256x256, 24 bit bitmap and shows it in a window or a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/anas-shakeel/bmpview/internal/bmp"
	"github.com/anas-shakeel/bmpview/internal/check"
	"github.com/anas-shakeel/bmpview/internal/config"
	"github.com/anas-shakeel/bmpview/internal/render"
	"github.com/anas-shakeel/bmpview/internal/viewer"
	"github.com/anas-shakeel/bmpview/internal/window"
)

// Command line flags and the configuration keys they override
var flagKeys = map[string]string{
	"path":        "path",
	"display":     "display",
	"interval":    "frame_interval",
	"title":       "title",
	"scale":       "scale",
	"step":        "step",
	"filter":      "filter",
	"factor":      "factor",
	"method":      "method",
	"check":       "check",
	"export":      "export",
	"header-only": "header_only",
	"info":        "info",
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bmpview: ")

	defaults, err := config.Load("", nil)
	if err != nil {
		log.Fatal(err)
	}

	// Define flags
	configPath := flag.String("config", "", "YAML configuration file")
	flag.String("path", "", "Bitmap to open (.bmp or .bmp.zst)")
	flag.String("display", defaults.Display, "Where to show the bitmap: window, terminal or none")
	flag.Duration("interval", defaults.FrameInterval, "Time between redraws of the window")
	flag.String("title", defaults.Title, "Window title")
	flag.Int("scale", defaults.Scale, "Enlargement of the window and the exported PNG")
	flag.Int("step", defaults.Step, "Show every step-th pixel in the terminal")
	flag.String("filter", defaults.Filter, "View filter: none, invert, grayscale, luma, brightness or contrast")
	flag.Float64("factor", defaults.Factor, "Factor for the brightness and contrast filters")
	flag.String("method", defaults.Method, "Brightness method: add or multiply")
	flag.String("check", "", "Header consistency rule, e.g. 'pixel_offset + pixel_bytes <= stream_len'")
	strict := flag.Bool("strict", false, "Use the strict header consistency rule")
	flag.String("export", "", "Write the (filtered) bitmap to this PNG file")
	flag.Bool("header-only", false, "Only read the file header")
	flag.Bool("info", false, "Print the bitmap metadata")

	flag.Parse() // Parse command-line arguments

	overrides := map[string]interface{}{}
	flag.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.(flag.Getter).Get()
		}
	})
	if *strict {
		overrides["check"] = check.Strict
	}
	if flag.NArg() > 0 {
		overrides["path"] = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Path == "" {
		log.Fatal("no bitmap given, pass a path or set 'path' in the configuration file")
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	bitmap, err := viewer.Load(cfg, os.Stdout)
	if err != nil || bitmap == nil {
		return err
	}

	switch cfg.Display {
	case "terminal":
		return render.Render(bitmap, render.NewTerminalCanvas(os.Stdout, bmp.Width, bmp.Height, cfg.Step))
	case "window":
		showWindow(cfg, bitmap)
	}
	return nil
}

// Redraws bitmap until the window is closed or Escape is pressed
func showWindow(cfg config.Config, bitmap *bmp.Bitmap) {
	win := window.New(cfg.Title, bmp.Width, bmp.Height, cfg.Scale)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := render.Run(ctx, bitmap, win, win.Events(), cfg.FrameInterval)
		if ctx.Err() != nil {
			return // window already closed
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Print(err)
		}
		win.Close()
	}()

	win.ShowAndRun()
	cancel()
}
