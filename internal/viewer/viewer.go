// Package viewer turns a configuration into a decoded, filtered bitmap.
package viewer

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/anas-shakeel/bmpview/internal/bmp"
	"github.com/anas-shakeel/bmpview/internal/check"
	"github.com/anas-shakeel/bmpview/internal/config"
	"github.com/anas-shakeel/bmpview/internal/filters"
	"github.com/anas-shakeel/bmpview/internal/render"
	"github.com/anas-shakeel/bmpview/internal/source"
)

// Load opens and decodes cfg.Path, checks its header against cfg.Check,
// writes metadata to out when asked, applies cfg.Filter and exports the
// result when cfg.Export is set.
//
// With cfg.HeaderOnly only the file header is read, its metadata is
// written to out and the returned bitmap is nil.
func Load(cfg config.Config, out io.Writer) (*bmp.Bitmap, error) {
	src, err := source.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var rule *check.Rule
	if cfg.Check != "" {
		if rule, err = check.Compile(cfg.Check); err != nil {
			return nil, err
		}
	}

	if cfg.HeaderOnly {
		header, err := bmp.DecodeHeader(src)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", cfg.Path, err)
		}
		if rule != nil {
			if err := rule.Evaluate(header, src.Size()); err != nil {
				return nil, err
			}
		}
		return nil, (&bmp.Bitmap{Header: header}).WriteMetadata(out, cfg.Path)
	}

	bitmap, err := bmp.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", cfg.Path, err)
	}
	if rule != nil {
		if err := rule.Evaluate(bitmap.Header, src.Size()); err != nil {
			return nil, err
		}
	}

	if cfg.Info {
		if err := bitmap.WriteMetadata(out, cfg.Path); err != nil {
			return nil, err
		}
	}

	bitmap, err = filters.Apply(cfg.Filter, bitmap, cfg.Factor, cfg.Method)
	if err != nil {
		return nil, err
	}

	if cfg.Export != "" {
		if err := exportPNG(cfg.Export, bitmap, cfg.Scale); err != nil {
			return nil, err
		}
		log.Printf("Exported %s to %s.", cfg.Path, cfg.Export)
	}

	return bitmap, nil
}

func exportPNG(filename string, bitmap *bmp.Bitmap, scale int) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return render.Export(f, bitmap, scale)
}
