// Package check evaluates consistency rules against a decoded BMP header.
//
// The decoder itself takes the header fields verbatim. A rule is a boolean
// expression over the parameters below, for example
//
//	pixel_offset + pixel_bytes <= stream_len
//
// Parameters:
//
//	image_size    declared file size (header bytes 2..6)
//	pixel_offset  offset of the pixel array (header bytes 10..14)
//	pixel_bytes   bytes read for the fixed 256x256 grid
//	header_len    length of the file header (14)
//	stream_len    actual number of bytes in the source
package check

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knetic/govaluate"

	"github.com/anas-shakeel/bmpview/internal/bmp"
)

// Strict requires the pixel array to start after the file header, to fit in
// the source and the declared size to match the source length.
const Strict = "pixel_offset >= header_len && pixel_offset + pixel_bytes <= stream_len && image_size == stream_len"

// ErrInconsistent is wrapped by the error Evaluate returns when a rule does not hold.
var ErrInconsistent = errors.New("inconsistent bitmap header")

type Rule struct {
	source string
	expr   *govaluate.EvaluableExpression
}

// Compile parses expr. An empty expression is an error, callers skip the
// check instead.
func Compile(expr string) (*Rule, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.New("empty rule")
	}
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid rule %q: %w", expr, err)
	}
	return &Rule{source: expr, expr: e}, nil
}

func (r *Rule) String() string {
	return r.source
}

// Evaluate checks h against the rule. streamLen is the length of the source h
// was read from.
func (r *Rule) Evaluate(h bmp.Header, streamLen int64) error {
	result, err := r.expr.Evaluate(Parameters(h, streamLen))
	if err != nil {
		return fmt.Errorf("evaluating rule %q: %w", r.source, err)
	}

	ok, isBool := result.(bool)
	if !isBool {
		return fmt.Errorf("rule %q evaluated to %v, not a boolean", r.source, result)
	}
	if !ok {
		return fmt.Errorf("%w: %s (image_size=%d pixel_offset=%d stream_len=%d)",
			ErrInconsistent, r.source, h.ImageSize, h.PixelOffset, streamLen)
	}
	return nil
}

// Parameters returns the values a rule can refer to.
func Parameters(h bmp.Header, streamLen int64) map[string]interface{} {
	return map[string]interface{}{
		"image_size":   float64(h.ImageSize),
		"pixel_offset": float64(h.PixelOffset),
		"pixel_bytes":  float64(bmp.PixelBytes),
		"header_len":   float64(bmp.FileHeaderLen),
		"stream_len":   float64(streamLen),
	}
}
