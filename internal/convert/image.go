// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/formatforge/pkg/types"
)

// ImageConvert re-encodes an image as <base>_converted.<ext>. Alpha and
// palette images bound for JPEG are flattened onto white first.
func (c *Converter) ImageConvert(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if !isImageTarget(req.Target) {
		return Result{}, invalidPair(types.SourceImage, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	img, format, err := decodeImage(req.InputPath)
	if err != nil {
		return Result{}, err
	}
	if isJPEG(req.Target) && hasAlphaOrPalette(img) {
		img = flatten(img)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := outputPath(req, "_converted."+string(req.Target))
	if err := writeOutput(out, func(w io.Writer) error {
		return encodeImage(w, img, req.Target, c.jpegQuality)
	}); err != nil {
		return Result{}, err
	}
	report(progress, 100)

	c.logger.Debug("converted image", "input", req.InputPath, "from", format, "to", req.Target)
	return Result{Outputs: []string{out}, Message: "Image successfully converted!"}, nil
}

func decodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: opening %s: %v", types.ErrIO, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: decoding image %s: %v", types.ErrDecode, path, err)
	}
	return img, format, nil
}

func isImageTarget(t types.TargetFormat) bool {
	switch t {
	case "png", "jpg", "jpeg", "webp", "bmp", "gif":
		return true
	}
	return false
}

func isJPEG(t types.TargetFormat) bool {
	return t == "jpg" || t == "jpeg"
}

// hasAlphaOrPalette reports whether img's color model carries an alpha
// channel or a palette.
func hasAlphaOrPalette(img image.Image) bool {
	switch img.(type) {
	case *image.Paletted, *image.RGBA, *image.RGBA64, *image.NRGBA, *image.NRGBA64,
		*image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	}
	return false
}

// flatten composites img over opaque white and returns an RGBA image whose
// every pixel has full alpha.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// encodeImage writes img to w in the target's format.
func encodeImage(w io.Writer, img image.Image, target types.TargetFormat, jpegQuality int) error {
	var err error
	switch target {
	case "png":
		err = png.Encode(w, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "webp":
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("%w: no image encoder for %q", types.ErrInvalidPair, target)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", target, err)
	}
	return nil
}
