package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lanyuliuyun/ray-trace/tracer"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type encoderFn func(io.Writer, image.Image) error

var encoders = map[string]encoderFn{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTiff,
	".tiff": encodeTiff,
}

func encodeTiff(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Convert a BGRA frame into an RGBA image without row padding.
func ToRGBA(frame *tracer.Frame) (*image.RGBA, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		src := frame.Pixels[y*frame.Pitch : y*frame.Pitch+frame.Width*tracer.BytesPerPixel]
		dst := img.Pix[y*img.Stride : y*img.Stride+frame.Width*4]
		for x := 0; x < len(src); x += 4 {
			dst[x], dst[x+1], dst[x+2], dst[x+3] = src[x+2], src[x+1], src[x], src[x+3]
		}
	}

	return img, nil
}

// Write frame to w using the encoder registered for the extension ext.
func EncodeFrame(w io.Writer, frame *tracer.Frame, ext string) error {
	encode, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
	}

	img, err := ToRGBA(frame)
	if err != nil {
		return err
	}
	return encode(w, img)
}

// Save frame to a png, bmp or tiff file. The format is selected by the
// filename extension.
func SaveFrame(frame *tracer.Frame, filename string) error {
	ext := filepath.Ext(filename)
	if _, ok := encoders[strings.ToLower(ext)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, ext)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = EncodeFrame(f, frame, ext)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
