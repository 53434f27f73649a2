package badge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// Supported formats, as reported by DecodeImage.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// DecodeImage decodes PNG or JPEG bytes. Any other input, including formats
// other packages registered with the image package, is a decode failure.
func DecodeImage(imgBytes []byte) (image.Image, string, error) {
	if len(imgBytes) == 0 {
		return nil, "", decodeFailure("decode image", errors.New("empty input"))
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, "", decodeFailure("decode image", err)
	}

	var img image.Image
	switch format {
	case FormatPNG:
		img, err = png.Decode(bytes.NewReader(imgBytes))
	case FormatJPEG:
		img, err = jpeg.Decode(bytes.NewReader(imgBytes))
	default:
		return nil, format, decodeFailure("decode image", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format))
	}
	if err != nil {
		return nil, format, decodeFailure("decode image", err)
	}
	return img, format, nil
}

// EncodeImage encodes img as png or jpeg. quality only applies to jpeg.
func EncodeImage(img image.Image, format string, quality int) ([]byte, error) {
	if err := checkImage("encode image", img); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG, "jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		return nil, contractViolation("encode image", "unsupported format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
