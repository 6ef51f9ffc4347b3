package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/oriolcg/pdftodocx/core"
	"github.com/oriolcg/pdftodocx/pages"
)

// PageImage is one decoded image XObject pulled from a page's resource
// dictionary, ready for either PNG re-encoding or OCR.
type PageImage struct {
	Name             string // XObject resource name (e.g. "Im1")
	Width            int
	Height           int
	ColorSpace       string // DeviceGray, DeviceRGB, DeviceCMYK, ...
	BitsPerComponent int
	Data             []byte // stream data after core.Stream.Decode
	Filter           string // original stream filter, kept for format detection
}

// ExtractPageImages decodes every /Subtype /Image XObject in a page's
// /Resources /XObject dictionary. XObjects that can't be resolved or
// decoded are skipped rather than failing the whole page.
func (r *Reader) ExtractPageImages(page *pages.Page) ([]PageImage, error) {
	resources, err := page.Resources()
	if err != nil {
		return nil, nil
	}

	xobjectObj := resources.Get("XObject")
	if xobjectObj == nil {
		return nil, nil
	}

	xobjectResolved, err := r.Resolve(xobjectObj)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve XObject dictionary: %w", err)
	}

	xobjects, ok := xobjectResolved.(core.Dict)
	if !ok {
		return nil, nil
	}

	var images []PageImage
	for name, xobj := range xobjects {
		img, ok := r.decodeImageXObject(name, xobj)
		if ok {
			images = append(images, *img)
		}
	}
	return images, nil
}

// decodeImageXObject resolves one /XObject entry and decodes it if, and
// only if, it is an image stream. The second return reports whether img is
// valid: any resolution failure, non-stream value, or non-image subtype is
// a silent skip rather than an error, matching ExtractPageImages' posture.
func (r *Reader) decodeImageXObject(name string, xobj core.Object) (img *PageImage, ok bool) {
	resolved, err := r.Resolve(xobj)
	if err != nil {
		return nil, false
	}

	stream, isStream := resolved.(*core.Stream)
	if !isStream {
		return nil, false
	}

	subtype, isName := stream.Dict.Get("Subtype").(core.Name)
	if !isName || string(subtype) != "Image" {
		return nil, false
	}

	decoded, err := r.decodeImageStream(name, stream)
	if err != nil {
		return nil, false
	}
	return decoded, true
}

// decodeImageStream reads Width/Height/BitsPerComponent/ColorSpace/Filter
// off an image stream's dictionary and decodes its (possibly filtered)
// pixel data.
func (r *Reader) decodeImageStream(name string, stream *core.Stream) (*PageImage, error) {
	dict := stream.Dict

	width, widthOK := dict.Get("Width").(core.Int)
	height, heightOK := dict.Get("Height").(core.Int)
	if !widthOK || !heightOK {
		return nil, fmt.Errorf("image missing or invalid Width/Height")
	}

	bpc := 8
	if bpcInt, ok := dict.Get("BitsPerComponent").(core.Int); ok {
		bpc = int(bpcInt)
	}

	colorSpace := "DeviceGray"
	if csObj := dict.Get("ColorSpace"); csObj != nil {
		colorSpace = r.resolveColorSpace(csObj)
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image stream: %w", err)
	}

	return &PageImage{
		Name:             name,
		Width:            int(width),
		Height:           int(height),
		ColorSpace:       colorSpace,
		BitsPerComponent: bpc,
		Data:             data,
		Filter:           firstFilterName(dict),
	}, nil
}

// firstFilterName returns a stream's filter name, or the first of a filter
// chain, for image-format sniffing downstream. Empty if /Filter is absent.
func firstFilterName(dict core.Dict) string {
	switch f := dict.Get("Filter").(type) {
	case core.Name:
		return string(f)
	case core.Array:
		if len(f) > 0 {
			if name, ok := f[0].(core.Name); ok {
				return string(name)
			}
		}
	}
	return ""
}

// resolveColorSpace resolves obj to a color space name, recursing into
// /Indexed's base color space and reporting /ICCBased profiles generically
// (determining their true component count would require parsing the
// embedded ICC profile).
func (r *Reader) resolveColorSpace(obj core.Object) string {
	resolved, err := r.Resolve(obj)
	if err != nil {
		return "DeviceGray"
	}

	switch v := resolved.(type) {
	case core.Name:
		return string(v)
	case core.Array:
		if len(v) == 0 {
			break
		}
		name, ok := v[0].(core.Name)
		if !ok {
			break
		}
		switch string(name) {
		case "Indexed":
			if len(v) > 1 {
				return r.resolveColorSpace(v[1])
			}
		case "ICCBased":
			return "ICCBased"
		}
		return string(name)
	}

	return "DeviceGray"
}

// ToPNG re-encodes the decoded pixel data as a PNG, suitable for an OCR
// engine like Tesseract or for embedding in the output document.
func (img *PageImage) ToPNG() ([]byte, error) {
	var goImg image.Image
	var err error

	switch img.ColorSpace {
	case "DeviceRGB", "CalRGB":
		goImg, err = img.decodeRGBImage()
	case "DeviceCMYK":
		goImg, err = img.decodeCMYKImage()
	default: // DeviceGray, CalGray, ICCBased, and anything unrecognized
		goImg, err = img.decodeGrayImage()
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, goImg); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func ensureDataLen(data []byte, want int, what string) error {
	if len(data) < want {
		return fmt.Errorf("insufficient data for %s: got %d, expected %d", what, len(data), want)
	}
	return nil
}

// decodeGrayImage converts grayscale pixel data (1, 4, or 8 bits per
// component) to an image.Gray.
func (img *PageImage) decodeGrayImage() (*image.Gray, error) {
	switch img.BitsPerComponent {
	case 1:
		return img.decode1BitGray()
	case 4:
		return img.decode4BitGray()
	case 8:
		goImg := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
		n := img.Width * img.Height
		if err := ensureDataLen(img.Data, n, "8-bit image"); err != nil {
			return nil, err
		}
		copy(goImg.Pix, img.Data[:n])
		return goImg, nil
	default:
		return nil, fmt.Errorf("unsupported bits per component: %d", img.BitsPerComponent)
	}
}

// decode1BitGray expands 1-bit bi-level data (MSB-first, 0=black unless
// BlackIs1 was already applied during stream decode) to 8-bit grayscale.
func (img *PageImage) decode1BitGray() (*image.Gray, error) {
	goImg := image.NewGray(image.Rect(0, 0, img.Width, img.Height))

	bytesPerRow := (img.Width + 7) / 8
	if err := ensureDataLen(img.Data, bytesPerRow*img.Height, "1-bit image"); err != nil {
		return nil, err
	}

	for y := 0; y < img.Height; y++ {
		rowStart := y * bytesPerRow
		for x := 0; x < img.Width; x++ {
			byteIdx := rowStart + x/8
			bitIdx := 7 - (x % 8)
			bit := (img.Data[byteIdx] >> bitIdx) & 1
			if bit == 0 {
				goImg.Pix[y*img.Width+x] = 0
			} else {
				goImg.Pix[y*img.Width+x] = 255
			}
		}
	}
	return goImg, nil
}

// decode4BitGray expands 4-bit grayscale (two pixels per byte, high nibble
// first) to 8-bit, scaling the 0-15 range to 0-255.
func (img *PageImage) decode4BitGray() (*image.Gray, error) {
	goImg := image.NewGray(image.Rect(0, 0, img.Width, img.Height))

	bytesPerRow := (img.Width + 1) / 2
	if err := ensureDataLen(img.Data, bytesPerRow*img.Height, "4-bit image"); err != nil {
		return nil, err
	}

	const scale = 17 // 255 / 15
	for y := 0; y < img.Height; y++ {
		rowStart := y * bytesPerRow
		for x := 0; x < img.Width; x++ {
			byteIdx := rowStart + x/2
			var nibble byte
			if x%2 == 0 {
				nibble = (img.Data[byteIdx] >> 4) & 0x0F
			} else {
				nibble = img.Data[byteIdx] & 0x0F
			}
			goImg.Pix[y*img.Width+x] = nibble * scale
		}
	}
	return goImg, nil
}

// decodeRGBImage converts 8-bit-per-component RGB pixel data to an opaque
// image.RGBA.
func (img *PageImage) decodeRGBImage() (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for RGB: %d", img.BitsPerComponent)
	}

	goImg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	if err := ensureDataLen(img.Data, img.Width*img.Height*3, "RGB image"); err != nil {
		return nil, err
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			srcIdx := (y*img.Width + x) * 3
			dstIdx := (y*img.Width + x) * 4
			goImg.Pix[dstIdx+0] = img.Data[srcIdx+0]
			goImg.Pix[dstIdx+1] = img.Data[srcIdx+1]
			goImg.Pix[dstIdx+2] = img.Data[srcIdx+2]
			goImg.Pix[dstIdx+3] = 255
		}
	}
	return goImg, nil
}

// decodeCMYKImage converts 8-bit-per-component CMYK pixel data to an
// opaque image.RGBA via color.CMYKToRGB.
func (img *PageImage) decodeCMYKImage() (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for CMYK: %d", img.BitsPerComponent)
	}

	goImg := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	if err := ensureDataLen(img.Data, img.Width*img.Height*4, "CMYK image"); err != nil {
		return nil, err
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			srcIdx := (y*img.Width + x) * 4
			c, m, yy, k := img.Data[srcIdx+0], img.Data[srcIdx+1], img.Data[srcIdx+2], img.Data[srcIdx+3]
			r, g, b := color.CMYKToRGB(c, m, yy, k)

			dstIdx := srcIdx
			goImg.Pix[dstIdx+0] = r
			goImg.Pix[dstIdx+1] = g
			goImg.Pix[dstIdx+2] = b
			goImg.Pix[dstIdx+3] = 255
		}
	}
	return goImg, nil
}
