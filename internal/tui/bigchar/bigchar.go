// Package bigchar renders a headword as large block art using half-block
// characters, so kanji are readable at a glance in the terminal.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const faceSize = 64

// Common CJK font locations, tried after any explicitly configured path.
var systemFontPaths = []string{
	// macOS
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	`C:\Windows\Fonts\msyh.ttc`,
	`C:\Windows\Fonts\msgothic.ttc`,
}

var (
	loadOnce   sync.Once
	loadedFace font.Face

	cacheMu sync.Mutex
	cache   = make(map[string]string)

	// ConfiguredPath, when set before first use, is tried first.
	ConfiguredPath string
)

// loadFace finds and parses a CJK-capable font.
func loadFace() {
	paths := systemFontPaths
	if ConfiguredPath != "" {
		paths = append([]string{ConfiguredPath}, paths...)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if face := parseFace(data); face != nil {
			loadedFace = face
			return
		}
	}
}

// parseFace handles plain TTF files via freetype and collections via
// opentype, returning nil when neither parser accepts the data.
func parseFace(data []byte) font.Face {
	if fnt, err := truetype.Parse(data); err == nil {
		return truetype.NewFace(fnt, &truetype.Options{Size: faceSize, DPI: 72})
	}
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if face, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: faceSize, DPI: 72}); err == nil {
				return face
			}
		}
	}
	return nil
}

// Available reports whether a usable CJK font was found.
func Available() bool {
	loadOnce.Do(loadFace)
	return loadedFace != nil
}

// Render draws text as half-block art, cols×rows terminal cells.
// Returns "" when no font is available.
func Render(text string, cols, rows int) string {
	if text == "" || !Available() {
		return ""
	}

	cacheMu.Lock()
	key := fmt.Sprintf("%s|%dx%d", text, cols, rows)
	if cached, ok := cache[key]; ok {
		cacheMu.Unlock()
		return cached
	}
	cacheMu.Unlock()

	rendered := render(text, cols, rows)

	cacheMu.Lock()
	cache[key] = rendered
	cacheMu.Unlock()
	return rendered
}

func render(text string, cols, rows int) string {
	width := font.MeasureString(loadedFace, text).Ceil()
	metrics := loadedFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	const padding = 4
	srcW, srcH := width+2*padding, height+2*padding
	if srcW < faceSize {
		srcW = faceSize
	}
	if srcH < faceSize {
		srcH = faceSize
	}

	src := image.NewGray(image.Rect(0, 0, srcW, srcH))
	draw.Draw(src, src.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: loadedFace,
		Dot:  fixed.P((srcW-width)/2, (srcH-height)/2+ascent),
	}
	d.DrawString(text)

	// half blocks give two vertical pixels per cell
	scaled := scale(src, cols, rows*2)
	return toHalfBlocks(scaled, cols, rows)
}

// scale shrinks a grayscale image by area averaging.
func scale(src *image.Gray, dstW, dstH int) *image.Gray {
	srcW := src.Bounds().Max.X
	srcH := src.Bounds().Max.Y
	dst := image.NewGray(image.Rect(0, 0, dstW, dstH))

	xr := float64(srcW) / float64(dstW)
	yr := float64(srcH) / float64(dstH)

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			x1, y1 := int(float64(dx)*xr), int(float64(dy)*yr)
			x2, y2 := int(float64(dx+1)*xr), int(float64(dy+1)*yr)
			if x2 > srcW {
				x2 = srcW
			}
			if y2 > srcH {
				y2 = srcH
			}

			var sum, count int
			for y := y1; y < y2; y++ {
				for x := x1; x < x2; x++ {
					sum += int(src.GrayAt(x, y).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

func toHalfBlocks(img *image.Gray, cols, rows int) string {
	const threshold = 40

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if x < 0 || y < 0 || x >= img.Bounds().Max.X || y >= img.Bounds().Max.Y {
		return 0
	}
	return img.GrayAt(x, y).Y
}
