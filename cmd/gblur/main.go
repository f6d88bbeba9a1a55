// Command gblur applies Gaussian smoothing to the luma plane of an
// image from the command line.
//
// Usage:
//
//	gblur blur [options] <input>   recursive (sigma-independent cost) blur
//	gblur down [options] <input>   exact convolution + integer downsampling
//
// Accepted inputs: PNG, JPEG, GIF, TIFF, BMP, WebP ("-" for stdin).
// Output is PNG or JPEG by extension (grayscale).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/deepteams/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/deepteams/gaussblur"
	"github.com/deepteams/gaussblur/imagef"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "blur":
		err = runBlur(os.Args[2:])
	case "down":
		err = runDown(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "gblur: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "gblur: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  gblur blur [options] <input>   Blur with the recursive Gaussian engine
  gblur down [options] <input>   Exact Gaussian convolution + downsampling

Use "-" as input to read from stdin, "-o -" to write to stdout.

Run "gblur <command> -h" for command-specific options.
`)
}

// --- blur ---

func runBlur(args []string) error {
	fs := flag.NewFlagSet("blur", flag.ContinueOnError)
	sigma := fs.Float64("sigma", 2.0, "Gaussian standard deviation (> 0)")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "worker count (0 = single-threaded)")
	output := fs.String("o", "", `output path (default: <input>_blur.png, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("blur: missing input file\nUsage: gblur blur [options] <input>")
	}
	if *sigma <= 0 {
		return fmt.Errorf("blur: sigma must be > 0, got %v", *sigma)
	}
	inputPath := fs.Arg(0)

	plane, err := loadLuma(inputPath)
	if err != nil {
		return err
	}

	var exec workerpool.Executor
	if *workers > 0 {
		pool := workerpool.New(*workers)
		defer pool.Close()
		exec = pool
	}
	out := gaussblur.Blur(plane, *sigma, exec)

	return writeImage(outputPath(inputPath, *output, "_blur"), lumaToImage(out))
}

// --- down ---

func runDown(args []string) error {
	fs := flag.NewFlagSet("down", flag.ContinueOnError)
	sigma := fs.Float64("sigma", 2.0, "Gaussian standard deviation (> 0)")
	radius := fs.Int("radius", 0, "kernel radius in samples (0 = 4*sigma)")
	res := fs.Int("res", 2, "integer decimation factor; dimensions must divide evenly")
	output := fs.String("o", "", `output path (default: <input>_down.png, "-" for stdout)`)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("down: missing input file\nUsage: gblur down [options] <input>")
	}
	if *sigma <= 0 {
		return fmt.Errorf("down: sigma must be > 0, got %v", *sigma)
	}
	if *res < 1 {
		return fmt.Errorf("down: res must be >= 1, got %d", *res)
	}
	inputPath := fs.Arg(0)

	plane, err := loadLuma(inputPath)
	if err != nil {
		return err
	}
	if plane.XSize()%*res != 0 || plane.YSize()%*res != 0 {
		return fmt.Errorf("down: image %dx%d not divisible by res %d",
			plane.XSize(), plane.YSize(), *res)
	}

	r := *radius
	if r == 0 {
		r = int(4**sigma) + 1
	}
	if r > plane.XSize() || r > plane.YSize() {
		return fmt.Errorf("down: kernel radius %d exceeds image %dx%d",
			r, plane.XSize(), plane.YSize())
	}
	kernel := gaussblur.GaussianKernel(r, *sigma)
	out := gaussblur.ConvolveAndSample(plane, kernel, *res)

	return writeImage(outputPath(inputPath, *output, "_down"), lumaToImage(out))
}

// --- I/O helpers ---

// openInput returns an io.ReadCloser for the given path.
// If path is "-", stdin is returned (caller should not close).
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// loadLuma decodes an image file and converts it to a float32 luma
// plane in [0, 1] using BT.601 weights.
func loadLuma(path string) (*imagef.Plane, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	plane := imagef.New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := plane.Row(y)
		for x := 0; x < b.Dx(); x++ {
			r16, g16, b16, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			luma := 0.299*float64(r16) + 0.587*float64(g16) + 0.114*float64(b16)
			row[x] = float32(luma / 65535)
		}
	}
	return plane, nil
}

// lumaToImage converts a [0, 1] plane back to an 8-bit grayscale image,
// clamping out-of-range samples.
func lumaToImage(p *imagef.Plane) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.XSize(), p.YSize()))
	for y := 0; y < p.YSize(); y++ {
		row := p.Row(y)
		for x, v := range row {
			g := v * 255
			if g < 0 {
				g = 0
			} else if g > 255 {
				g = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(g + 0.5)})
		}
	}
	return img
}

// outputPath resolves the output file: explicit -o wins, otherwise the
// input name with a suffix and a .png extension.
func outputPath(input, explicit, suffix string) string {
	if explicit != "" {
		return explicit
	}
	if input == "-" {
		return "-"
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ".png"
}

func writeImage(path string, img image.Image) error {
	if path == "-" {
		return encodeImage(os.Stdout, path, img)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeImage(f, path, img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func encodeImage(w io.Writer, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(w, img)
	}
}
