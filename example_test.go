package gaussblur_test

import (
	"fmt"

	"github.com/deepteams/gaussblur"
	"github.com/deepteams/gaussblur/imagef"
)

func ExampleBlur() {
	in := imagef.New(64, 48)
	in.Set(32, 24, 1)

	out := gaussblur.Blur(in, 2.5, nil)
	fmt.Printf("%dx%d\n", out.XSize(), out.YSize())
	// Output:
	// 64x48
}

func ExampleConvolveAndSample() {
	in := imagef.New(64, 48)
	in.Fill(1)

	kernel := gaussblur.GaussianKernel(3, 1.5)
	out := gaussblur.ConvolveAndSample(in, kernel, 2)
	fmt.Printf("%dx%d\n", out.XSize(), out.YSize())
	// Output:
	// 32x24
}

func ExampleCreateRecursiveGaussian() {
	// Build once per sigma, reuse across planes.
	rg := gaussblur.CreateRecursiveGaussian(4.5)

	in := imagef.New(128, 128)
	tmp := imagef.New(128, 128)
	out := imagef.New(128, 128)
	gaussblur.FastGaussian(rg, in, nil, tmp, out)
	gaussblur.FastGaussian(rg, out, nil, tmp, out)

	fmt.Println(rg.Radius())
	// Output:
	// 15
}
