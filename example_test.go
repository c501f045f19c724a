package laplacian_test

import (
	"bytes"
	"fmt"

	"github.com/mrjoshuak/go-laplacian/compression"
	"github.com/mrjoshuak/go-laplacian/convolve"
	"github.com/mrjoshuak/go-laplacian/ppm"
)

// Example_filterFile demonstrates filtering a PPM file end to end.
func Example_filterFile() {
	img, err := ppm.ReadFile("input.ppm")
	if err != nil {
		fmt.Println("Error reading image:", err)
		return
	}

	edges, err := convolve.Apply(img, convolve.DefaultConfig())
	if err != nil {
		fmt.Println("Error filtering image:", err)
		return
	}

	if err := ppm.WriteFile("laplacian.ppm.gz", edges, compression.Gzip); err != nil {
		fmt.Println("Error writing image:", err)
		return
	}
}

// Example_solidImage shows that a uniform image has no edges.
func Example_solidImage() {
	img, _ := ppm.NewImage(4, 4)
	for i := range img.Pix {
		img.Pix[i] = ppm.Pixel{R: 100, G: 100, B: 100}
	}

	edges, err := convolve.Apply(img, convolve.Config{Workers: 3})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	var buf bytes.Buffer
	ppm.Encode(&buf, edges)
	fmt.Printf("%q\n", buf.String()[:11])
	fmt.Println(edges.PixelAt(0, 0), edges.PixelAt(3, 3))
	// Output:
	// "P6\n4 4\n255\n"
	// {0 0 0} {0 0 0}
}

// Example_partition shows how rows are split between workers.
func Example_partition() {
	bands, _ := convolve.Partition(23, 4)
	for _, b := range bands {
		fmt.Printf("rows [%d,%d)\n", b.Start, b.End())
	}
	// Output:
	// rows [0,5)
	// rows [5,10)
	// rows [10,15)
	// rows [15,23)
}
