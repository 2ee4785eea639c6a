package colorhash_test

import (
	"errors"
	"fmt"

	"github.com/listenupapp/colorhash/pkg/colorhash"
)

func ExampleCompute() {
	c, err := colorhash.Compute("Hello World")
	if err != nil {
		panic(err)
	}
	fmt.Println(c.HSL())
	fmt.Println(c.RGB())
	fmt.Println(c.Hex())
	// Output:
	// {131 0.65 0.5}
	// {45 210 75}
	// #2dd24b
}

func ExampleCompute_hueRange() {
	c, err := colorhash.Compute("hey", colorhash.WithHueRange(150, 150))
	if err != nil {
		panic(err)
	}
	fmt.Println(c.HSL().H)
	// Output: 150
}

func ExampleNewConfig() {
	_, err := colorhash.NewConfig(colorhash.WithLightness(1.5))
	fmt.Println(errors.Is(err, colorhash.ErrRange))
	fmt.Println(err)
	// Output:
	// true
	// lightness params must be in range (0.0, 1.0)
}

func ExampleHSLToRGB() {
	fmt.Println(colorhash.HSLToRGB(180, 0.5, 0.5).Hex())
	// Output: #40bfbf
}
