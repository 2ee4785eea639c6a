// Package main provides the colorhash command line tool.
//
// Usage:
//
//	colorhash [flags] VALUE...
//	colorhash token [-data DIR] [-subject NAME] [-duration 24h]
//
// Each value is printed as "value hex hsl rgb". With -swatch DIR a PNG tile
// named after the hex code is written for every value.
package main

import (
	"encoding/json/v2"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/listenupapp/colorhash/internal/auth"
	"github.com/listenupapp/colorhash/internal/config"
	"github.com/listenupapp/colorhash/internal/swatch"
	"github.com/listenupapp/colorhash/internal/util"
	"github.com/listenupapp/colorhash/pkg/colorhash"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "token" {
		return runToken(args[1:], stdout, stderr)
	}
	return runColors(args, stdout, stderr)
}

// colorLine is one value in -json output.
type colorLine struct {
	Value    string        `json:"value"`
	Hex      string        `json:"hex"`
	HSL      colorhash.HSL `json:"hsl"`
	RGB      []int         `json:"rgb"`
	Checksum uint32        `json:"checksum"`
}

func runColors(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colorhash", flag.ContinueOnError)
	fs.SetOutput(stderr)

	lightness := fs.String("l", "", "Lightness pool, comma-separated fractions")
	saturation := fs.String("s", "", "Saturation pool, comma-separated fractions")
	minHue := fs.Int("min-hue", 0, "Lower hue bound in degrees (unset means no range)")
	maxHue := fs.Int("max-hue", 360, "Upper hue bound in degrees (unset means no range)")
	asJSON := fs.Bool("json", false, "Print one JSON object per value")
	nfc := fs.Bool("nfc", false, "Normalize values to Unicode NFC before hashing")
	swatchDir := fs.String("swatch", "", "Write a labeled <hex>.png tile per value into this directory")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: colorhash [flags] VALUE...")
		fs.PrintDefaults()
		return 2
	}

	// Hue bounds are passed on only when given, so any explicit value is validated.
	var minHueSet, maxHueSet *int
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-hue":
			minHueSet = minHue
		case "max-hue":
			maxHueSet = maxHue
		}
	})

	cfg, err := buildConfig(*lightness, *saturation, minHueSet, maxHueSet)
	if err != nil {
		fmt.Fprintf(stderr, "colorhash: %v\n", err)
		return 1
	}

	if *swatchDir != "" {
		if err := os.MkdirAll(*swatchDir, 0o755); err != nil { //nolint:gosec // output directory for images
			fmt.Fprintf(stderr, "colorhash: %v\n", err)
			return 1
		}
	}

	truecolor := !*asJSON && isTerminal(stdout)

	for _, value := range fs.Args() {
		if *nfc {
			value = util.NFC(value)
		}
		c := colorhash.ComputeWithConfig(value, cfg)

		if *swatchDir != "" {
			if err := writeSwatch(*swatchDir, c); err != nil {
				fmt.Fprintf(stderr, "colorhash: %v\n", err)
				return 1
			}
		}

		if *asJSON {
			line := colorLine{
				Value:    value,
				Hex:      c.Hex(),
				HSL:      c.HSL(),
				RGB:      c.RGB().Slice(),
				Checksum: c.Checksum(),
			}
			if err := json.MarshalWrite(stdout, line); err != nil {
				fmt.Fprintf(stderr, "colorhash: %v\n", err)
				return 1
			}
			fmt.Fprintln(stdout)
			continue
		}

		if truecolor {
			rgb := c.RGB()
			fmt.Fprintf(stdout, "\x1b[48;2;%d;%d;%dm  \x1b[0m ", rgb.R, rgb.G, rgb.B)
		}
		fmt.Fprintln(stdout, formatLine(value, c))
	}

	return 0
}

// formatLine renders "value hex hsl(h, s%, l%) rgb(r, g, b)".
func formatLine(value string, c colorhash.Color) string {
	hsl, rgb := c.HSL(), c.RGB()
	return fmt.Sprintf("%s %s hsl(%g, %g%%, %g%%) rgb(%d, %d, %d)",
		value, c.Hex(),
		hsl.H, percent(hsl.S), percent(hsl.L),
		rgb.R, rgb.G, rgb.B,
	)
}

// percent turns a fraction into a percentage rounded to one decimal, so
// 0.55 prints as 55 rather than 55.00000000000001.
func percent(f float64) float64 {
	return math.Round(f*1000) / 10
}

func buildConfig(lightness, saturation string, minHue, maxHue *int) (colorhash.Config, error) {
	var opts []colorhash.Option

	if lightness != "" {
		pool, err := config.ParsePool(lightness)
		if err != nil {
			return colorhash.Config{}, fmt.Errorf("-l: %w", err)
		}
		opts = append(opts, colorhash.WithLightness(pool...))
	}
	if saturation != "" {
		pool, err := config.ParsePool(saturation)
		if err != nil {
			return colorhash.Config{}, fmt.Errorf("-s: %w", err)
		}
		opts = append(opts, colorhash.WithSaturation(pool...))
	}
	if minHue != nil {
		opts = append(opts, colorhash.WithMinHue(*minHue))
	}
	if maxHue != nil {
		opts = append(opts, colorhash.WithMaxHue(*maxHue))
	}

	return colorhash.NewConfig(opts...)
}

func writeSwatch(dir string, c colorhash.Color) error {
	data, err := swatch.PNG(c, swatch.Options{Label: true})
	if err != nil {
		return err
	}
	name := strings.TrimPrefix(c.Hex(), "#") + ".png"
	return os.WriteFile(filepath.Join(dir, name), data, 0o644) //nolint:gosec // public image
}

func runToken(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colorhash token", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dataPath := fs.String("data", defaultDataPath(), "Server data directory holding auth.key")
	subject := fs.String("subject", "admin", "Token subject, recorded in server logs")
	duration := fs.Duration("duration", 24*time.Hour, "Token lifetime")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *dataPath == "" {
		fmt.Fprintln(stderr, "colorhash token: -data is required")
		return 2
	}

	key, err := auth.LoadOrGenerateKey(*dataPath)
	if err != nil {
		fmt.Fprintf(stderr, "colorhash token: %v\n", err)
		return 1
	}

	svc, err := auth.NewTokenService(key, *duration)
	if err != nil {
		fmt.Fprintf(stderr, "colorhash token: %v\n", err)
		return 1
	}

	token, expires, err := svc.IssueAdminToken(*subject)
	if err != nil {
		fmt.Fprintf(stderr, "colorhash token: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, token)
	fmt.Fprintf(stderr, "expires %s\n", expires.Format(time.RFC3339))
	return 0
}

// defaultDataPath mirrors the server: DATA_PATH, else ~/.colorhash.
func defaultDataPath() string {
	if p := os.Getenv("DATA_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colorhash")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

