// tga2png converts Truevision TGA files to PNG.
//
// Usage:
//
//	tga2png [options] infile outfile
//
// Options:
//
//	-v           verbose output
//	-h, -help    show usage information
//	-version     show version information
//
// Gzip-compressed input (.tga.gz) is decompressed transparently.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/mrjoshuak/go-targa/tgautil"
)

const version = "1.0.0"

func main() {
	verbose := flag.Bool("v", false, "verbose output")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tga2png [options] infile outfile\n\n")
		fmt.Fprintf(os.Stderr, "Convert a Truevision TGA file to PNG.\n\n")
		fmt.Fprintf(os.Stderr, "True-color and color-mapped images at 8/15/16/24/32 bits per pixel\n")
		fmt.Fprintf(os.Stderr, "are supported, uncompressed or run-length encoded. Gzip-compressed\n")
		fmt.Fprintf(os.Stderr, "input (.tga.gz) is decompressed transparently.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("tga2png version %s\n", version)
		fmt.Println("Part of go-targa - https://github.com/mrjoshuak/go-targa")
		os.Exit(0)
	}

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	inPath := flag.Arg(0)
	outPath := flag.Arg(1)

	if *verbose {
		info, err := tgautil.GetFileInfo(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tga2png: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %dx%d, %d bpp, %s\n",
			inPath, info.Width, info.Height, info.BitsPerPixel, info.TypeName)
	}

	img, err := tgautil.DecodeFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tga2png: decoding %s: %v\n", inPath, err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tga2png: %v\n", err)
		os.Exit(1)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "tga2png: encoding %s: %v\n", outPath, err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "tga2png: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("wrote %s\n", outPath)
	}
}
