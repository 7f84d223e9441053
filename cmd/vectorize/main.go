// Command vectorize converts a raster image file into an SVG document on
// the command line.
//
// Usage:
//
//	vectorize <input> <output> [options]   PNG/JPEG/WebP -> SVG
//	vectorize benchmark [options]          time Vectorize over a directory of images
//	vectorize -version                     print build version
package main

import (
	"fmt"
	"os"

	"github.com/blang/semver"
)

// version is overwritten at build time via -ldflags "-X main.version=...".
var version = "0.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "benchmark":
		err = runBenchmark(os.Args[2:])
	case "-version", "--version", "version":
		printVersion()
		return
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		err = runVectorize(os.Args[1:])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "vectorize: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  vectorize <input> <output> [options]   Convert a raster image to SVG
  vectorize benchmark [options]          Time conversion over a directory of images
  vectorize -version                     Print build version

Run "vectorize -h" on a subcommand for its options.
`)
}

func printVersion() {
	v, err := semver.Parse(version)
	if err != nil {
		fmt.Println(version)
		return
	}
	fmt.Println(v.String())
}
