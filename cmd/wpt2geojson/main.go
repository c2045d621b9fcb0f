package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/woozymasta/waymap/internal/geo"
	"github.com/woozymasta/waymap/internal/waypoint"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input  string `short:"i" long:"in"     description:"Input waypoint CSV path or URL. Reads from stdin if empty"`
	Output string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read Input
	var (
		locations []waypoint.Waypoint
		err       error
	)

	if opts.Input != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		locations, err = waypoint.NewReader(opts.Input, nil).Load(ctx)
		cancel()
	} else {
		locations, err = waypoint.Decode(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading waypoints: %v\n", err)
		os.Exit(1)
	}

	fc, skipped := geo.FromWaypoints(locations)
	for _, w := range locations {
		if !w.Valid() {
			fmt.Fprintf(os.Stderr, "Skipping %s due to invalid coords\n", w.Name)
		}
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d waypoints to %s (format: %s, skipped: %d)\n",
			len(fc.Features), opts.Output, opts.Format, skipped)
	} else {
		fmt.Println(string(outputData))
	}
}
