// mjrinfo is a CLI tool to inspect structured recording files.
//
// Usage:
//
//	mjrinfo -f recording.mjr
//	mjrinfo --file recording.mjr
//
// Exit codes:
//   - 0: File parsed cleanly
//   - 1: File is malformed or unreadable
//   - 2: Usage error (missing required flag)
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mediabridge/mjrec/internal/mjr"
)

var Version = "dev"

func main() {
	var file string
	var showVersion bool

	flag.StringVar(&file, "file", "", "path to a .mjr recording file")
	flag.StringVar(&file, "f", "", "path to a .mjr recording file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	if file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mjrinfo -f recording.mjr")
		os.Exit(2)
	}

	if err := run(file); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s:\n", file)
		fmt.Fprintf(os.Stderr, "  %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := mjr.NewReader(f)
	info, err := r.ReadInfo()
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))

	var frames, bytes int64
	var duration int64
	for {
		frame, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		frames++
		bytes += int64(len(frame.Payload))
		duration = frame.Elapsed.Milliseconds()
	}
	fmt.Printf("frames: %d\n", frames)
	fmt.Printf("payload bytes: %d\n", bytes)
	fmt.Printf("duration: %dms\n", duration)
	return nil
}
