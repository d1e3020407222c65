// Command ecengine is a thin CLI front end over the dispatch package: it
// reads one hex-encoded input blob and writes the hex-encoded result,
// exercising the same Dispatch entry point a host embedding this module
// as a library would call directly.
//
// Usage:
//
//	ecengine [-in file] [-out file]
//
// With no -in flag the blob is read as a single hex line from stdin.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ecengine/ecengine/dispatch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code. Accepts the CLI
// arguments and the three standard streams so it can be tested in
// isolation, following the cmd/eth2030 run(args []string) int shape.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ecengine", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "path to a file containing the hex-encoded input blob (default: read one line from stdin)")
	outPath := fs.String("out", "", "path to write the hex-encoded output to (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	raw, err := readHexInput(*inPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "ecengine: %v\n", err)
		return 1
	}

	out, err := dispatch.Dispatch(raw)
	if err != nil {
		fmt.Fprintf(stderr, "ecengine: %v\n", err)
		return 1
	}

	encoded := hex.EncodeToString(out) + "\n"
	if *outPath == "" {
		fmt.Fprint(stdout, encoded)
		return 0
	}
	if err := os.WriteFile(*outPath, []byte(encoded), 0o644); err != nil {
		fmt.Fprintf(stderr, "ecengine: writing output: %v\n", err)
		return 1
	}
	return 0
}

func readHexInput(path string, stdin io.Reader) ([]byte, error) {
	var text string
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		text = string(b)
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		text = string(b)
	}
	text = strings.TrimSpace(text)
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decoding hex input: %w", err)
	}
	return decoded, nil
}
