// Command swparse parses a saved Southwest results page from a file or
// stdin and prints the extracted candidates as JSON. Useful for
// checking what the importer would do with a page without touching the
// database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"flightlog/internal/scrape"
)

func main() {
	input := flag.String("input", "", "page text file (default: stdin)")
	airline := flag.String("airline", "Southwest", "airline name stamped on candidates")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	flag.Parse()

	var (
		data []byte
		err  error
	)
	if *input != "" {
		data, err = os.ReadFile(*input)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	parser, err := scrape.New(scrape.WithAirline(*airline))
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile layouts: %v\n", err)
		os.Exit(1)
	}

	result, err := parser.Parse(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}
