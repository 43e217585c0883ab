package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/fastjson"
	"github.com/mcncl/fastjson/internal/config"
)

// CLI defines the command-line interface
var CLI struct {
	Input    string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output   string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Compact  bool   `help:"Emit compact JSON with no whitespace." short:"c"`
	Validate bool   `help:"Validate only; write nothing, exit non-zero on invalid input."`
	Config   string `help:"Path to a YAML config file." type:"path"`
	Debug    bool   `help:"Enable debug logging." short:"d"`
	Version  bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("fastjson"),
		kong.Description("Validate and reformat JSON documents"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("fastjson version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		// Codec errors already carry position context; surface them verbatim.
		fmt.Fprintf(os.Stderr, "fastjson: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	// Flags override file config
	if CLI.Compact {
		cfg.Output.Compact = true
	}
	if CLI.Validate {
		cfg.Output.ValidateOnly = true
	}
	if CLI.Debug {
		cfg.Dev.Debug = true
	}

	input, err := readInput()
	if err != nil {
		return err
	}
	if cfg.Dev.Debug {
		fmt.Fprintf(os.Stderr, "read %d bytes\n", len(input))
	}

	value, err := fastjson.Parse(input)
	if err != nil {
		return err
	}
	if cfg.Output.ValidateOnly {
		return nil
	}

	var out string
	if cfg.Output.Compact {
		out = fastjson.ToString(value)
	} else {
		out = fastjson.ToStringPretty(value)
	}
	if cfg.Output.TrailingNewline {
		out += "\n"
	}
	return writeOutput(out)
}

// readInput reads JSON from file or stdin
func readInput() ([]byte, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no input provided: specify a file with -i or pipe JSON data to stdin")
	}
	return data, nil
}

// writeOutput writes the result to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write to file %q: %w", CLI.Output, err)
		}
		return nil
	}
	_, err := io.WriteString(os.Stdout, out)
	return err
}
