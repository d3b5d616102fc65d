package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jpq/internal/document"
	"github.com/jacoelho/jpq/internal/exit"
	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/output"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "dev"

// Stdin is the file name that selects standard input.
const Stdin = "-"

var (
	ErrNoArguments   = errors.New("no arguments provided")
	ErrNoQuery       = errors.New("no query specified")
	ErrNegativeLimit = errors.New("limit must not be negative")
)

// Limits mirrors the evaluation caps of jsonpath.Options. Zero means unlimited.
type Limits struct {
	Strict            bool
	MaxNodes          int
	MaxDepth          int
	MaxRegexPattern   int
	MaxRegexInput     int
	RejectUnsafeRegex bool
}

// DefaultLimits returns the limits of jsonpath.DefaultOptions.
func DefaultLimits() Limits {
	opts := jsonpath.DefaultOptions()
	return Limits{
		Strict:            opts.ThrowOnError,
		MaxNodes:          opts.MaxNodesVisited,
		MaxDepth:          opts.MaxDepth,
		MaxRegexPattern:   opts.MaxRegexPatternLength,
		MaxRegexInput:     opts.MaxRegexInputLength,
		RejectUnsafeRegex: opts.RejectUnsafeRegex,
	}
}

// Config represents the complete configuration for the jpq tool.
type Config struct {
	Query string
	Files []string // empty reads stdin

	Input  document.Format
	Output output.Format
	Color  output.ColorMode

	Limits     Limits
	ConfigFile string
	Debug      bool
}

// Options returns the evaluation options described by the limits.
func (c *Config) Options() jsonpath.Options {
	opts := jsonpath.DefaultOptions()
	opts.ThrowOnError = c.Limits.Strict
	opts.MaxNodesVisited = c.Limits.MaxNodes
	opts.MaxDepth = c.Limits.MaxDepth
	opts.MaxRegexPatternLength = c.Limits.MaxRegexPattern
	opts.MaxRegexInputLength = c.Limits.MaxRegexInput
	opts.RejectUnsafeRegex = c.Limits.RejectUnsafeRegex
	return opts
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Query == "" {
		return ErrNoQuery
	}

	for name, v := range map[string]int{
		"max-nodes":         c.Limits.MaxNodes,
		"max-depth":         c.Limits.MaxDepth,
		"max-regex-pattern": c.Limits.MaxRegexPattern,
		"max-regex-input":   c.Limits.MaxRegexInput,
	} {
		if v < 0 {
			return fmt.Errorf("%s: %w, got %d", name, ErrNegativeLimit, v)
		}
	}

	for _, file := range c.Files {
		if file == Stdin {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	defaults := DefaultLimits()

	var (
		input             = fs.String("input", "auto", "Input format: json, yaml or auto")
		outputFormat      = fs.String("output", "json", "Output format: json, yaml, paths or values")
		colorMode         = fs.String("color", "auto", "Colour paths: auto, always or never")
		strict            = fs.Bool("strict", defaults.Strict, "Fail instead of truncating when a limit is reached")
		maxNodes          = fs.Int("max-nodes", defaults.MaxNodes, "Maximum nodes visited per document (0 for unlimited)")
		maxDepth          = fs.Int("max-depth", defaults.MaxDepth, "Maximum traversal depth (0 for unlimited)")
		maxRegexPattern   = fs.Int("max-regex-pattern", defaults.MaxRegexPattern, "Maximum regex pattern length in bytes (0 for unlimited)")
		maxRegexInput     = fs.Int("max-regex-input", defaults.MaxRegexInput, "Maximum regex input length in bytes (0 for unlimited)")
		rejectUnsafeRegex = fs.Bool("reject-unsafe-regex", defaults.RejectUnsafeRegex, "Refuse oversized or nested-repetition patterns")
		configFile        = fs.String("config", "", "Path to YAML file with limits")
		debug             = fs.Bool("debug", false, "Enable debug logging to stderr")
		version           = fs.Bool("version", false, "Show version information")
	)

	positional, err := parseInterleaved(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *version {
		return nil, exit.Success(fmt.Sprintf("jpq %s\n", Version))
	}

	if len(positional) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoQuery, Usage())
	}

	inputFormat, err := document.ParseFormat(*input)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}
	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}
	mode, err := output.ParseColorMode(*colorMode)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	// Limits precedence: defaults, then the limits file, then explicit flags
	limits := defaults
	if *configFile != "" {
		if err := loadLimitsFile(*configFile, &limits); err != nil {
			return nil, exit.Errorf("Error: failed to load config file: %v\n\n%s", err, Usage())
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			limits.Strict = *strict
		case "max-nodes":
			limits.MaxNodes = *maxNodes
		case "max-depth":
			limits.MaxDepth = *maxDepth
		case "max-regex-pattern":
			limits.MaxRegexPattern = *maxRegexPattern
		case "max-regex-input":
			limits.MaxRegexInput = *maxRegexInput
		case "reject-unsafe-regex":
			limits.RejectUnsafeRegex = *rejectUnsafeRegex
		}
	})

	config := &Config{
		Query:      positional[0],
		Files:      positional[1:],
		Input:      inputFormat,
		Output:     format,
		Color:      mode,
		Limits:     limits,
		ConfigFile: *configFile,
		Debug:      *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// parseInterleaved parses flags appearing before, between and after
// positional arguments. Everything after "--" is positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// limitsFile is the YAML shape of the config file. Absent keys keep their value.
type limitsFile struct {
	Strict            *bool `yaml:"strict"`
	MaxNodes          *int  `yaml:"max_nodes"`
	MaxDepth          *int  `yaml:"max_depth"`
	MaxRegexPattern   *int  `yaml:"max_regex_pattern"`
	MaxRegexInput     *int  `yaml:"max_regex_input"`
	RejectUnsafeRegex *bool `yaml:"reject_unsafe_regex"`
}

// loadLimitsFile overlays the limits found in filename onto limits.
// Unknown keys are rejected.
func loadLimitsFile(filename string, limits *Limits) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file limitsFile
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	overlay(&limits.Strict, file.Strict)
	overlay(&limits.MaxNodes, file.MaxNodes)
	overlay(&limits.MaxDepth, file.MaxDepth)
	overlay(&limits.MaxRegexPattern, file.MaxRegexPattern)
	overlay(&limits.MaxRegexInput, file.MaxRegexInput)
	overlay(&limits.RejectUnsafeRegex, file.RejectUnsafeRegex)
	return nil
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jpq - JSONPath (RFC 9535) query tool

Usage: jpq [options] <query> [file1] [file2] ...

Reads documents from the given files, or stdin when none (or "-") is given.
JSON streams and multi-document YAML evaluate each document in turn.

Options:
  --input FORMAT            Input format: json, yaml or auto (default: auto, by file extension)
  --output FORMAT           Output format: json, yaml, paths or values (default: json)
  --color MODE              Colour paths: auto, always or never (default: auto)
  --strict                  Fail instead of truncating when a limit is reached
  --max-nodes N             Maximum nodes visited per document (default: 1000000, 0 for unlimited)
  --max-depth N             Maximum traversal depth (default: 1000, 0 for unlimited)
  --max-regex-pattern N     Maximum regex pattern length in bytes (default: 1000, 0 for unlimited)
  --max-regex-input N       Maximum regex input length in bytes (default: 100000, 0 for unlimited)
  --reject-unsafe-regex     Refuse oversized or nested-repetition patterns (default: true)
  --config FILE             Path to YAML file with limits (flags take precedence)
  --debug                   Enable debug logging to stderr
  -h, --help                Show this help message
  --version                 Show version information

Exit codes:
  0  at least one node selected
  1  no node selected
  2  usage, query or input error
  3  evaluation truncated or stopped by a limit

Examples:
  jpq '$.store.book[*].author' store.json
  jpq '$..book[?@.price < 10].title' --output values store.json
  cat stream.jsonl | jpq '$.id' --output values
  jpq '$..*' --output paths --max-nodes 500 big.yaml`
}
