// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schematree

// schematree renders documentation trees from JSON Schema documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/schematree"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schematree"
	_buildTime string
)

// supportedDrafts lists $schema values the renderer keyword table is written for.
var supportedDrafts = map[string]struct{}{
	"http://json-schema.org/draft-04/schema":  {},
	"https://json-schema.org/draft-04/schema": {},
	"http://json-schema.org/schema":           {},
}

// cliOptions describes schematree CLI flags and subcommands.
type cliOptions struct {
	Version versionCommand `command:"version" description:"Print version information"`
	Render  renderCommand  `command:"render" description:"Render JSON Schema to markdown"`
	Pointer pointerCommand `command:"pointer" description:"Print value addressed by JSON pointer"`
}

// transformFlags groups document transform flags.
type transformFlags struct {
	LiftTitle       bool     `long:"lift-title" description:"Render schema titles as headings"`
	LiftDescription bool     `long:"lift-description" description:"Render schema descriptions as leading paragraphs"`
	LiftDefinitions bool     `long:"lift-definitions" description:"Move definitions into sections after the root"`
	AutoTarget      bool     `long:"auto-target" description:"Declare every definition as a link target"`
	AutoReference   bool     `long:"auto-reference" description:"Link repeated references to a single expansion"`
	HideKey         []string `long:"hide-key" description:"Pointer pattern to hide; repeatable or comma separated"`
	HideKeyIfEmpty  []string `long:"hide-key-if-empty" description:"Pointer pattern to hide when its value is empty"`
	PassUnmodified  []string `long:"pass-unmodified" description:"Pointer pattern shown verbatim, or \"all\""`
}

// sourceFlags groups schema loading flags.
type sourceFlags struct {
	Config        string        `short:"c" long:"config" description:"TOML file with a [jsonschema] options table"`
	Encoding      string        `short:"e" long:"encoding" description:"Schema file encoding (default utf-8)"`
	Timeout       time.Duration `long:"timeout" description:"Schema download timeout (default 30s)"`
	MaxDepth      int           `long:"max-depth" description:"Maximum schema nesting depth (default 100)"`
	TargetPrefix  string        `long:"target-prefix" description:"Prefix for generated link targets"`
	LiteralFormat string        `long:"literal-format" description:"Notation of default and example blocks" choice:"json" choice:"yaml"`
	Verbose       bool          `short:"v" long:"verbose" description:"Log debug diagnostics to stderr"`
}

// markdownFlags groups markdown output flags.
type markdownFlags struct {
	Title      string `short:"T" long:"title" description:"Document title when the schema has none (default from file name)"`
	ListMarker string `short:"l" long:"list-marker" description:"Unordered list marker" choice:"-" choice:"*" default:"*"`
	WrapWidth  int    `short:"w" long:"wrap" description:"Wrap width for descriptions; negative disables wrapping" default:"80"`
}

// renderCommand converts schema to markdown.
type renderCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Schema file or URL with optional #pointer (stdin when omitted or -)"`
		Output string `positional-arg-name:"output" description:"Output markdown file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Pointer string `short:"p" long:"pointer" description:"JSON pointer of the subschema to render, appended to any #pointer of input"`

	Transform transformFlags `group:"Transforms"`
	Source    sourceFlags    `group:"Source"`
	Markdown  markdownFlags  `group:"Markdown"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(command)
}

// pointerCommand prints one addressed value.
type pointerCommand struct {
	runner *cliRunner
	Args   struct {
		Input   string `positional-arg-name:"input" description:"Schema file or URL (stdin when -)" required:"yes"`
		Pointer string `positional-arg-name:"pointer" description:"JSON pointer, for example /definitions/Item"`
	} `positional-args:"yes"`

	Format   string `short:"f" long:"format" description:"Output notation" choice:"json" choice:"yaml" default:"json"`
	Encoding string `short:"e" long:"encoding" description:"Schema file encoding (default utf-8)"`
}

// Execute runs pointer subcommand.
func (command *pointerCommand) Execute(_ []string) error {
	return command.runner.runPointer(command)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schematree"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	if errors.Is(err, schematree.ErrInvalidFlag) {
		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runRender loads schema, renders markdown and writes it to stdout or file.
func (runner *cliRunner) runRender(command *renderCommand) error {
	opt, err := runner.renderOptions(command)
	if err != nil {
		return err
	}

	src, err := runner.loadInput(command.Args.Input, opt)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	if src.Pointer, err = appendPointer(src, command.Pointer); err != nil {
		return fmt.Errorf("--pointer: %w", err)
	}

	runner.checkDraft(src.Root)

	opt.Document = src.Document
	if opt.Resolver == nil {
		opt.Resolver = schematree.NewFileResolver(opt)
	}

	root, err := schematree.RenderAt(src.Root, src.Pointer, opt)
	if err != nil {
		return fmt.Errorf("render schema: %w", err)
	}

	title := command.Markdown.Title
	if strings.TrimSpace(title) == "" && src.Document != "" {
		title = schematree.DefaultTitle(src.Document)
	}

	rendered := schematree.Markdown(root, schematree.MarkdownOptions{
		Title:      title,
		WrapWidth:  command.Markdown.WrapWidth,
		ListMarker: command.Markdown.ListMarker,
	})

	return runner.writeOutput(command.Args.Output, rendered, "markdown")
}

// renderOptions merges config file options with command line flags.
func (runner *cliRunner) renderOptions(command *renderCommand) (schematree.Options, error) {
	opt := schematree.Options{}
	if path := strings.TrimSpace(command.Source.Config); path != "" {
		loaded, err := schematree.LoadConfig(path)
		if err != nil {
			return schematree.Options{}, err
		}

		opt = loaded
	}

	tf := command.Transform
	overrides := schematree.Overrides{
		LiftTitle:       flagOverride(tf.LiftTitle),
		LiftDescription: flagOverride(tf.LiftDescription),
		LiftDefinitions: flagOverride(tf.LiftDefinitions),
		AutoTarget:      flagOverride(tf.AutoTarget),
		AutoReference:   flagOverride(tf.AutoReference),
	}

	var err error
	if overrides.HideKey, err = splitKeyLists(tf.HideKey); err != nil {
		return schematree.Options{}, fmt.Errorf("--hide-key: %w", err)
	}

	if overrides.HideKeyIfEmpty, err = splitKeyLists(tf.HideKeyIfEmpty); err != nil {
		return schematree.Options{}, fmt.Errorf("--hide-key-if-empty: %w", err)
	}

	if overrides.PassUnmodified, err = splitKeyLists(tf.PassUnmodified); err != nil {
		return schematree.Options{}, fmt.Errorf("--pass-unmodified: %w", err)
	}

	src := command.Source
	if src.Encoding != "" {
		overrides.Encoding = &src.Encoding
	}

	if src.Timeout != 0 {
		overrides.Timeout = &src.Timeout
	}

	opt = opt.Apply(overrides)
	if src.MaxDepth > 0 {
		opt.MaxDepth = src.MaxDepth
	}

	if src.TargetPrefix != "" {
		opt.TargetPrefix = src.TargetPrefix
	}

	if src.LiteralFormat != "" {
		format, err := schematree.ParseLiteralFormat(src.LiteralFormat)
		if err != nil {
			return schematree.Options{}, err
		}

		opt.LiteralFormat = format
	}

	level := slog.LevelWarn
	if src.Verbose {
		level = slog.LevelDebug
	}

	opt.Logger = schematree.NewSlogAdapter(slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: level})))
	return opt, nil
}

// runPointer prints value addressed by pointer as JSON or YAML.
func (runner *cliRunner) runPointer(command *pointerCommand) error {
	src, err := runner.loadInput(command.Args.Input, schematree.Options{Encoding: command.Encoding})
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	pointer, err := appendPointer(src, command.Args.Pointer)
	if err != nil {
		return err
	}

	value, err := schematree.Resolve(src.Root, pointer)
	if err != nil {
		return err
	}

	text := value.JSON("  ")
	if command.Format == "yaml" {
		if text, err = value.YAML(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}

	return runner.writeOutput("", text+"\n", "value")
}

// loadInput reads schema from file, URL or stdin.
func (runner *cliRunner) loadInput(input string, opt schematree.Options) (schematree.Source, error) {
	input = strings.TrimSpace(input)
	location, fragment := schematree.SplitSourceRef(input)
	if location != "" && location != "-" {
		return schematree.LoadSource(context.Background(), input, opt)
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return schematree.Source{}, fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return schematree.Source{}, errors.New("read schema from stdin: empty input")
	}

	root, err := schematree.ParseEncoded(data, opt.Encoding)
	if err != nil {
		return schematree.Source{}, err
	}

	pointer, err := schematree.ParseFragment(fragment)
	if err != nil {
		return schematree.Source{}, err
	}

	if _, err := schematree.Resolve(root, pointer); err != nil {
		return schematree.Source{}, err
	}

	return schematree.Source{Root: root, Pointer: pointer}, nil
}

// appendPointer extends source pointer with pointer text and checks that the result resolves.
func appendPointer(src schematree.Source, text string) (schematree.Pointer, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "#")
	if text == "" {
		return src.Pointer, nil
	}

	extra, err := schematree.ParsePointer(text)
	if err != nil {
		return nil, err
	}

	pointer := src.Pointer.Append(extra...)
	if _, err := schematree.Resolve(src.Root, pointer); err != nil {
		return nil, err
	}

	return pointer, nil
}

// checkDraft warns when $schema is missing or names an unsupported draft.
func (runner *cliRunner) checkDraft(root schematree.Value) {
	warn := color.New(color.FgYellow)

	value, ok := root.Get("$schema")
	if !ok {
		_, _ = warn.Fprintln(runner.stderr, "warning: schema has no $schema value; draft support is unknown")
		return
	}

	uri, _ := value.Str()
	if _, ok := supportedDrafts[strings.TrimSuffix(strings.TrimSpace(uri), "#")]; !ok {
		_, _ = warn.Fprintf(runner.stderr, "warning: unsupported $schema value %q\n", uri)
	}
}

// writeOutput writes text to stdout or file.
func (runner *cliRunner) writeOutput(outputPath, text, what string) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := io.WriteString(runner.stdout, text); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(text), 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, outputPath, err)
	}

	return nil
}

// flagOverride maps a set switch to an override; unset switches keep config values.
func flagOverride(set bool) *bool {
	if !set {
		return nil
	}

	return &set
}

// splitKeyLists flattens repeated CSV key list flags.
func splitKeyLists(values []string) ([]string, error) {
	var out []string
	for _, value := range values {
		keys, err := schematree.SplitKeyList(value)
		if err != nil {
			return nil, err
		}

		out = append(out, keys...)
	}

	return out, nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Render.runner = runner
	options.Pointer.runner = runner
	options.Version.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	return err
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"render": strings.TrimSpace(fmt.Sprintf(`
Render JSON Schema (JSON or YAML) to markdown.
Append #pointer to the input or pass --pointer to render one subschema.
Reads schema from file, URL or stdin (input omitted or -); writes markdown
to file argument or stdout. A stdin input with #pointer must follow --.

Examples:
> $ %s render schema.json > schema.md
> $ %s render --lift-title --auto-reference 'schema.json#/definitions/Config' config.md
> $ cat schema.yaml | %s render --hide-key '/properties/*/examples' > schema.md
> $ cat schema.json | %s render --pointer /definitions/Config > config.md
> $ cat schema.json | %s render -- '-#/definitions/Config' > config.md
`, programName, programName, programName, programName, programName)),
		"pointer": strings.TrimSpace(fmt.Sprintf(`
Print the value addressed by a JSON pointer (RFC 6901).

Examples:
> $ %s pointer schema.json /definitions/Item
> $ %s pointer -f yaml schema.json '/properties/a~1b'
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
