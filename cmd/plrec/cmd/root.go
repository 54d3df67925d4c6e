package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fzipp/pl0-recognizer/config"
)

// ErrRejected is returned when an input has syntax or lexical errors. The
// errors themselves have been printed already.
var ErrRejected = errors.New("input rejected")

type rootOptions struct {
	cfgFile  string
	strict   bool
	maxDepth int
	format   string
	color    bool
	lang     string
	verbose  bool
}

// NewRootCmd builds the plrec command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "plrec",
		Short: "Syntax recognizer for PL/0 and MiniScala",
		Long: `Checks whether programs are syntactically well formed. No syntax tree
is built. Each syntax error is printed with its position, and every input
ends with PARSE SUCCESSFUL or PARSE FAILED.

Languages:
  pl0        PL/0 after N. Wirth (*.pl0)
  miniscala  object-style MiniScala (*.scala)

Token files (*.tok) written by "plrec tokens -o" are accepted wherever a
source file is.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file, .toml or .yaml (default $PLREC_CONFIG)")
	pf.BoolVar(&opts.strict, "strict", false, "stop at the first syntax error")
	pf.IntVar(&opts.maxDepth, "max-depth", 0, "maximum rule nesting (default 512)")
	pf.StringVar(&opts.format, "format", "text", "output format: text or yaml")
	pf.BoolVar(&opts.color, "color", false, "color the text output")
	pf.StringVar(&opts.lang, "lang", "", "language of inputs without a known extension: pl0 or miniscala")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug records to stderr")

	root.AddCommand(
		newRecognizeCmd(opts, langCommand{
			use:   "pl0 <file>...",
			short: "Recognize PL/0 programs",
			long: `Recognizes each file as a PL/0 program:

  program = block "." .

Examples:
  plrec pl0 square.pl0
  plrec pl0 --strict *.pl0`,
			lang: pl0,
		}),
		newRecognizeCmd(opts, langCommand{
			use:   "object <file>...",
			short: "Recognize MiniScala compilation units",
			long: `Recognizes each file as a MiniScala compilation unit:

  CompilationUnit = object ident "{" {Def} MainDef "}" .

Examples:
  plrec object Lists.scala
  plrec object --format yaml Sum.scala`,
			lang: miniScala,
		}),
		newRecognizeCmd(opts, langCommand{
			use:   "check <file>...",
			short: "Recognize files by extension",
			long: `Recognizes each file in the language its extension names
(.pl0 or .scala). Other files use --lang or the lang key of the
[recognizer] config section. Token files carry their language.

Examples:
  plrec check a.pl0 B.scala
  plrec check --lang pl0 prog.txt`,
		}),
		newTokensCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs plrec with the process arguments.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, ErrRejected) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// load reads the config file, if any, and lets changed flags override it.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	path := o.cfgFile
	if path == "" {
		path = os.Getenv("PLREC_CONFIG")
	}
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Recognizer.Strict = o.strict
	}
	if flags.Changed("max-depth") {
		cfg.Recognizer.MaxDepth = o.maxDepth
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("color") {
		cfg.Output.Color = o.color
	}
	if flags.Changed("lang") {
		cfg.Recognizer.Lang = o.lang
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, "plrec:", err)
}
