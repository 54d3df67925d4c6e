package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fzipp/pl0-recognizer/diag"
	"github.com/fzipp/pl0-recognizer/files"
	"github.com/fzipp/pl0-recognizer/pls"
)

func newTokensCmd(opts *rootOptions) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a source file or write a token file",
		Long: `Scans a source file and lists one token per line as
"line:col (class, lexeme)". With -o the tokens are written to a binary
token file instead, which the other commands accept in place of the
source.

Examples:
  plrec tokens square.pl0
  plrec tokens -o square.tok square.pl0
  plrec pl0 square.tok`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			path := args[0]
			lang, err := sourceLang(path, anyLang, cfg)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
			var list diag.List
			s := pls.NewScanner(f, lang, list.Report)
			if outFile != "" {
				n, err := writeTokenFile(outFile, s)
				if err != nil {
					return err
				}
				logger.Info("token file written", "file", outFile, "lang", lang.String(), "tokens", n)
			} else {
				w := cmd.OutOrStdout()
				for tok := s.Advance(); tok.Sym != pls.SymEOF; tok = s.Advance() {
					if _, err := fmt.Fprintf(w, "%-7v %v\n", tok.Pos, tok); err != nil {
						return err
					}
				}
			}

			if list.Len() > 0 {
				printer := diag.NewPrinter(cmd.ErrOrStderr(), cfg.Output.Color)
				for _, d := range list {
					printer.Report(d.Pos, d.Msg)
				}
				return ErrRejected
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write a token file instead of listing")
	return cmd
}

func writeTokenFile(path string, s *pls.Scanner) (n int, err error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	tw, err := files.NewTokenWriter(out, s.Lang())
	if err != nil {
		return 0, err
	}
	return tw.WriteAll(s)
}
