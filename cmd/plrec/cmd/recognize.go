package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fzipp/pl0-recognizer/config"
	"github.com/fzipp/pl0-recognizer/diag"
	"github.com/fzipp/pl0-recognizer/files"
	"github.com/fzipp/pl0-recognizer/plp"
	"github.com/fzipp/pl0-recognizer/pls"
)

const (
	anyLang   = pls.Lang(0)
	pl0       = pls.PL0
	miniScala = pls.MiniScala
)

type langCommand struct {
	use, short, long string
	lang             pls.Lang
}

func newRecognizeCmd(opts *rootOptions, lc langCommand) *cobra.Command {
	return &cobra.Command{
		Use:   lc.use,
		Short: lc.short,
		Long:  lc.long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return recognizeFiles(cmd, cfg, lc.lang, args)
		},
	}
}

func recognizeFiles(cmd *cobra.Command, cfg *config.Config, lang pls.Lang, paths []string) error {
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	var reports []*diag.Report
	printer := diag.NewPrinter(out, cfg.Output.Color)
	rejected := 0
	for _, path := range paths {
		r, err := recognizeFile(path, lang, cfg, logger)
		if err != nil {
			return err
		}
		if !r.Accepted {
			rejected++
		}
		if cfg.Output.Format == "yaml" {
			reports = append(reports, r)
			continue
		}
		if len(paths) > 1 {
			printer.Heading(r.File, r.Lang)
		}
		for _, d := range r.Diagnostics {
			printer.Report(d.Pos, d.Msg)
		}
		printer.Verdict(r.Accepted)
		printer.Reset()
	}
	if cfg.Output.Format == "yaml" {
		if err := diag.WriteYAML(out, reports...); err != nil {
			return err
		}
	} else if err := printer.Err(); err != nil {
		return err
	}

	logger.Info("recognition done", "files", len(paths), "rejected", rejected)
	if rejected > 0 {
		return ErrRejected
	}
	return nil
}

func isTokenFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tok")
}

// sourceLang picks the language of a source file: the command's own
// language, else the extension, else the configured one.
func sourceLang(path string, lang pls.Lang, cfg *config.Config) (pls.Lang, error) {
	if lang != anyLang {
		return lang, nil
	}
	if l, ok := pls.LangForFile(path); ok {
		return l, nil
	}
	if l := cfg.Lang(); l != anyLang {
		return l, nil
	}
	return anyLang, fmt.Errorf("%s: cannot tell the language; use pl0, object or --lang", path)
}

func recognizeFile(path string, lang pls.Lang, cfg *config.Config, logger *slog.Logger) (*diag.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list diag.List
	var src plp.TokenSource
	var tr *files.TokenReader
	if isTokenFile(path) {
		tr, err = files.NewTokenReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if lang != anyLang && lang != tr.Lang() {
			return nil, fmt.Errorf("%s: token file holds %v, not %v", path, tr.Lang(), lang)
		}
		lang = tr.Lang()
		src = tr
	} else {
		lang, err = sourceLang(path, lang, cfg)
		if err != nil {
			return nil, err
		}
		src = pls.NewScanner(f, lang, list.Report)
	}

	flog := logger.With("file", path, "lang", lang.String())
	flog.Info("recognizing")
	ok, err := plp.Recognize(lang, src, &list, plp.Options{
		MaxDepth: cfg.Recognizer.MaxDepth,
		Strict:   cfg.Recognizer.Strict,
		Logger:   flog,
	})
	if err != nil {
		return nil, err
	}
	if tr != nil && tr.Err() != nil {
		return nil, fmt.Errorf("%s: %w", path, tr.Err())
	}
	flog.Debug("recognized", "syntax_ok", ok, "diagnostics", list.Len())
	return diag.NewReport(path, lang, list), nil
}
