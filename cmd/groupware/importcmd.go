package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/ajax/writer"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/internal/importer"
)

func runImport(a *app, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	folder := fs.Int("folder", -1, "Target folder id (required)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 || *folder < 0 {
		return errUsage
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	im := importer.New(a.logger)
	var results []*groupware.ImportResult
	switch kind := kindOf("", fs.Arg(0)); kind {
	case "ics", "ical":
		out, err := im.ICal(f, *folder, a.loc)
		if err != nil {
			return err
		}
		results = out.Results
	case "vcf", "vcard":
		out, err := im.VCard(f, *folder)
		if err != nil {
			return err
		}
		results = out.Results
	default:
		return fmt.Errorf("cannot import %q files", kind)
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	a.logger.Info().Int("imported", len(results)-failed).Int("failed", failed).Msg("import finished")

	w := writer.NewImportExportWriter(a.env())
	return a.emit(func(jw *jsonw.Writer) error {
		return w.WriteResults(jw, results)
	})
}
