package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/ajax/writer"
	"github.com/sonroyaalmerol/groupware/internal/importer"
	"github.com/sonroyaalmerol/groupware/internal/recurrence"
)

func kindOf(kind, path string) string {
	if kind != "" {
		return strings.ToLower(kind)
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func runConvert(a *app, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		kind    string
		columns string
		folder  int
		from    string
		until   string
	)
	fs.StringVar(&kind, "kind", "", "Input kind: ics, vcf or eml (default from file extension)")
	fs.StringVar(&columns, "columns", "", "Comma-separated column ids; writes arrays instead of objects")
	fs.IntVar(&folder, "folder", 0, "Folder id assigned to imported objects")
	fs.StringVar(&from, "from", "", "Expand series from this RFC 3339 time")
	fs.StringVar(&until, "until", "", "Expand series until this RFC 3339 time")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	var cols []int
	if columns != "" {
		var err error
		if cols, err = fields.ParseColumns(columns); err != nil {
			return err
		}
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	im := importer.New(a.logger)
	env := a.env()
	switch kindOf(kind, fs.Arg(0)) {
	case "ics", "ical", "ifb":
		rng, err := parseRange(from, until)
		if err != nil {
			return err
		}
		return a.convertICal(im, env, f, folder, cols, rng)
	case "vcf", "vcard":
		out, err := im.VCard(f, folder)
		if err != nil {
			return err
		}
		w := writer.NewContactWriter(env)
		return a.emit(func(jw *jsonw.Writer) error {
			if cols != nil {
				return w.WriteList(jw, out.Contacts, cols)
			}
			return w.WriteObjects(jw, out.Contacts)
		})
	case "eml", "msg", "mail":
		m, err := im.Mail(f)
		if err != nil {
			return err
		}
		w := writer.NewMailWriter(env)
		return a.emit(func(jw *jsonw.Writer) error {
			if cols != nil {
				return w.WriteArray(jw, m, cols)
			}
			return w.WriteObject(jw, m)
		})
	}
	return fmt.Errorf("unknown input kind %q", kindOf(kind, fs.Arg(0)))
}

type timeRange struct {
	from, until time.Time
}

func parseRange(from, until string) (*timeRange, error) {
	if from == "" && until == "" {
		return nil, nil
	}
	if from == "" || until == "" {
		return nil, fmt.Errorf("-from and -until must be given together")
	}
	var r timeRange
	var err error
	if r.from, err = time.Parse(time.RFC3339, from); err != nil {
		return nil, fmt.Errorf("-from: %w", err)
	}
	if r.until, err = time.Parse(time.RFC3339, until); err != nil {
		return nil, fmt.Errorf("-until: %w", err)
	}
	if !r.until.After(r.from) {
		return nil, fmt.Errorf("-until must be after -from")
	}
	return &r, nil
}

func (a *app) convertICal(im *importer.Importer, env *writer.Env, r io.Reader, folder int, cols []int, rng *timeRange) error {
	out, err := im.ICal(r, folder, a.loc)
	if err != nil {
		return err
	}
	for _, res := range out.Results {
		if res.Failed() {
			a.logger.Warn().Err(res.Err).Int("position", res.Line()).Msg("component not converted")
		}
	}
	appts := out.Appointments
	if rng != nil {
		appts = recurrence.NewExpander(a.loc, a.logger).ExpandAll(appts, rng.from, rng.until)
	}

	aw := writer.NewAppointmentWriter(env)
	tw := writer.NewTaskWriter(env)
	return a.emit(func(jw *jsonw.Writer) error {
		var err error
		if err = jw.Object(); err != nil {
			return err
		}
		if err = jw.Key("appointments"); err != nil {
			return err
		}
		if cols != nil {
			err = aw.WriteList(jw, appts, cols)
		} else {
			err = aw.WriteObjects(jw, appts)
		}
		if err != nil {
			return err
		}
		if err = jw.Key("tasks"); err != nil {
			return err
		}
		if cols != nil {
			err = tw.WriteList(jw, out.Tasks, cols)
		} else {
			err = tw.WriteObjects(jw, out.Tasks)
		}
		if err != nil {
			return err
		}
		return jw.EndObject()
	})
}
