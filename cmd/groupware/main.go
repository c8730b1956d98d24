package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/ajax/writer"
	"github.com/sonroyaalmerol/groupware/internal/config"
	"github.com/sonroyaalmerol/groupware/internal/logging"
)

var errUsage = errors.New("usage")

type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	loc    *time.Location
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	usage string
	run   func(a *app, args []string) error
}

var commands = map[string]command{
	"convert":     {"convert [-kind ics|vcf|eml] [-columns 1,200] [-folder ID] [-from RFC3339 -until RFC3339] FILE", runConvert},
	"import":      {"import -folder ID FILE.ics|FILE.vcf", runImport},
	"check-db":    {"check-db FILE.json", runCheckDB},
	"ldap-users":  {"ldap-users", runLDAPUsers},
	"ldap-groups": {"ldap-groups", runLDAPGroups},
	"ldap-auth":   {"ldap-auth 'Basic BASE64'", runLDAPAuth},
	"perms":       {"perms FP RP WP DP ADMIN | perms -parse BITS", runPerms},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logger := logging.NewWriter(stderr, cfg.LogLevel)
	logger = logger.With().Str("command", args[0]).Logger()

	a := &app{cfg: cfg, logger: logger, loc: loc, stdout: stdout, stderr: stderr}
	if err := cmd.run(a, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: groupware %s\n", cmd.usage)
			return 2
		}
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage:")
	for _, name := range names {
		fmt.Fprintf(w, "  groupware %s\n", commands[name].usage)
	}
}

func (a *app) env() *writer.Env {
	return writer.NewEnv(a.loc, a.logger, writer.Options{
		SkipUnknown:    a.cfg.AJAX.SkipUnknownColumns,
		ImageURLPrefix: a.cfg.AJAX.ImageURLPrefix,
	})
}

// emit runs write against a JSON writer on stdout and ends the document
// with a newline.
func (a *app) emit(write func(jw *jsonw.Writer) error) error {
	jw := jsonw.New(a.stdout)
	if err := write(jw); err != nil {
		return err
	}
	if err := jw.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(a.stdout, "\n")
	return err
}
