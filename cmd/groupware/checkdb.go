package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sonroyaalmerol/groupware/internal/admin"
	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/dbcheck"
)

func runCheckDB(a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	var db admin.Database
	if err := json.NewDecoder(f).Decode(&db); err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	a.logger.Debug().Stringer("database", &db).Msg("checking database")

	res, err := dbcheck.New(a.cfg.DBCheck.Timeout, a.logger).Check(context.Background(), &db)
	if err != nil {
		return err
	}
	return a.emit(func(jw *jsonw.Writer) error {
		if err := jw.Object(); err != nil {
			return err
		}
		if err := jw.Field("driver", res.Driver); err != nil {
			return err
		}
		if err := jw.Field("version", res.Version); err != nil {
			return err
		}
		if err := jw.Field("elapsed_ms", res.Elapsed.Milliseconds()); err != nil {
			return err
		}
		return jw.EndObject()
	})
}
