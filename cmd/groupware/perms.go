package main

import (
	"strconv"

	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/ajax/writer"
)

func runPerms(a *app, args []string) error {
	if len(args) == 2 && args[0] == "-parse" {
		bits, err := strconv.Atoi(args[1])
		if err != nil {
			return errUsage
		}
		fp, rp, wp, dp, admin, err := writer.ParsePermissionBits(bits)
		if err != nil {
			return err
		}
		return a.emit(func(jw *jsonw.Writer) error {
			if err := jw.Object(); err != nil {
				return err
			}
			for _, f := range []struct {
				key string
				v   any
			}{{"folder", fp}, {"read", rp}, {"write", wp}, {"delete", dp}, {"admin", admin}} {
				if err := jw.Field(f.key, f.v); err != nil {
					return err
				}
			}
			return jw.EndObject()
		})
	}

	if len(args) != 5 {
		return errUsage
	}
	var levels [4]int
	for i := range levels {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return errUsage
		}
		levels[i] = n
	}
	admin, err := strconv.ParseBool(args[4])
	if err != nil {
		return errUsage
	}
	bits, err := writer.CreatePermissionBits(levels[0], levels[1], levels[2], levels[3], admin)
	if err != nil {
		return err
	}
	return a.emit(func(jw *jsonw.Writer) error { return jw.Value(bits) })
}
