package main

import (
	"context"

	"github.com/sonroyaalmerol/groupware/internal/admin"
	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/directory"
)

func runLDAPUsers(a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	dir, err := directory.NewLDAPClient(a.cfg.LDAP, a.logger)
	if err != nil {
		return err
	}
	defer dir.Close()

	users, err := dir.Users(context.Background())
	if err != nil {
		return err
	}
	return a.emit(func(jw *jsonw.Writer) error { return jw.Value(users) })
}

func runLDAPGroups(a *app, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	dir, err := directory.NewLDAPClient(a.cfg.LDAP, a.logger)
	if err != nil {
		return err
	}
	defer dir.Close()

	groups, err := dir.Groups(context.Background())
	if err != nil {
		return err
	}
	return a.emit(func(jw *jsonw.Writer) error { return jw.Value(groups) })
}

// runLDAPAuth checks the credentials of an HTTP Basic authorization value.
func runLDAPAuth(a *app, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	creds, err := admin.ParseBasicAuth(args[0])
	if err != nil {
		return err
	}
	dir, err := directory.NewLDAPClient(a.cfg.LDAP, a.logger)
	if err != nil {
		return err
	}
	defer dir.Close()

	u, err := dir.Authenticate(context.Background(), creds)
	if err != nil {
		return err
	}
	a.logger.Info().Stringer("credentials", creds).Msg("authenticated")
	return a.emit(func(jw *jsonw.Writer) error { return jw.Value(u) })
}
