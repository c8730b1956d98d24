package admin

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Database describes a database host registered for context data. MasterID
// points at the master of a replication cluster.
type Database struct {
	ID            optional.Field[int]    `json:"id,omitzero"`
	URL           optional.Field[string] `json:"url,omitzero"`
	Login         optional.Field[string] `json:"login,omitzero"`
	Password      optional.Field[string] `json:"password,omitzero"`
	Name          optional.Field[string] `json:"name,omitzero"`
	Driver        optional.Field[string] `json:"driver,omitzero"`
	Scheme        optional.Field[string] `json:"scheme,omitzero"`
	ClusterWeight optional.Field[int]    `json:"clusterWeight,omitzero"`
	MaxUnits      optional.Field[int]    `json:"maxUnits,omitzero"`
	PoolHardLimit optional.Field[int]    `json:"poolHardLimit,omitzero"`
	PoolInitial   optional.Field[int]    `json:"poolInitial,omitzero"`
	PoolMax       optional.Field[int]    `json:"poolMax,omitzero"`
	MasterID      optional.Field[int]    `json:"masterId,omitzero"`
	Master        optional.Field[bool]   `json:"master,omitzero"`
	ReadID        optional.Field[int]    `json:"readId,omitzero"`
	CurrentUnits  optional.Field[int]    `json:"currentUnits,omitzero"`

	Extensions Extensions `json:"-"`
}

func (d *Database) MandatoryMembers(op Operation) []string {
	switch op {
	case OpRegister:
		return []string{"driver", "url", "login", "password", "name"}
	case OpChange, OpDelete:
		return []string{"id"}
	}
	return nil
}

func (d *Database) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(d.ID), true
	case "url":
		return filled(d.URL), true
	case "login":
		return filled(d.Login), true
	case "password":
		return filled(d.Password), true
	case "name":
		return filled(d.Name), true
	case "driver":
		return filled(d.Driver), true
	case "scheme":
		return filled(d.Scheme), true
	case "masterId":
		return filled(d.MasterID), true
	}
	return false, false
}

// DSN builds a driver connection string from URL, credentials and scheme.
//
// Postgres URLs get the login and password as userinfo and the scheme as path
// when the URL carries none. Any other driver gets the URL unchanged.
func (d *Database) DSN() (string, error) {
	raw, ok := d.URL.Get()
	if !ok || raw == "" {
		return "", fmt.Errorf("database url not set")
	}
	switch strings.ToLower(d.Driver.Value()) {
	case "postgres", "postgresql", "pgx":
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		if login, ok := d.Login.Get(); ok && u.User == nil {
			if pw, ok := d.Password.Get(); ok {
				u.User = url.UserPassword(login, pw)
			} else {
				u.User = url.User(login)
			}
		}
		if scheme, ok := d.Scheme.Get(); ok && strings.Trim(u.Path, "/") == "" {
			u.Path = "/" + scheme
		}
		return u.String(), nil
	default:
		return raw, nil
	}
}

func (d *Database) Equal(o *Database) bool {
	if d == nil || o == nil {
		return d == o
	}
	return optional.Equal(d.ID, o.ID) &&
		optional.Equal(d.URL, o.URL) &&
		optional.Equal(d.Login, o.Login) &&
		optional.Equal(d.Password, o.Password) &&
		optional.Equal(d.Name, o.Name) &&
		optional.Equal(d.Driver, o.Driver) &&
		optional.Equal(d.Scheme, o.Scheme) &&
		optional.Equal(d.ClusterWeight, o.ClusterWeight) &&
		optional.Equal(d.MaxUnits, o.MaxUnits) &&
		optional.Equal(d.PoolHardLimit, o.PoolHardLimit) &&
		optional.Equal(d.PoolInitial, o.PoolInitial) &&
		optional.Equal(d.PoolMax, o.PoolMax) &&
		optional.Equal(d.MasterID, o.MasterID) &&
		optional.Equal(d.Master, o.Master) &&
		optional.Equal(d.ReadID, o.ReadID) &&
		optional.Equal(d.CurrentUnits, o.CurrentUnits)
}

func (d *Database) String() string {
	if d == nil {
		return "<nil>"
	}
	w := newDumper("Database")
	dump(w, "id", d.ID)
	dump(w, "url", d.URL)
	dump(w, "login", d.Login)
	w.secret("password", d.Password)
	dump(w, "name", d.Name)
	dump(w, "driver", d.Driver)
	dump(w, "scheme", d.Scheme)
	dump(w, "clusterWeight", d.ClusterWeight)
	dump(w, "maxUnits", d.MaxUnits)
	dump(w, "poolHardLimit", d.PoolHardLimit)
	dump(w, "poolInitial", d.PoolInitial)
	dump(w, "poolMax", d.PoolMax)
	dump(w, "masterId", d.MasterID)
	dump(w, "master", d.Master)
	dump(w, "readId", d.ReadID)
	dump(w, "currentUnits", d.CurrentUnits)
	return w.String()
}
