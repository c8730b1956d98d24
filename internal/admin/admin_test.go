package admin

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestSetFlagsFollowAssignment(t *testing.T) {
	c := &Context{}
	assert.False(t, c.Name.IsSet())
	assert.False(t, c.ReadDatabase.IsSet())

	c.Name.SetPtr(nil)
	assert.True(t, c.Name.IsSet())
	assert.Nil(t, c.Name.Ptr())

	db := &Database{}
	c.ReadDatabase.Set(db)
	assert.True(t, c.ReadDatabase.IsSet())
	assert.Same(t, db, c.ReadDatabase.Value())

	u := &User{}
	name := "oxadmin"
	u.Name.SetPtr(&name)
	assert.True(t, u.Name.IsSet(), "users record presence for non-nil values too")
	assert.Same(t, &name, u.Name.Ptr())

	p := &Publication{}
	p.URL.SetPtr(nil)
	assert.True(t, p.URL.IsSet())
}

type presence interface {
	IsSet() bool
	SetNull()
	Unset()
}

func TestEveryAttributeTracksPresence(t *testing.T) {
	entities := []any{
		&Context{}, &Database{}, &User{}, &Group{}, &Resource{}, &Server{},
		&Filestore{}, &MaintenanceReason{}, &Publication{}, &Quota{},
	}
	for _, e := range entities {
		typ := reflect.TypeOf(e).Elem()
		for i := range typ.NumField() {
			sf := typ.Field(i)
			if sf.Name == "Extensions" {
				continue
			}
			t.Run(typ.Name()+"."+sf.Name, func(t *testing.T) {
				obj := reflect.New(typ)
				f, ok := obj.Elem().Field(i).Addr().Interface().(presence)
				require.True(t, ok, "%s is not a tri-state field", sf.Name)
				assert.False(t, f.IsSet())

				set := obj.Elem().Field(i).Addr().MethodByName("Set")
				set.Call([]reflect.Value{reflect.Zero(set.Type().In(0))})
				assert.True(t, f.IsSet(), "zero value")

				f.Unset()
				assert.False(t, f.IsSet())

				f.SetNull()
				assert.True(t, f.IsSet(), "null")

				b, err := json.Marshal(obj.Interface())
				require.NoError(t, err)
				var keys map[string]json.RawMessage
				require.NoError(t, json.Unmarshal(b, &keys))
				key, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
				assert.Equal(t, map[string]json.RawMessage{key: json.RawMessage("null")}, keys)

				back := reflect.New(typ)
				require.NoError(t, json.Unmarshal(b, back.Interface()))
				assert.True(t, back.Elem().Field(i).Addr().Interface().(presence).IsSet())
				assert.Equal(t, 1, countSet(back.Elem()))
			})
		}
	}
}

func countSet(v reflect.Value) int {
	n := 0
	for i := range v.NumField() {
		if f, ok := v.Field(i).Addr().Interface().(presence); ok && f.IsSet() {
			n++
		}
	}
	return n
}

func TestLegacyAssign(t *testing.T) {
	u := &User{}
	mail := "a@example.com"
	LegacyAssign(&u.PrimaryEmail, &mail)
	assert.False(t, u.PrimaryEmail.IsSet())
	assert.Equal(t, mail, u.PrimaryEmail.Value())

	LegacyAssign(&u.PrimaryEmail, nil)
	assert.True(t, u.PrimaryEmail.IsSet())
}

func TestCheckMandatory(t *testing.T) {
	u := &User{}
	u.Name.Set("jdoe")
	u.DisplayName.Set("")
	u.Password.Set("secret")
	u.GivenName.SetNull()
	u.SurName.Set("Doe")
	u.PrimaryEmail.Set("jdoe@example.com")

	unset, err := CheckMandatory(u, OpCreate)
	require.NoError(t, err)
	assert.Equal(t, []string{"display_name", "given_name", "email1"}, unset)

	ok, err := MandatoryMembersSet(u, OpCreate)
	require.NoError(t, err)
	assert.False(t, ok)

	u.DisplayName.Set("John Doe")
	u.GivenName.Set("John")
	u.Email1.Set("jdoe@example.com")
	ok, err = MandatoryMembersSet(u, OpCreate)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MandatoryMembersSet(u, OpChange)
	require.NoError(t, err)
	assert.False(t, ok, "change needs the id")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		obj     Enforceable
		op      Operation
		missing []string
	}{
		{"context create has no requirements", &Context{}, OpCreate, nil},
		{"context delete", &Context{}, OpDelete, []string{"id"}},
		{"context delete with id", NewContext(7), OpDelete, nil},
		{"database register", &Database{}, OpRegister, []string{"driver", "url", "login", "password", "name"}},
		{"group create", &Group{}, OpCreate, []string{"name", "displayname"}},
		{"resource create", &Resource{}, OpCreate, []string{"name", "displayname", "email"}},
		{"server register", &Server{}, OpRegister, []string{"name"}},
		{"filestore register", &Filestore{}, OpRegister, []string{"url", "size", "maxContexts"}},
		{"maintenance reason create", &MaintenanceReason{}, OpCreate, []string{"text"}},
		{"maintenance reason create with text", NewMaintenanceReason("upgrade"), OpCreate, nil},
		{"publication delete", &Publication{}, OpDelete, []string{"id"}},
		{"quota change", &Quota{}, OpChange, []string{"module", "limit"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.obj, tc.op)
			if tc.missing == nil {
				require.NoError(t, err)
				return
			}
			var mm *MissingMembersError
			require.ErrorAs(t, err, &mm)
			assert.Equal(t, tc.missing, mm.Members)
			assert.Equal(t, tc.op, mm.Op)
			assert.ErrorIs(t, err, ErrMissingMembers)
		})
	}
}

type badEnforceable struct{ Server }

func (b *badEnforceable) MandatoryMembers(Operation) []string { return []string{"nope"} }

func TestCheckMandatoryUnknownMember(t *testing.T) {
	_, err := CheckMandatory(&badEnforceable{}, OpCreate)
	assert.ErrorIs(t, err, ErrInvalidData)
}

type tagExtension struct{ tag string }

func (t *tagExtension) ExtensionName() string { return "tag" }

func TestExtensions(t *testing.T) {
	u := NewUser(3)
	first := &tagExtension{tag: "a"}
	require.NoError(t, u.Extensions.Add(first))

	got, ok := u.Extensions.First("tag")
	require.True(t, ok)
	assert.Same(t, first, got)

	err := u.Extensions.Add(&tagExtension{tag: "b"})
	assert.ErrorIs(t, err, ErrDuplicateExtension)

	attrs := &AttributeExtension{Namespace: "ldap", Attributes: map[string]string{"dn": "uid=u3"}}
	require.NoError(t, u.Extensions.Add(attrs))
	assert.Equal(t, []string{"tag", "attributes/ldap"}, u.Extensions.Names())

	all := u.Extensions.All()
	delete(all, "tag")
	all["other"] = first
	assert.Equal(t, 2, u.Extensions.Len(), "the copy does not alias the registry")
	_, ok = u.Extensions.First("other")
	assert.False(t, ok)

	assert.True(t, u.Extensions.Remove("tag"))
	assert.False(t, u.Extensions.Remove("tag"))
	require.NoError(t, u.Extensions.Add(&tagExtension{tag: "c"}))
}

func TestJSONPartialUpdate(t *testing.T) {
	in := `{"id":12,"name":null,"maxQuota":1024,"readDatabase":{"id":3,"url":"postgres://db1/"}}`
	var c Context
	require.NoError(t, json.Unmarshal([]byte(in), &c))

	assert.Equal(t, 12, c.ID.Value())
	assert.True(t, c.Name.IsSet())
	assert.True(t, c.Name.IsNull())
	assert.False(t, c.Enabled.IsSet())
	assert.Equal(t, int64(1024), c.MaxQuota.Value())
	require.True(t, c.ReadDatabase.IsSet())
	assert.Equal(t, 3, c.ReadDatabase.Value().ID.Value())
	assert.False(t, c.WriteDatabase.IsSet())

	out, err := json.Marshal(&c)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestStringMasksPasswords(t *testing.T) {
	u := NewUser(5)
	u.Name.Set("jdoe")
	u.Password.Set("hunter2")
	u.Email2.SetNull()

	s := u.String()
	assert.Equal(t, "User{id=5 name=jdoe password=*** email2=<null>}", s)
	assert.NotContains(t, s, "hunter2")

	db := &Database{}
	db.Password.Set("pw")
	db.Name.Set("oxdb")
	assert.Equal(t, "Database{password=*** name=oxdb}", db.String())
}

func TestEqual(t *testing.T) {
	a := NewContext(1)
	a.LoginMappings.Set([]string{"example.com"})
	a.SetUserAttribute("config", "theme", "dark")
	rd := &Database{}
	rd.ID.Set(4)
	a.ReadDatabase.Set(rd)

	b := NewContext(1)
	b.LoginMappings.Set([]string{"example.com"})
	b.SetUserAttribute("config", "theme", "dark")
	rd2 := &Database{}
	rd2.ID.Set(4)
	b.ReadDatabase.Set(rd2)

	assert.True(t, a.Equal(b))

	b.SetUserAttribute("config", "theme", "light")
	assert.False(t, a.Equal(b))

	c := NewContext(1)
	c.Name.SetNull()
	assert.False(t, NewContext(1).Equal(c), "null differs from unset")
}

func TestContextLoginMappings(t *testing.T) {
	c := NewContext(1)
	c.AddLoginMapping("a.example")
	c.AddLoginMapping("b.example")
	c.AddLoginMapping("a.example")
	assert.Equal(t, []string{"a.example", "b.example"}, c.LoginMappings.Value())
	assert.True(t, c.RemoveLoginMapping("a.example"))
	assert.False(t, c.RemoveLoginMapping("x.example"))
	assert.Equal(t, []string{"b.example"}, c.LoginMappings.Value())
}

func TestUserLocale(t *testing.T) {
	u := &User{}
	_, err := u.Locale()
	assert.Error(t, err)

	u.Language.Set("de_DE")
	tag, err := u.Locale()
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("de-DE"), tag)

	u.Timezone.Set("Europe/Berlin")
	loc, err := u.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestDatabaseDSN(t *testing.T) {
	db := &Database{}
	_, err := db.DSN()
	assert.Error(t, err)

	db.Driver.Set("postgres")
	db.URL.Set("postgres://db1.example:5432")
	db.Login.Set("ox")
	db.Password.Set("pw")
	db.Scheme.Set("oxdb_5")
	dsn, err := db.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://ox:pw@db1.example:5432/oxdb_5", dsn)

	lite := &Database{}
	lite.Driver.Set("sqlite")
	lite.URL.Set("file:ctx.db")
	dsn, err = lite.DSN()
	require.NoError(t, err)
	assert.Equal(t, "file:ctx.db", dsn)
}

func TestParseBasicAuth(t *testing.T) {
	header := "Basic " + base64.StdEncoding.EncodeToString([]byte("oxadmin:se:cret"))
	creds, err := ParseBasicAuth(header)
	require.NoError(t, err)
	assert.Equal(t, "oxadmin", creds.Login)
	assert.Equal(t, "se:cret", creds.Password)
	assert.NotContains(t, creds.String(), "se:cret")

	for _, bad := range []string{"", "Bearer abc", "Basic !!!", "Basic " + base64.StdEncoding.EncodeToString([]byte("nocolon"))} {
		_, err := ParseBasicAuth(bad)
		assert.True(t, errors.Is(err, ErrMalformedCredentials), bad)
	}
}

func TestSchemaSelectStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want SchemaSelectStrategy
		err  bool
	}{
		{"", SchemaSelectStrategy{}, false},
		{"automatic", AutomaticStrategy(), false},
		{"In-Memory", InMemoryStrategy(), false},
		{"schema:oxdb_7", SchemaStrategy("oxdb_7"), false},
		{"schema:", SchemaSelectStrategy{}, true},
		{"random", SchemaSelectStrategy{}, true},
	}
	for _, tc := range tests {
		got, err := ParseSchemaSelectStrategy(tc.in)
		if tc.err {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	b, err := json.Marshal(SchemaStrategy("oxdb_7"))
	require.NoError(t, err)
	assert.Equal(t, `"schema:oxdb_7"`, string(b))
}

func TestRecalculationScope(t *testing.T) {
	s, err := ParseRecalculationScope("Context")
	require.NoError(t, err)
	assert.Equal(t, RecalculateContext, s)
	assert.Equal(t, "context", s.String())
	_, err = ParseRecalculationScope("galaxy")
	assert.Error(t, err)
}

func TestQuota(t *testing.T) {
	q := NewQuota("task", 10)
	assert.True(t, q.Allows(10))
	assert.False(t, q.Allows(11))
	q.Limit.Set(Unlimited)
	assert.True(t, q.IsUnlimited())
	assert.True(t, q.Allows(1<<40))
}

func TestUserModuleAccess(t *testing.T) {
	a := NewUserModuleAccess()
	assert.True(t, a.Calendar)
	assert.False(t, a.EditGroup)

	a.EnableAll()
	assert.True(t, a.EditGroup)
	assert.False(t, a.DeniedPortal)

	a.DisableAll()
	assert.False(t, a.Webmail)
	assert.True(t, a.DeniedPortal)
	assert.Equal(t, "UserModuleAccess{deniedPortal globalAddressBookDisabled}", a.String())
}

func TestFilestoreFree(t *testing.T) {
	f := &Filestore{}
	_, ok := f.Free()
	assert.False(t, ok)
	f.Size.Set(1000)
	f.Reserved.Set(250)
	free, ok := f.Free()
	require.True(t, ok)
	assert.Equal(t, int64(750), free)
}
