package directory

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/sonroyaalmerol/groupware/internal/admin"
	"github.com/sonroyaalmerol/groupware/internal/config"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

var ErrNoID = errors.New("entry has no numeric id")

var userAttrs = []string{
	"dn", "uid", "uidNumber", "cn", "displayName", "givenName", "sn", "mail",
	"mailAlternateAddress", "preferredLanguage", "o", "ou", "title",
	"telephoneNumber", "mobile", "description",
}

func groupAttrs(cfg config.LDAPConfig) []string {
	attrs := []string{"dn", "cn", "gidNumber", "displayName", "description"}
	for _, a := range []string{cfg.MemberAttr, cfg.MemberUIDAttr} {
		if a != "" && !slices.Contains(attrs, a) {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

func setAttr(f *optional.Field[string], e *ldap.Entry, attr string) {
	if v := e.GetAttributeValue(attr); v != "" {
		f.Set(v)
	}
}

func numericID(e *ldap.Entry, attr string) (int, error) {
	v := e.GetAttributeValue(attr)
	if v == "" {
		return 0, fmt.Errorf("%w: %s missing", ErrNoID, attr)
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrNoID, attr, err)
	}
	return id, nil
}

// UserFromEntry maps a person entry to a User. Only attributes present in
// the entry are set, so the result works as a change request.
func UserFromEntry(e *ldap.Entry) (*admin.User, error) {
	id, err := numericID(e, "uidNumber")
	if err != nil {
		return nil, err
	}
	u := admin.NewUser(id)
	setAttr(&u.Name, e, "uid")
	if v := firstNonEmpty(e.GetAttributeValue("displayName"), e.GetAttributeValue("cn")); v != "" {
		u.DisplayName.Set(v)
	}
	setAttr(&u.GivenName, e, "givenName")
	setAttr(&u.SurName, e, "sn")
	if mail := e.GetAttributeValue("mail"); mail != "" {
		u.PrimaryEmail.Set(mail)
		u.Email1.Set(mail)
	}
	if aliases := e.GetAttributeValues("mailAlternateAddress"); len(aliases) > 0 {
		u.Aliases.Set(aliases)
	}
	if lang := e.GetAttributeValue("preferredLanguage"); lang != "" {
		u.Language.Set(strings.ReplaceAll(lang, "-", "_"))
	}
	setAttr(&u.Company, e, "o")
	setAttr(&u.Department, e, "ou")
	setAttr(&u.Position, e, "title")
	setAttr(&u.TelephoneBusiness1, e, "telephoneNumber")
	setAttr(&u.CellularTelephone1, e, "mobile")
	setAttr(&u.Note, e, "description")
	return u, nil
}

// MemberIndex resolves member DNs and uids to user ids.
type MemberIndex struct {
	byDN  map[string]int
	byUID map[string]int
}

func NewMemberIndex(users []*ldap.Entry) *MemberIndex {
	idx := &MemberIndex{byDN: map[string]int{}, byUID: map[string]int{}}
	for _, e := range users {
		id, err := numericID(e, "uidNumber")
		if err != nil {
			continue
		}
		idx.byDN[normalizeDN(e.DN)] = id
		if uid := e.GetAttributeValue("uid"); uid != "" {
			idx.byUID[uid] = id
		}
	}
	return idx
}

func (idx *MemberIndex) ByDN(dn string) (int, bool) {
	id, ok := idx.byDN[normalizeDN(dn)]
	return id, ok
}

func (idx *MemberIndex) ByUID(uid string) (int, bool) {
	id, ok := idx.byUID[uid]
	return id, ok
}

func normalizeDN(dn string) string {
	parsed, err := ldap.ParseDN(dn)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(dn))
	}
	rdns := make([]string, 0, len(parsed.RDNs))
	for _, rdn := range parsed.RDNs {
		parts := make([]string, 0, len(rdn.Attributes))
		for _, a := range rdn.Attributes {
			parts = append(parts, a.Type+"="+a.Value)
		}
		rdns = append(rdns, strings.Join(parts, "+"))
	}
	return strings.ToLower(strings.Join(rdns, ","))
}

// GroupFromEntry maps a group entry to a Group. Members that resolve to no
// user are returned as unresolved.
func GroupFromEntry(e *ldap.Entry, cfg config.LDAPConfig, idx *MemberIndex) (*admin.Group, []string, error) {
	id, err := numericID(e, "gidNumber")
	if err != nil {
		return nil, nil, err
	}
	g := admin.NewGroup(id)
	setAttr(&g.Name, e, "cn")
	if v := firstNonEmpty(e.GetAttributeValue("displayName"), e.GetAttributeValue("description")); v != "" {
		g.DisplayName.Set(v)
	} else if name, ok := g.Name.Get(); ok {
		g.DisplayName.Set(name)
	}

	var members []int
	var unresolved []string
	add := func(id int) {
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}
	if cfg.MemberAttr != "" {
		for _, dn := range e.GetAttributeValues(cfg.MemberAttr) {
			if id, ok := idx.ByDN(dn); ok {
				add(id)
			} else {
				unresolved = append(unresolved, dn)
			}
		}
	}
	if cfg.MemberUIDAttr != "" {
		for _, uid := range e.GetAttributeValues(cfg.MemberUIDAttr) {
			if id, ok := idx.ByUID(uid); ok {
				add(id)
			} else {
				unresolved = append(unresolved, uid)
			}
		}
	}
	if len(members) > 0 || len(unresolved) > 0 {
		g.Members.Set(members)
	}
	return g, unresolved, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
