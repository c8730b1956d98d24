package admin

import (
	"slices"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Context is a tenant: users, groups and resources all live inside one.
type Context struct {
	ID                optional.Field[int]                          `json:"id,omitzero"`
	Name              optional.Field[string]                       `json:"name,omitzero"`
	Enabled           optional.Field[bool]                         `json:"enabled,omitzero"`
	FilestoreID       optional.Field[int]                          `json:"filestoreId,omitzero"`
	FilestoreName     optional.Field[string]                       `json:"filestoreName,omitzero"`
	AverageSize       optional.Field[int64]                        `json:"averageSize,omitzero"`
	MaxQuota          optional.Field[int64]                        `json:"maxQuota,omitzero"`
	UsedQuota         optional.Field[int64]                        `json:"usedQuota,omitzero"`
	MaintenanceReason optional.Field[*MaintenanceReason]           `json:"maintenanceReason,omitzero"`
	LoginMappings     optional.Field[[]string]                     `json:"loginMappings,omitzero"`
	ReadDatabase      optional.Field[*Database]                    `json:"readDatabase,omitzero"`
	WriteDatabase     optional.Field[*Database]                    `json:"writeDatabase,omitzero"`
	UserAttributes    optional.Field[map[string]map[string]string] `json:"userAttributes,omitzero"`

	Extensions Extensions `json:"-"`
}

// NewContext returns a context with only its id set.
func NewContext(id int) *Context {
	c := &Context{}
	c.ID.Set(id)
	return c
}

func (c *Context) MandatoryMembers(op Operation) []string {
	switch op {
	case OpChange, OpDelete:
		return []string{"id"}
	}
	return nil
}

func (c *Context) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(c.ID), true
	case "name":
		return filled(c.Name), true
	case "filestoreId":
		return filled(c.FilestoreID), true
	case "maxQuota":
		return filled(c.MaxQuota), true
	}
	return false, false
}

// AddLoginMapping adds a login mapping unless it is already present.
func (c *Context) AddLoginMapping(mapping string) {
	mappings := c.LoginMappings.Value()
	if slices.Contains(mappings, mapping) {
		c.LoginMappings.Set(mappings)
		return
	}
	c.LoginMappings.Set(append(slices.Clone(mappings), mapping))
}

func (c *Context) RemoveLoginMapping(mapping string) bool {
	mappings := c.LoginMappings.Value()
	i := slices.Index(mappings, mapping)
	if i < 0 {
		return false
	}
	c.LoginMappings.Set(slices.Delete(slices.Clone(mappings), i, i+1))
	return true
}

// SetUserAttribute sets one dynamic attribute in namespace ns.
func (c *Context) SetUserAttribute(ns, key, value string) {
	setAttribute(&c.UserAttributes, ns, key, value)
}

func (c *Context) Equal(o *Context) bool {
	if c == nil || o == nil {
		return c == o
	}
	return optional.Equal(c.ID, o.ID) &&
		optional.Equal(c.Name, o.Name) &&
		optional.Equal(c.Enabled, o.Enabled) &&
		optional.Equal(c.FilestoreID, o.FilestoreID) &&
		optional.Equal(c.FilestoreName, o.FilestoreName) &&
		optional.Equal(c.AverageSize, o.AverageSize) &&
		optional.Equal(c.MaxQuota, o.MaxQuota) &&
		optional.Equal(c.UsedQuota, o.UsedQuota) &&
		optional.EqualFunc(c.MaintenanceReason, o.MaintenanceReason, (*MaintenanceReason).Equal) &&
		equalSlices(c.LoginMappings, o.LoginMappings) &&
		optional.EqualFunc(c.ReadDatabase, o.ReadDatabase, (*Database).Equal) &&
		optional.EqualFunc(c.WriteDatabase, o.WriteDatabase, (*Database).Equal) &&
		equalNested(c.UserAttributes, o.UserAttributes)
}

func (c *Context) String() string {
	if c == nil {
		return "<nil>"
	}
	w := newDumper("Context")
	dump(w, "id", c.ID)
	dump(w, "name", c.Name)
	dump(w, "enabled", c.Enabled)
	dump(w, "filestoreId", c.FilestoreID)
	dump(w, "filestoreName", c.FilestoreName)
	dump(w, "averageSize", c.AverageSize)
	dump(w, "maxQuota", c.MaxQuota)
	dump(w, "usedQuota", c.UsedQuota)
	dump(w, "maintenanceReason", c.MaintenanceReason)
	dump(w, "loginMappings", c.LoginMappings)
	dump(w, "readDatabase", c.ReadDatabase)
	dump(w, "writeDatabase", c.WriteDatabase)
	dump(w, "userAttributes", c.UserAttributes)
	if c.Extensions.Len() > 0 {
		w.write("extensions", c.Extensions.String())
	}
	return w.String()
}
