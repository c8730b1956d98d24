package admin

import "github.com/sonroyaalmerol/groupware/pkg/optional"

// Filestore is a storage location for infostore documents. Size, Used and
// Reserved are in megabytes.
type Filestore struct {
	ID              optional.Field[int]    `json:"id,omitzero"`
	URL             optional.Field[string] `json:"url,omitzero"`
	Size            optional.Field[int64]  `json:"size,omitzero"`
	MaxContexts     optional.Field[int]    `json:"maxContexts,omitzero"`
	CurrentContexts optional.Field[int]    `json:"currentContexts,omitzero"`
	Used            optional.Field[int64]  `json:"used,omitzero"`
	Reserved        optional.Field[int64]  `json:"reserved,omitzero"`
}

func (f *Filestore) MandatoryMembers(op Operation) []string {
	switch op {
	case OpRegister:
		return []string{"url", "size", "maxContexts"}
	case OpChange, OpDelete:
		return []string{"id"}
	}
	return nil
}

func (f *Filestore) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(f.ID), true
	case "url":
		return filled(f.URL), true
	case "size":
		return filled(f.Size), true
	case "maxContexts":
		return filled(f.MaxContexts), true
	}
	return false, false
}

// Free returns the unreserved capacity, or false when size or reserved is
// unknown.
func (f *Filestore) Free() (int64, bool) {
	size, ok := f.Size.Get()
	if !ok {
		return 0, false
	}
	reserved, ok := f.Reserved.Get()
	if !ok {
		return 0, false
	}
	return size - reserved, true
}

func (f *Filestore) Equal(o *Filestore) bool {
	if f == nil || o == nil {
		return f == o
	}
	return optional.Equal(f.ID, o.ID) &&
		optional.Equal(f.URL, o.URL) &&
		optional.Equal(f.Size, o.Size) &&
		optional.Equal(f.MaxContexts, o.MaxContexts) &&
		optional.Equal(f.CurrentContexts, o.CurrentContexts) &&
		optional.Equal(f.Used, o.Used) &&
		optional.Equal(f.Reserved, o.Reserved)
}

func (f *Filestore) String() string {
	if f == nil {
		return "<nil>"
	}
	w := newDumper("Filestore")
	dump(w, "id", f.ID)
	dump(w, "url", f.URL)
	dump(w, "size", f.Size)
	dump(w, "maxContexts", f.MaxContexts)
	dump(w, "currentContexts", f.CurrentContexts)
	dump(w, "used", f.Used)
	dump(w, "reserved", f.Reserved)
	return w.String()
}
