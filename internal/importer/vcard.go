package importer

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Contacts is the outcome of a vCard import.
type Contacts struct {
	Contacts []*groupware.Contact
	Results  []*groupware.ImportResult
}

// VCard imports every card of r into folderID. KIND:group cards with MEMBER
// properties become distribution lists.
func (im *Importer) VCard(r io.Reader, folderID int) (*Contacts, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read vcard: %w", err)
	}
	// Normalize line endings to CRLF
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	content = strings.ReplaceAll(content, "\n", "\r\n")

	out := &Contacts{}
	dec := vcard.NewDecoder(strings.NewReader(content))
	for pos := 1; ; pos++ {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The decoder cannot resync after a broken card.
			im.logger.Warn().Err(err).Int("position", pos).Msg("stopping vcard import")
			out.Results = append(out.Results, failed(folderID, pos, groupware.CodeParseFailed, err))
			break
		}
		c, err := im.contact(card, folderID)
		if err != nil {
			out.Results = append(out.Results, failed(folderID, pos, codeOf(err), err))
			continue
		}
		out.Contacts = append(out.Contacts, c)
		out.Results = append(out.Results, succeeded(folderID, c.UID.Value(), c.LastModified.OrElse(im.now())))
	}
	return out, nil
}

func (im *Importer) contact(card vcard.Card, folderID int) (*groupware.Contact, error) {
	c := &groupware.Contact{}
	c.ParentFolderID.Set(folderID)

	uid := card.Value(vcard.FieldUID)
	if uid == "" {
		uid = uuid.NewString()
	}
	c.UID.Set(uid)

	if n := card.Name(); n != nil {
		setString(&c.SurName, n.FamilyName)
		setString(&c.GivenName, n.GivenName)
		setString(&c.MiddleName, n.AdditionalName)
		setString(&c.Title, n.HonorificPrefix)
		setString(&c.Suffix, n.HonorificSuffix)
	}
	display := card.Value(vcard.FieldFormattedName)
	if display == "" {
		display = strings.Join(strings.Fields(c.GivenName.Value()+" "+c.SurName.Value()), " ")
	}
	if display == "" {
		return nil, fmt.Errorf("%w: FN", groupware.ErrMissingContent)
	}
	c.DisplayName.Set(display)

	setString(&c.Nickname, card.Value(vcard.FieldNickname))
	setString(&c.Note, card.Value(vcard.FieldNote))
	setString(&c.URL, card.Value(vcard.FieldURL))
	setString(&c.Position, card.Value(vcard.FieldTitle))
	setString(&c.Profession, card.Value(vcard.FieldRole))
	if org := card.Value(vcard.FieldOrganization); org != "" {
		parts := strings.SplitN(org, ";", 2)
		setString(&c.Company, parts[0])
		if len(parts) > 1 {
			setString(&c.Department, parts[1])
		}
	}
	if cats := card.Categories(); len(cats) > 0 {
		c.Categories.Set(strings.Join(cats, ","))
	}

	if t, ok := vcardDate(card.Value(vcard.FieldBirthday)); ok {
		c.Birthday.Set(t)
	}
	anniversary := card.Value(vcard.FieldAnniversary)
	if anniversary == "" {
		anniversary = card.Value("X-ANNIVERSARY")
	}
	if t, ok := vcardDate(anniversary); ok {
		c.Anniversary.Set(t)
	}
	if t, err := card.Revision(); err == nil && !t.IsZero() {
		c.LastModified.Set(t)
	}

	emailFields := []*optional.Field[string]{&c.Email1, &c.Email2, &c.Email3}
	for i, f := range card[vcard.FieldEmail] {
		if i >= len(emailFields) {
			break
		}
		setString(emailFields[i], f.Value)
	}

	for _, f := range card[vcard.FieldTelephone] {
		phone(c, f)
	}
	for _, f := range card[vcard.FieldIMPP] {
		if !c.InstantMessenger1.IsSet() {
			setString(&c.InstantMessenger1, f.Value)
		} else if !c.InstantMessenger2.IsSet() {
			setString(&c.InstantMessenger2, f.Value)
		}
	}

	for _, addr := range card.Addresses() {
		switch {
		case hasType(addr.Field, vcard.TypeHome):
			setString(&c.StreetHome, addr.StreetAddress)
			setString(&c.CityHome, addr.Locality)
			setString(&c.StateHome, addr.Region)
			setString(&c.PostalCodeHome, addr.PostalCode)
			setString(&c.CountryHome, addr.Country)
		case hasType(addr.Field, vcard.TypeWork):
			setString(&c.StreetBusiness, addr.StreetAddress)
			setString(&c.CityBusiness, addr.Locality)
			setString(&c.StateBusiness, addr.Region)
			setString(&c.PostalCodeBusiness, addr.PostalCode)
			setString(&c.CountryBusiness, addr.Country)
		default:
			setString(&c.StreetOther, addr.StreetAddress)
			setString(&c.CityOther, addr.Locality)
			setString(&c.StateOther, addr.Region)
			setString(&c.PostalCodeOther, addr.PostalCode)
			setString(&c.CountryOther, addr.Country)
		}
	}

	if f := card.Get(vcard.FieldPhoto); f != nil {
		if err := photo(c, f); err != nil {
			im.logger.Debug().Err(err).Str("uid", uid).Msg("ignoring photo")
		}
	}

	if card.Kind() == vcard.KindGroup || len(card[vcard.FieldMember]) > 0 {
		var entries []groupware.DistributionListEntry
		for _, f := range card[vcard.FieldMember] {
			email := mailto(f.Value)
			if !strings.Contains(email, "@") {
				im.logger.Debug().Str("uid", uid).Str("member", f.Value).Msg("skipping unresolved member")
				continue
			}
			entries = append(entries, groupware.DistributionListEntry{
				DisplayName:  email,
				EmailAddress: email,
				EmailField:   groupware.EmailFieldIndependent,
			})
		}
		c.SetDistributionList(entries)
	}
	return c, nil
}

func setString(f *optional.Field[string], v string) {
	if v = strings.TrimSpace(v); v != "" {
		f.Set(v)
	}
}

func hasType(f *vcard.Field, t string) bool {
	if f == nil {
		return false
	}
	for _, v := range f.Params[vcard.ParamType] {
		for _, typ := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(typ), t) {
				return true
			}
		}
	}
	return false
}

// phone stores a TEL in the first free slot its types point at.
func phone(c *groupware.Contact, f *vcard.Field) {
	var slots []*optional.Field[string]
	switch {
	case hasType(f, vcard.TypeFax) && hasType(f, vcard.TypeHome):
		slots = []*optional.Field[string]{&c.FaxHome}
	case hasType(f, vcard.TypeFax) && hasType(f, vcard.TypeWork):
		slots = []*optional.Field[string]{&c.FaxBusiness}
	case hasType(f, vcard.TypeFax):
		slots = []*optional.Field[string]{&c.FaxOther}
	case hasType(f, vcard.TypeCell):
		slots = []*optional.Field[string]{&c.CellularTelephone1, &c.CellularTelephone2}
	case hasType(f, vcard.TypePager):
		slots = []*optional.Field[string]{&c.TelephonePager}
	case hasType(f, vcard.TypeHome):
		slots = []*optional.Field[string]{&c.TelephoneHome1, &c.TelephoneHome2}
	case hasType(f, vcard.TypeWork):
		slots = []*optional.Field[string]{&c.TelephoneBusiness1, &c.TelephoneBusiness2}
	default:
		slots = []*optional.Field[string]{&c.TelephoneOther}
	}
	for _, s := range slots {
		if !s.IsSet() {
			setString(s, f.Value)
			return
		}
	}
}

// photo decodes an inline PHOTO, either a data URI or a base64 value.
func photo(c *groupware.Contact, f *vcard.Field) error {
	v := strings.TrimSpace(f.Value)
	contentType := ""
	if rest, ok := strings.CutPrefix(v, "data:"); ok {
		meta, data, ok := strings.Cut(rest, ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return fmt.Errorf("unsupported photo uri")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		v = data
	} else {
		enc := strings.ToLower(f.Params.Get("ENCODING"))
		if enc != "b" && enc != "base64" {
			return fmt.Errorf("unsupported photo encoding %q", enc)
		}
		if typ := f.Params.Get(vcard.ParamType); typ != "" {
			contentType = "image/" + strings.ToLower(typ)
		}
	}
	img, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return fmt.Errorf("decode photo: %w", err)
	}
	c.Image1.Set(img)
	c.NumberOfImages.Set(1)
	if contentType != "" {
		c.ImageContentType.Set(contentType)
	}
	return nil
}

var vcardDateLayouts = []string{"20060102", "2006-01-02", "--0102", "--01-02", "20060102T150405Z", time.RFC3339}

// vcardDate parses BDAY and ANNIVERSARY values as UTC dates. Year-less dates
// get year 1604 as placeholder.
func vcardDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range vcardDateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		if strings.HasPrefix(layout, "--") {
			t = t.AddDate(1604, 0, 0)
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
