package groupware

import (
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-message/mail"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Mail system flag bits.
const (
	FlagAnswered  = 1
	FlagDeleted   = 2
	FlagDraft     = 4
	FlagFlagged   = 8
	FlagRecent    = 16
	FlagSeen      = 32
	FlagUser      = 64
	FlagSpam      = 128
	FlagForwarded = 256
	FlagReadAck   = 512
)

// Mail priorities.
const (
	PriorityHighest = 1
	PriorityMail    = 3
	PriorityLowest  = 5
)

const flagRecent imap.Flag = "\\Recent"

var imapFlagBits = map[imap.Flag]int{
	imap.FlagAnswered:  FlagAnswered,
	imap.FlagDeleted:   FlagDeleted,
	imap.FlagDraft:     FlagDraft,
	imap.FlagFlagged:   FlagFlagged,
	flagRecent:         FlagRecent,
	imap.FlagSeen:      FlagSeen,
	imap.FlagJunk:      FlagSpam,
	imap.FlagForwarded: FlagForwarded,
	imap.FlagMDNSent:   FlagReadAck,
}

// FlagsFromIMAP maps IMAP message flags to system flag bits. Keywords without
// a bit are returned as user flags; FlagUser is set when there is any.
func FlagsFromIMAP(flags []imap.Flag) (bits int, user []string) {
	for _, f := range flags {
		if b, ok := lookupFlag(f); ok {
			bits |= b
			continue
		}
		if f == imap.FlagNotJunk || f == imap.FlagWildcard {
			continue
		}
		user = append(user, string(f))
	}
	if len(user) > 0 {
		bits |= FlagUser
	}
	return bits, user
}

func lookupFlag(f imap.Flag) (int, bool) {
	if b, ok := imapFlagBits[f]; ok {
		return b, true
	}
	// Flags are case-insensitive.
	for k, b := range imapFlagBits {
		if strings.EqualFold(string(k), string(f)) {
			return b, true
		}
	}
	return 0, false
}

// MailMessage is the list/detail view of a message. ID is unique within
// FolderID; MsgRef is the full reference "<folder>/<id>".
type MailMessage struct {
	ID                        optional.Field[string]
	FolderID                  optional.Field[string]
	HasAttachment             optional.Field[bool]
	ContentType               optional.Field[string]
	From                      optional.Field[[]*mail.Address]
	To                        optional.Field[[]*mail.Address]
	Cc                        optional.Field[[]*mail.Address]
	Bcc                       optional.Field[[]*mail.Address]
	ReplyTo                   optional.Field[[]*mail.Address]
	Subject                   optional.Field[string]
	Size                      optional.Field[int64]
	SentDate                  optional.Field[time.Time]
	ReceivedDate              optional.Field[time.Time]
	Flags                     optional.Field[int]
	ThreadLevel               optional.Field[int]
	DispositionNotificationTo optional.Field[string]
	Priority                  optional.Field[int]
	MsgRef                    optional.Field[string]
	ColorLabel                optional.Field[int]
	AccountName               optional.Field[string]
	AccountID                 optional.Field[int]
	UserFlags                 optional.Field[[]string]
	Headers                   optional.Field[map[string][]string]
	MessageID                 optional.Field[string]
}

// SetIMAPFlags sets Flags and UserFlags from IMAP flags.
func (m *MailMessage) SetIMAPFlags(flags []imap.Flag) {
	bits, user := FlagsFromIMAP(flags)
	m.Flags.Set(bits)
	if len(user) > 0 {
		m.UserFlags.Set(user)
	}
}

// HasFlag reports whether all bits in flag are set.
func (m *MailMessage) HasFlag(flag int) bool {
	return m.Flags.Value()&flag == flag
}
