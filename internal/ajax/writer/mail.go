package writer

import (
	"time"

	"github.com/emersion/go-message/mail"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// addresses writes each address as [personal, address]; personal is null
// when the address has no display name.
func addresses(list []*mail.Address) [][2]any {
	out := make([][2]any, 0, len(list))
	for _, a := range list {
		if a == nil {
			continue
		}
		var personal any
		if a.Name != "" {
			personal = a.Name
		}
		out = append(out, [2]any{personal, a.Address})
	}
	return out
}

func addressColumn(f fields.Field, get func(*groupware.MailMessage) optional.Field[[]*mail.Address]) Column[*groupware.MailMessage] {
	return listColumn(f, get, addresses)
}

func identity[E any](v []E) []E { return v }

var Mails = NewTable("mail", []Column[*groupware.MailMessage]{
	stringColumn(fields.MailID, func(m *groupware.MailMessage) optional.Field[string] { return m.ID }),
	stringColumn(fields.MailFolderID, func(m *groupware.MailMessage) optional.Field[string] { return m.FolderID }),
	primitiveColumn(fields.MailAttachment, func(m *groupware.MailMessage) optional.Field[bool] { return m.HasAttachment }),
	stringColumn(fields.MailContentType, func(m *groupware.MailMessage) optional.Field[string] { return m.ContentType }),
	addressColumn(fields.MailFrom, func(m *groupware.MailMessage) optional.Field[[]*mail.Address] { return m.From }),
	addressColumn(fields.MailTo, func(m *groupware.MailMessage) optional.Field[[]*mail.Address] { return m.To }),
	addressColumn(fields.MailCc, func(m *groupware.MailMessage) optional.Field[[]*mail.Address] { return m.Cc }),
	addressColumn(fields.MailBcc, func(m *groupware.MailMessage) optional.Field[[]*mail.Address] { return m.Bcc }),
	addressColumn(fields.MailReplyTo, func(m *groupware.MailMessage) optional.Field[[]*mail.Address] { return m.ReplyTo }),
	stringColumn(fields.MailSubject, func(m *groupware.MailMessage) optional.Field[string] { return m.Subject }),
	primitiveColumn(fields.MailSize, func(m *groupware.MailMessage) optional.Field[int64] { return m.Size }),
	localDateColumn(fields.MailSentDate, func(m *groupware.MailMessage) optional.Field[time.Time] { return m.SentDate }),
	localDateColumn(fields.MailReceivedDate, func(m *groupware.MailMessage) optional.Field[time.Time] { return m.ReceivedDate }),
	primitiveColumn(fields.MailFlags, func(m *groupware.MailMessage) optional.Field[int] { return m.Flags }),
	{Field: fields.MailFlagSeen, Primitive: true, Value: func(m *groupware.MailMessage, _ *Env) (any, bool, error) {
		return m.HasFlag(groupware.FlagSeen), m.Flags.IsSet() && !m.Flags.IsNull(), nil
	}},
	primitiveColumn(fields.MailThreadLevel, func(m *groupware.MailMessage) optional.Field[int] { return m.ThreadLevel }),
	stringColumn(fields.MailDispositionNotificationTo, func(m *groupware.MailMessage) optional.Field[string] { return m.DispositionNotificationTo }),
	primitiveColumn(fields.MailPriority, func(m *groupware.MailMessage) optional.Field[int] { return m.Priority }),
	stringColumn(fields.MailMsgRef, func(m *groupware.MailMessage) optional.Field[string] { return m.MsgRef }),
	primitiveColumn(fields.ColorLabel, func(m *groupware.MailMessage) optional.Field[int] { return m.ColorLabel }),
	stringColumn(fields.MailAccountName, func(m *groupware.MailMessage) optional.Field[string] { return m.AccountName }),
	primitiveColumn(fields.MailAccountID, func(m *groupware.MailMessage) optional.Field[int] { return m.AccountID }),
	listColumn(fields.MailUserFlags, func(m *groupware.MailMessage) optional.Field[[]string] { return m.UserFlags }, identity[string]),
	{Field: fields.MailHeaders, Value: func(m *groupware.MailMessage, _ *Env) (any, bool, error) {
		h, ok := m.Headers.Get()
		if !ok {
			return nil, false, nil
		}
		if h == nil {
			h = map[string][]string{}
		}
		return h, true, nil
	}},
	stringColumn(fields.MailMessageID, func(m *groupware.MailMessage) optional.Field[string] { return m.MessageID }),
})

type MailWriter = Writer[*groupware.MailMessage]

func NewMailWriter(env *Env) *MailWriter {
	return NewWriter(Mails, env)
}
