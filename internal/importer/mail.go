package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Mail reads one RFC 5322 message. The whole message is consumed to
// determine its size.
func (im *Importer) Mail(r io.Reader) (*groupware.MailMessage, error) {
	cr := &countingReader{r: r}
	mr, err := mail.CreateReader(cr)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("read message: %w", err)
	}
	if err != nil {
		im.logger.Debug().Err(err).Msg("unknown charset")
	}
	defer mr.Close()

	m := &groupware.MailMessage{}
	h := mr.Header
	for _, a := range []struct {
		key string
		set func([]*mail.Address)
	}{
		{"From", func(v []*mail.Address) { m.From.Set(v) }},
		{"To", func(v []*mail.Address) { m.To.Set(v) }},
		{"Cc", func(v []*mail.Address) { m.Cc.Set(v) }},
		{"Bcc", func(v []*mail.Address) { m.Bcc.Set(v) }},
		{"Reply-To", func(v []*mail.Address) { m.ReplyTo.Set(v) }},
	} {
		list, err := h.AddressList(a.key)
		if err != nil {
			im.logger.Debug().Err(err).Str("header", a.key).Msg("malformed address list")
			continue
		}
		if len(list) > 0 {
			a.set(list)
		}
	}

	if s, err := h.Subject(); err == nil {
		m.Subject.Set(s)
	} else {
		m.Subject.Set(h.Get("Subject"))
	}
	if t, err := h.Date(); err == nil && !t.IsZero() {
		m.SentDate.Set(t)
	}
	if t, ok := receivedDate(h); ok {
		m.ReceivedDate.Set(t)
	} else if t, ok := m.SentDate.Get(); ok {
		m.ReceivedDate.Set(t)
	}
	if id, err := h.MessageID(); err == nil && id != "" {
		m.MessageID.Set(id)
	}
	if t, _, err := h.ContentType(); err == nil && t != "" {
		m.ContentType.Set(t)
	}
	if v := strings.TrimSpace(h.Get("Disposition-Notification-To")); v != "" {
		m.DispositionNotificationTo.Set(v)
	}
	m.Priority.Set(priority(h))
	m.SetIMAPFlags(statusFlags(h))
	m.Headers.Set(h.Map())

	attachment := false
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return nil, fmt.Errorf("read part: %w", err)
		}
		if p == nil {
			continue
		}
		if _, ok := p.Header.(*mail.AttachmentHeader); ok {
			attachment = true
		}
		if _, err := io.Copy(io.Discard, p.Body); err != nil {
			return nil, fmt.Errorf("read part: %w", err)
		}
	}
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}
	m.HasAttachment.Set(attachment)
	m.Size.Set(cr.n)
	return m, nil
}

// receivedDate is the date of the topmost Received header.
func receivedDate(h mail.Header) (t time.Time, ok bool) {
	v := h.Get("Received")
	i := strings.LastIndexByte(v, ';')
	if i < 0 {
		return t, false
	}
	dh := mail.HeaderFromMap(map[string][]string{"Date": {strings.TrimSpace(v[i+1:])}})
	t, err := dh.Date()
	if err != nil || t.IsZero() {
		return t, false
	}
	return t, true
}

// priority reads X-Priority, falling back to Importance.
func priority(h mail.Header) int {
	if v := strings.TrimSpace(h.Get("X-Priority")); v != "" {
		if n, err := strconv.Atoi(v[:1]); err == nil && n >= groupware.PriorityHighest && n <= groupware.PriorityLowest {
			return n
		}
	}
	switch strings.ToLower(strings.TrimSpace(h.Get("Importance"))) {
	case "high":
		return groupware.PriorityHighest
	case "low":
		return groupware.PriorityLowest
	}
	return groupware.PriorityMail
}

// statusFlags maps mbox Status and X-Status headers to IMAP flags.
func statusFlags(h mail.Header) []imap.Flag {
	var flags []imap.Flag
	status := h.Get("Status")
	if strings.ContainsRune(status, 'R') {
		flags = append(flags, imap.FlagSeen)
	}
	if h.Has("Status") && !strings.ContainsRune(status, 'O') {
		flags = append(flags, "\\Recent")
	}
	for _, c := range h.Get("X-Status") {
		switch c {
		case 'A':
			flags = append(flags, imap.FlagAnswered)
		case 'F':
			flags = append(flags, imap.FlagFlagged)
		case 'T':
			flags = append(flags, imap.FlagDraft)
		case 'D':
			flags = append(flags, imap.FlagDeleted)
		}
	}
	if v := strings.TrimSpace(h.Get("X-Keywords")); v != "" {
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				flags = append(flags, imap.Flag(kw))
			}
		}
	}
	return flags
}
