// Package directory reads users and groups from LDAP as admin objects.
package directory

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog"

	"github.com/sonroyaalmerol/groupware/internal/admin"
	"github.com/sonroyaalmerol/groupware/internal/cache"
	"github.com/sonroyaalmerol/groupware/internal/config"
)

type Directory interface {
	Close()
	Users(ctx context.Context) ([]*admin.User, error)
	Groups(ctx context.Context) ([]*admin.Group, error)
	Authenticate(ctx context.Context, creds *admin.Credentials) (*admin.User, error)
}

var ErrInvalidCredentials = errors.New("invalid credentials")

var _ Directory = (*LDAPClient)(nil)

type LDAPClient struct {
	cfg    config.LDAPConfig
	logger zerolog.Logger
	conn   *ldap.Conn
	groups *cache.Cache[string, []*admin.Group]
}

func NewLDAPClient(cfg config.LDAPConfig, logger zerolog.Logger) (*LDAPClient, error) {
	logger = logger.With().Str("component", "directory").Logger()
	l, err := dialLDAPAuto(cfg)
	if err != nil {
		logger.Error().Err(err).Str("url", cfg.URL).Msg("failed to dial LDAP")
		return nil, err
	}
	if cfg.BindDN != "" {
		if err := l.Bind(cfg.BindDN, cfg.BindPassword); err != nil {
			logger.Error().Err(err).Str("bind_dn", cfg.BindDN).Msg("initial bind failed")
			l.Close()
			return nil, err
		}
	}
	return &LDAPClient{
		cfg:    cfg,
		logger: logger,
		conn:   l,
		groups: cache.New[string, []*admin.Group](cfg.CacheTTL),
	}, nil
}

func (l *LDAPClient) Close() {
	if l.conn != nil {
		l.conn.Close()
	}
}

func (l *LDAPClient) search(ctx context.Context, baseDN, filter string, attrs []string) ([]*ldap.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, int(l.cfg.Timeout.Seconds()), false,
		filter,
		attrs,
		nil,
	)
	res, err := l.conn.SearchWithPaging(req, l.cfg.PageSize)
	if err != nil {
		l.logger.Error().Err(err).
			Str("base_dn", baseDN).
			Str("filter", filter).
			Msg("LDAP search failed")
		return nil, err
	}
	return res.Entries, nil
}

// Users lists the entries matching the user filter. Entries that cannot be
// mapped are logged and skipped.
func (l *LDAPClient) Users(ctx context.Context) ([]*admin.User, error) {
	entries, err := l.search(ctx, l.cfg.UserBaseDN, l.cfg.UserFilter, userAttrs)
	if err != nil {
		return nil, err
	}
	users := make([]*admin.User, 0, len(entries))
	for _, e := range entries {
		u, err := UserFromEntry(e)
		if err != nil {
			l.logger.Warn().Err(err).Str("dn", e.DN).Msg("skipping user entry")
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

// Groups lists groups with members resolved to user ids. The result is
// cached for the configured TTL.
func (l *LDAPClient) Groups(ctx context.Context) ([]*admin.Group, error) {
	return l.groups.GetOrLoad(l.cfg.GroupBaseDN+"|"+l.cfg.GroupFilter, func() ([]*admin.Group, error) {
		userEntries, err := l.search(ctx, l.cfg.UserBaseDN, l.cfg.UserFilter, userAttrs)
		if err != nil {
			return nil, err
		}
		idx := NewMemberIndex(userEntries)

		entries, err := l.search(ctx, l.cfg.GroupBaseDN, l.cfg.GroupFilter, groupAttrs(l.cfg))
		if err != nil {
			return nil, err
		}
		groups := make([]*admin.Group, 0, len(entries))
		for _, e := range entries {
			g, unresolved, err := GroupFromEntry(e, l.cfg, idx)
			if err != nil {
				l.logger.Warn().Err(err).Str("dn", e.DN).Msg("skipping group entry")
				continue
			}
			if len(unresolved) > 0 {
				l.logger.Debug().Str("dn", e.DN).Strs("members", unresolved).Msg("unresolved group members")
			}
			groups = append(groups, g)
		}
		return groups, nil
	})
}

// Authenticate looks up the entry matching the login filter and binds as it
// on a separate connection.
func (l *LDAPClient) Authenticate(ctx context.Context, creds *admin.Credentials) (*admin.User, error) {
	if creds == nil || creds.Login == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}
	login := ldap.EscapeFilter(creds.Login)
	filter := strings.ReplaceAll(l.cfg.LoginFilter, "%s", login)
	entries, err := l.search(ctx, l.cfg.UserBaseDN, filter, userAttrs)
	if err != nil {
		return nil, err
	}
	if len(entries) != 1 {
		l.logger.Debug().Str("login", creds.Login).Int("matches", len(entries)).Msg("login lookup failed")
		return nil, ErrInvalidCredentials
	}
	entry := entries[0]

	userConn, err := dialLDAPAuto(l.cfg)
	if err != nil {
		l.logger.Error().Err(err).Msg("failed to dial LDAP for user bind")
		return nil, err
	}
	defer userConn.Close()
	if err := userConn.Bind(entry.DN, creds.Password); err != nil {
		l.logger.Debug().Err(err).Str("user_dn", entry.DN).Msg("user bind failed")
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return UserFromEntry(entry)
}

func tlsConfigFor(cfg config.LDAPConfig, hostPort string) *tls.Config {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}
	if host, _, err := net.SplitHostPort(hostPort); err == nil && host != "" {
		tlsConfig.ServerName = host
	} else {
		tlsConfig.ServerName = hostPort
	}
	return tlsConfig
}

func checkURL(raw string) (u string, ldaps bool, err error) {
	u = strings.TrimSpace(raw)
	if u == "" {
		return "", false, errors.New("LDAP URL is empty")
	}
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "ldaps://"):
		return u, true, nil
	case strings.HasPrefix(lower, "ldap://"):
		return u, false, nil
	}
	return "", false, errors.New("URL must start with ldap:// or ldaps://")
}

func dialLDAPAuto(cfg config.LDAPConfig) (*ldap.Conn, error) {
	u, isLDAPS, err := checkURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if isLDAPS {
		return ldap.DialURL(u, ldap.DialWithTLSConfig(tlsConfigFor(cfg, u[len("ldaps://"):])))
	}

	conn, err := ldap.DialURL(u)
	if err != nil {
		return nil, err
	}
	if cfg.RequireTLS {
		if err := conn.StartTLS(tlsConfigFor(cfg, u[len("ldap://"):])); err != nil {
			conn.Close()
			return nil, fmt.Errorf("StartTLS failed: %w", err)
		}
	}
	return conn, nil
}
