package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AJAXConfig struct {
	SkipUnknownColumns bool
	ImageURLPrefix     string
}

type LDAPConfig struct {
	URL                string
	BindDN             string
	BindPassword       string
	UserBaseDN         string
	GroupBaseDN        string
	UserFilter         string
	LoginFilter        string
	GroupFilter        string
	MemberAttr         string
	MemberUIDAttr      string
	PageSize           uint32
	Timeout            time.Duration
	CacheTTL           time.Duration
	InsecureSkipVerify bool
	RequireTLS         bool
}

type DBCheckConfig struct {
	Timeout time.Duration
}

type Config struct {
	Timezone string
	AJAX     AJAXConfig
	LDAP     LDAPConfig
	DBCheck  DBCheckConfig
	LogLevel string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenv(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func Load() (*Config, error) {
	ldapTimeout, err := getenvDuration("LDAP_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getenvDuration("LDAP_CACHE_TTL", "60s")
	if err != nil {
		return nil, err
	}
	dbTimeout, err := getenvDuration("DB_CHECK_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	pageSize, err := strconv.ParseUint(getenv("LDAP_PAGE_SIZE", "500"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("LDAP_PAGE_SIZE: %w", err)
	}

	cfg := &Config{
		AJAX: AJAXConfig{
			SkipUnknownColumns: getenv("AJAX_SKIP_UNKNOWN_COLUMNS", "false") == "true",
			ImageURLPrefix:     getenv("AJAX_IMAGE_URL_PREFIX", "/ajax/image/contact/picture"),
		},
		LDAP: LDAPConfig{
			URL:                getenv("LDAP_URL", "ldap://localhost:389"),
			BindDN:             getenv("LDAP_BIND_DN", ""),
			BindPassword:       getenv("LDAP_BIND_PASSWORD", ""),
			UserBaseDN:         getenv("LDAP_USER_BASE_DN", ""),
			GroupBaseDN:        getenv("LDAP_GROUP_BASE_DN", ""),
			UserFilter:         getenv("LDAP_USER_FILTER", "(objectClass=inetOrgPerson)"),
			LoginFilter:        getenv("LDAP_LOGIN_FILTER", "(|(uid=%s)(mail=%s))"),
			GroupFilter:        getenv("LDAP_GROUP_FILTER", "(|(objectClass=groupOfNames)(objectClass=posixGroup))"),
			MemberAttr:         getenv("LDAP_MEMBER_ATTR", "member"),
			MemberUIDAttr:      getenv("LDAP_MEMBER_UID_ATTR", "memberUid"),
			PageSize:           uint32(pageSize),
			InsecureSkipVerify: getenv("LDAP_SKIP_VERIFY", "false") == "true",
			RequireTLS:         getenv("LDAP_REQUIRE_TLS", "false") == "true",
			Timeout:            ldapTimeout,
			CacheTTL:           cacheTTL,
		},
		DBCheck: DBCheckConfig{
			Timeout: dbTimeout,
		},
		Timezone: getenv("TZ", "UTC"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// Location loads Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TZ: %w", err)
	}
	return loc, nil
}
