package services

import (
	"crypto/tls"
	"fmt"
	"strconv"

	"github.com/go-ldap/ldap/v3"
	"gorm.io/gorm"
)

// LDAPService authenticates users against a directory. Settings come from
// the database so administrators can change them without a restart.
type LDAPService struct {
	configSvc *SystemConfigService
}

func NewLDAPService(db *gorm.DB) *LDAPService {
	return &LDAPService{configSvc: NewSystemConfigService(db)}
}

type LDAPUser struct {
	DN       string
	Username string
	Email    string
	Nickname string
}

func (s *LDAPService) IsEnabled() bool {
	return s.configSvc.GetWithDefault("ldap_enabled", "false") == "true"
}

// Authenticate verifies username/password against LDAP and returns the
// matched directory entry.
func (s *LDAPService) Authenticate(username, password string) (*LDAPUser, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("LDAP is not enabled")
	}

	host := s.configSvc.GetWithDefault("ldap_host", "")
	port, _ := strconv.Atoi(s.configSvc.GetWithDefault("ldap_port", "389"))
	useSSL := s.configSvc.GetWithDefault("ldap_use_ssl", "false") == "true"

	addr := fmt.Sprintf("%s:%d", host, port)
	var conn *ldap.Conn
	var err error

	if useSSL {
		conn, err = ldap.DialTLS("tcp", addr, &tls.Config{InsecureSkipVerify: true})
	} else {
		conn, err = ldap.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}
	defer conn.Close()

	bindDN := s.configSvc.GetWithDefault("ldap_bind_dn", "")
	if bindDN != "" {
		bindPassword := s.configSvc.GetWithDefault("ldap_bind_password", "")
		if err := conn.Bind(bindDN, bindPassword); err != nil {
			return nil, fmt.Errorf("failed to bind with service account: %w", err)
		}
	}

	userFilter := s.configSvc.GetWithDefault("ldap_user_filter", "(uid=%s)")
	searchFilter := fmt.Sprintf(userFilter, ldap.EscapeFilter(username))
	searchRequest := ldap.NewSearchRequest(
		s.configSvc.GetWithDefault("ldap_base_dn", ""),
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		searchFilter,
		[]string{"dn", "cn", "mail", "uid", "sAMAccountName"},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("LDAP search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("user not found in LDAP")
	}
	if len(result.Entries) > 1 {
		return nil, fmt.Errorf("multiple users found in LDAP")
	}

	userDN := result.Entries[0].DN
	if err := conn.Bind(userDN, password); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	entry := result.Entries[0]
	user := &LDAPUser{
		DN:       userDN,
		Username: entry.GetAttributeValue("uid"),
		Email:    entry.GetAttributeValue("mail"),
		Nickname: entry.GetAttributeValue("cn"),
	}

	// Active Directory exposes sAMAccountName instead of uid.
	if user.Username == "" {
		user.Username = entry.GetAttributeValue("sAMAccountName")
	}

	return user, nil
}
