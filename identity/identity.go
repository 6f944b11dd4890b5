// Package identity decides who may enter the registry and who administers it.
package identity

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// AdminRegistrationNumber is shown in place of a registration number for the administrator
const AdminRegistrationNumber = "ADMIN"

// Gate answers institutional membership and privilege questions for an email address
type Gate struct {
	Domain     string
	AdminEmail string

	studentPattern *regexp.Regexp
}

// NewGate builds a gate for the given institution domain and administrator address
func NewGate(domain, adminEmail string) Gate {
	domain = normalize(domain)
	return Gate{
		Domain:         domain,
		AdminEmail:     normalize(adminEmail),
		studentPattern: regexp.MustCompile(`^\d{9}@` + regexp.QuoteMeta(domain) + `$`),
	}
}

// IsInstitutional reports whether the email belongs to the institution
func (g Gate) IsInstitutional(email string) bool {
	e := normalize(email)
	if e == "" {
		return false
	}
	if g.IsAdministrator(e) {
		return true
	}
	if g.Domain == "" {
		return false
	}
	if g.studentPattern != nil && g.studentPattern.MatchString(e) {
		return true
	}
	return strings.HasSuffix(e, "@"+g.Domain) && len(e) > len(g.Domain)+1
}

// IsAdministrator reports whether the email is the single administrator account
func (g Gate) IsAdministrator(email string) bool {
	return g.AdminEmail != "" && normalize(email) == g.AdminEmail
}

// RegistrationNumber returns the local part of a student email
func (g Gate) RegistrationNumber(email string) string {
	if g.IsAdministrator(email) {
		return AdminRegistrationNumber
	}
	e := normalize(email)
	if i := strings.Index(e, "@"); i >= 0 {
		return e[:i]
	}
	return e
}

// UserID derives the stable user id for an email. The same address always maps to
// the same id, so a user can be located without a lookup table.
func UserID(email string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(normalize(email)))
	return strings.NewReplacer("/", "", "+", "", "=", "").Replace(enc)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
