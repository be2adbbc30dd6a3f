package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver é o subconjunto de *net.Resolver usado na checagem de domínio.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

const lookupTimeout = 3 * time.Second

// EmailDomain separa o domínio do e-mail (vazio se malformado).
func EmailDomain(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// DomainChecker aceita o domínio se houver MX ou, na falta dele, A/AAAA.
func DomainChecker(r Resolver) func(email string) bool {
	return func(email string) bool {
		domain := EmailDomain(email)
		if domain == "" || !strings.Contains(domain, ".") {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
			return true
		}
		if hosts, err := r.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
			return true
		}
		return false
	}
}

var IsEmailDomainValid = DomainChecker(net.DefaultResolver)
