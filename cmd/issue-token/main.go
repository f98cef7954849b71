// Command issue-token prints a bearer token for the approval API, signed with
// the configured JWT secret. Operators use it to hand out reviewer and
// requester credentials.
//
// Usage: issue-token -sub alice -domains sales,finance
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/heartmarshall/domainshare-backend/internal/auth"
	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

func main() {
	sub := flag.String("sub", "", "principal id (required)")
	domains := flag.String("domains", "", "comma-separated domains the principal administers")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	p := domain.Principal{ID: *sub}
	for _, d := range strings.Split(*domains, ",") {
		if d = strings.TrimSpace(d); d != "" {
			p.Domains = append(p.Domains, d)
		}
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL).Issue(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
	fmt.Println(token)
}
