// Command admin-token prints a signed bearer token for the /api/v1/admin routes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"homely_backend/platform/config"
	"homely_backend/platform/httpkit"
)

func main() {
	subject := flag.String("sub", "ops", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	token, err := httpkit.IssueAdminToken(cfg.GetAdminJWTSecret(), *subject, []string{httpkit.RoleAdmin}, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to issue token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
