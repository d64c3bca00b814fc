package commands

import (
	"os"

	"github.com/suryaprakash-sp/mybillbook-scrape/lib/configutil"
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/scrapers/billbook"
)

// Config carries the session artifacts captured from an authenticated
// browser tab. Environment variables override the file so credentials
// can stay out of the working tree entirely.
type Config struct {
	AuthToken string `json:"auth_token"`
	Cookies   string `json:"cookies"`
	CompanyId string `json:"company_id"`
}

func loadSession() (billbook.Session, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		return billbook.Session{}, err
	}

	if v := os.Getenv("MYBILLBOOK_AUTH_TOKEN"); v != "" {
		cfg.AuthToken = v
	}
	if v := os.Getenv("MYBILLBOOK_COOKIES"); v != "" {
		cfg.Cookies = v
	}
	if v := os.Getenv("MYBILLBOOK_COMPANY_ID"); v != "" {
		cfg.CompanyId = v
	}

	return billbook.NewSession(cfg.AuthToken, cfg.Cookies, cfg.CompanyId)
}
