package templates

import (
	"github.com/oksasatya/timbr/config"
)

// NewWelcomeData builds the payload for the post-signup greeting.
func NewWelcomeData(cfg *config.Config, name, email, role string) map[string]any {
	return ToMap(EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           Welcome,
		Role:           role,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		AppURL:         cfg.AppURL,
		SupportURL:     cfg.SupportURL,
	})
}
