package request

import (
	"taller_manager/internal/domain/entities"
)

type SettingsRequest struct {
	ThemeColor              string `json:"themeColor"`
	CompanyName             string `json:"companyName"`
	CompanyAddress          string `json:"companyAddress"`
	CompanyPhone            string `json:"companyPhone"`
	LogoURL                 string `json:"logoUrl"`
	WhatsappServiceTemplate string `json:"whatsappServiceTemplate"`
	WhatsappQuoteTemplate   string `json:"whatsappQuoteTemplate"`
}

func (r SettingsRequest) ToEntity() entities.AppSettings {
	return entities.AppSettings{
		ThemeColor:              r.ThemeColor,
		CompanyName:             r.CompanyName,
		CompanyAddress:          r.CompanyAddress,
		CompanyPhone:            r.CompanyPhone,
		LogoURL:                 r.LogoURL,
		WhatsappServiceTemplate: r.WhatsappServiceTemplate,
		WhatsappQuoteTemplate:   r.WhatsappQuoteTemplate,
	}
}
