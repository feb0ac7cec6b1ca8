package entities

// AppSettings holds the workshop identity and the configurable WhatsApp
// message templates. Stored as its own snapshot collection.
type AppSettings struct {
	ThemeColor              string `json:"themeColor"`
	CompanyName             string `json:"companyName"`
	CompanyAddress          string `json:"companyAddress"`
	CompanyPhone            string `json:"companyPhone"`
	LogoURL                 string `json:"logoUrl,omitempty"`
	WhatsappServiceTemplate string `json:"whatsappServiceTemplate"`
	WhatsappQuoteTemplate   string `json:"whatsappQuoteTemplate"`
}

// DefaultSettings returns the factory configuration, template placeholders
// included. Loading an empty snapshot falls back to these values.
func DefaultSettings() AppSettings {
	return AppSettings{
		ThemeColor:     "blue",
		CompanyName:    "Yahveh Jireh",
		CompanyAddress: "Quiriquina 3738, Comuna Lo Espejo",
		CompanyPhone:   "+56 9 5795 1027",
		WhatsappServiceTemplate: "*TALLER: {taller}*\n\nHola {cliente}, tu vehículo {vehiculo} está actualmente en estado: *{estado}*.\n\n" +
			"💰 Total: ${total}\n💳 Abono: ${abono}\n❗ Pendiente: ${saldo}\n\nDetalles:\n{detalle}",
		WhatsappQuoteTemplate: "*COTIZACIÓN #{id}*\n🔧 {taller}\n\nHola {cliente}, aquí tienes el presupuesto para tu {vehiculo}.\n\n" +
			"📋 *Detalle:*\n{detalle}\n\n💰 *TOTAL: ${total}*\n\n_Válido por {dias} días._",
	}
}
