package response

type ImportResponse struct {
	Collection string `json:"collection"`
	Imported   int    `json:"imported"`
}
