package congress

// feedRecord es una fila de House o Senate Stock Watcher. Ambos feeds
// comparten campos salvo el nombre del legislador y el formato de fechas.
type feedRecord struct {
	TransactionDate  string `json:"transaction_date"`
	DisclosureDate   string `json:"disclosure_date"`
	Amount           string `json:"amount"`
	Type             string `json:"type"`
	Party            string `json:"party"`
	State            string `json:"state"`
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	PTRLink          string `json:"ptr_link"`
	Representative   string `json:"representative"` // House
	Senator          string `json:"senator"`        // Senate
}
