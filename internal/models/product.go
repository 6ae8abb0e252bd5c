package models

// CommandSet holds the four client-side activation commands generated for a
// product. Always derived from the activation key and the current server
// address; regenerated on every catalog build, never stored.
type CommandSet struct {
	InstallKey  string `json:"install_key"`
	SetServer   string `json:"set_server"`
	Activate    string `json:"activate"`
	CheckStatus string `json:"check_status"`
}

// Product represents the domain model for a single activatable product
// extracted from the KMS database, keyed by its display name
type Product struct {
	DisplayName string     `json:"display_name"`
	GVLK        string     `json:"gvlk"`
	Commands    CommandSet `json:"commands"`
}
