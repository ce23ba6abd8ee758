package config

// FleetConfig points the service at its vehicle inventory.
type FleetConfig struct {
	// Path is a YAML fleet file loaded into the registry at startup.
	// Empty starts with an empty registry.
	Path string `json:"path"`
}
