package metrics

import "github.com/kuhyx/kinoplan/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Listen is the address of the Prometheus scrape endpoint. Empty
	// disables the HTTP server, which is the default for one-shot runs.
	Listen string `json:"listen"`
}
