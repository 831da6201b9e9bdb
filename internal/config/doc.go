// Package config provides centralized configuration management for the
// healthcare records pipeline. It handles loading configuration from multiple
// sources and owns every filesystem path the pipeline reads or writes.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml in the working directory
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern MEDCLI_* for namespacing:
//
//	MEDCLI_BASE_DIR=/srv/medcli
//	MEDCLI_LOGGING_LEVEL=debug
//	MEDCLI_LOGGING_FORMAT=json
//	MEDCLI_LOGGING_OUTPUT=both
//
// # Paths
//
// The Paths struct is the single source of truth for file locations. Code
// never builds an output path by hand; it asks Paths for it. This keeps the
// on-disk layout (data/, outputs/clean/, outputs/metrics/, outputs/figures/,
// logs/) in exactly one place.
package config
