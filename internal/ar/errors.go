package ar

import "fmt"

// ConfigurationError reports a bad or missing marker reference image.
// Recoverable: the session runs with an empty target set, so tracking is
// effectively disabled rather than the process crashing.
type ConfigurationError struct {
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tracking configuration: reference image %q: %v", e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AssetError reports a missing or invalid texture/model asset. Recoverable:
// the entity that needed the asset is skipped.
type AssetError struct {
	Name string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %q: %v", e.Name, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }
