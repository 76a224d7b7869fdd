package recommend

// CatalogLoadError is the one hard failure in the engine: the catalog source
// could not produce items. The service never retries internally and never
// substitutes an empty catalog.
type CatalogLoadError struct {
	Err error
}

func (e *CatalogLoadError) Error() string {
	return "catalog load failed: " + e.Err.Error()
}

func (e *CatalogLoadError) Unwrap() error { return e.Err }
