package generators

import "errors"

// Configuration errors. They are returned before any I/O and never retried.
var (
	ErrNilStore      = errors.New("generators: nil store")
	ErrNilConfig     = errors.New("generators: nil config")
	ErrNilFaker      = errors.New("generators: nil faker")
	ErrNegativeCount = errors.New("generators: negative count")
	ErrInvalidEntity = errors.New("generators: invalid entity")
)
