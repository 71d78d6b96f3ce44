package search

import domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"

// Catalog is the part of the snapshot a search reads.
type Catalog interface {
	Records() []domcareer.Record
	HasColumn(name string) bool
}
