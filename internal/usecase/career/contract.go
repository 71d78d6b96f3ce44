package career

import domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"

// Catalog is the read-only view of the loaded snapshot.
type Catalog interface {
	Records() []domcareer.Record
	Columns() []string
	Lookup(role string) (domcareer.Record, bool)
}
