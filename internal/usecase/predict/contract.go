package predict

import domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"

// Catalog supplies the roles to rank.
type Catalog interface {
	Records() []domcareer.Record
}
