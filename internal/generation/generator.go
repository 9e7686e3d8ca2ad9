package generation

import (
	"context"

	"github.com/contentforge/contentforge-api/internal/domain"
)

// Generator defines the interface for producing articles from company and
// product facts. This interface is the boundary between the application
// core and the external generation engine; the core never implements it,
// it only stores and transports the results.
type Generator interface {
	// GenerateArticles produces the requested number of articles for the
	// given inputs. Implementations live outside this repository.
	GenerateArticles(
		ctx context.Context,
		companyInfo, productInfo string,
		articleCount int,
	) ([]domain.GeneratedArticle, error)
}
