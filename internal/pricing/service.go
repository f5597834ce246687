package pricing

import (
	"context"

	"github.com/SHADABANWAR30/jabir-freshtouch-bot/internal/lang"
)

// Service ties the live catalog fetch to the responder. The catalog is
// rebuilt on every pricing request so replies never serve stale data.
type Service struct {
	client    *Client
	responder *Responder
}

func NewService(client *Client, responder *Responder) *Service {
	return &Service{client: client, responder: responder}
}

func (s *Service) Respond(ctx context.Context, queryText, originalText string, language lang.Language) string {
	catalog := s.client.FetchCatalog(ctx)
	return s.responder.Respond(queryText, originalText, catalog, language)
}
