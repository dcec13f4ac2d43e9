package service

import (
	"log/slog"

	"tickethawk.app/ingest/common/llm"
	"tickethawk.app/ingest/internal/mapper"
	"tickethawk.app/ingest/internal/queue"
)

// Services bundles the service layer for handler wiring.
type Services struct {
	Ingest   IngestService
	Query    QueryService
	Registry RegistryService
	Suggest  SuggestService
}

// NewServices wires the service layer. llmClient may be nil, in which case
// keyword suggestion reports itself disabled.
func NewServices(stores StoreProvider, txRunner TxRunner, feed queue.Producer, llmClient llm.Client, logger *slog.Logger) *Services {
	return &Services{
		Ingest:   NewIngestService(stores, txRunner, mapper.NewWhatsAppMapper(), feed, logger),
		Query:    NewQueryService(stores),
		Registry: NewRegistryService(stores),
		Suggest:  NewSuggestService(llmClient),
	}
}
