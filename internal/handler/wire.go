package handler

import "github.com/google/wire"

// Handlers aggregates all HTTP handlers for router registration.
type Handlers struct {
	Purchase *PurchaseHandler
	Push     *PushHandler
}

func NewHandlers(purchase *PurchaseHandler, push *PushHandler) *Handlers {
	return &Handlers{
		Purchase: purchase,
		Push:     push,
	}
}

// ProviderSet is handler providers.
var ProviderSet = wire.NewSet(
	NewPurchaseHandler,
	NewPushHandler,
	NewHandlers,
)
