package server

import (
	"context"

	"github.com/mito-shogi/wars-kif-service/internal/poller"
)

// Poller is the history poller as seen by the server. Status feeds /ready.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

var _ Poller = (*poller.Poller)(nil)
