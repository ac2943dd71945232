package events

import (
	"context"
	"io"

	"github.com/oviedojeepclub/clubhub/internal/event"
	"github.com/oviedojeepclub/clubhub/internal/webserver/controller/auth"
)

type eventStore interface {
	Events(ctx context.Context) ([]event.Event, error)
	SaveEvents(ctx context.Context, events []event.Event) error
	SaveCoverImage(ctx context.Context, name string, contents io.Reader) (string, error)
}

type pageEvents interface {
	PageEvents(ctx context.Context, accessToken string) ([]event.Event, error)
}

type Controller struct {
	store    eventStore
	facebook pageEvents
	flow     auth.CodeFlow
}

func NewController(store eventStore, facebook pageEvents, flow auth.CodeFlow) *Controller {
	return &Controller{
		store:    store,
		facebook: facebook,
		flow:     flow,
	}
}
