package redis

import (
	"context"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
)

type changePublisher struct {
	streams repository.StreamRepository
	stream  string
}

// NewChangePublisher публикует события изменений коллекций в стрим stream
func NewChangePublisher(streams repository.StreamRepository, stream string) repository.ChangePublisher {
	return &changePublisher{
		streams: streams,
		stream:  stream,
	}
}

func (p *changePublisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	return p.streams.PublishToStream(ctx, p.stream, event)
}
