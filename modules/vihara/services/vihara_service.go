package services

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sasanalk/sasana-portal/modules/vihara/domain"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/events"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

type ViharaService struct {
	registry  *registry.Client
	publisher eventbus.EventBus
}

func NewViharaService(client *registry.Client, publisher eventbus.EventBus) *ViharaService {
	return &ViharaService{
		registry:  client,
		publisher: publisher,
	}
}

func (s *ViharaService) List(ctx context.Context, payload map[string]any) (registry.ListResult, error) {
	return s.registry.List(ctx, domain.Domain, payload)
}

func (s *ViharaService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.registry.One(ctx, domain.Domain, map[string]any{"id": id})
}

func (s *ViharaService) GetValues(ctx context.Context, id string) (formwizard.Values, error) {
	raw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.FromRecord(raw)
}

func (s *ViharaService) Create(ctx context.Context, values formwizard.Values) (string, error) {
	raw, err := s.registry.Do(ctx, domain.Domain, registry.ActionCreate, map[string]any{
		"data": domain.ToPayload(values),
	})
	if err != nil {
		return "", err
	}
	id := registry.RecordID(raw)
	s.publish(ctx, "CREATE", id)
	return id, nil
}

func (s *ViharaService) Update(ctx context.Context, id string, values formwizard.Values) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionUpdate, map[string]any{
		"id":   id,
		"data": domain.ToPayload(values),
	})
	if err != nil {
		return err
	}
	s.publish(ctx, "UPDATE", id)
	return nil
}

func (s *ViharaService) Delete(ctx context.Context, id string) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}
	s.publish(ctx, "DELETE", id)
	return nil
}

func (s *ViharaService) UploadDocument(ctx context.Context, id, filename string, file io.Reader) error {
	return s.registry.UploadDocument(ctx, domain.Domain, id, filename, file)
}

func (s *ViharaService) publish(ctx context.Context, action, id string) {
	username := ""
	if sess, err := composables.UseSession(ctx); err == nil {
		username = sess.Username
	}
	s.publisher.Publish(events.NewRecordEvent(domain.Domain, action, id, username))
}
