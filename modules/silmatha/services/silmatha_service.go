package services

import (
	"context"
	"encoding/json"
	"io"

	"github.com/sasanalk/sasana-portal/modules/silmatha/domain"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/events"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

type SilmathaService struct {
	registry  *registry.Client
	publisher eventbus.EventBus
}

func NewSilmathaService(client *registry.Client, publisher eventbus.EventBus) *SilmathaService {
	return &SilmathaService{
		registry:  client,
		publisher: publisher,
	}
}

func (s *SilmathaService) List(ctx context.Context, payload map[string]any) (registry.ListResult, error) {
	return s.registry.List(ctx, domain.Domain, payload)
}

func (s *SilmathaService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.registry.One(ctx, domain.Domain, map[string]any{"id": id})
}

func (s *SilmathaService) GetValues(ctx context.Context, id string) (formwizard.Values, error) {
	raw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.FromRecord(raw)
}

func (s *SilmathaService) Create(ctx context.Context, values formwizard.Values) (string, error) {
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

func (s *SilmathaService) Update(ctx context.Context, id string, values formwizard.Values) error {
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

func (s *SilmathaService) Delete(ctx context.Context, id string) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}
	s.publish(ctx, "DELETE", id)
	return nil
}

func (s *SilmathaService) UploadDocument(ctx context.Context, id, filename string, file io.Reader) error {
	return s.registry.UploadDocument(ctx, domain.Domain, id, filename, file)
}

func (s *SilmathaService) publish(ctx context.Context, action, id string) {
	username := ""
	if sess, err := composables.UseSession(ctx); err == nil {
		username = sess.Username
	}
	s.publisher.Publish(events.NewRecordEvent(domain.Domain, action, id, username))
}
