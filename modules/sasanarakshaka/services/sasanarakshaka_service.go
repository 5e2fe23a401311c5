package services

import (
	"context"
	"encoding/json"

	"github.com/sasanalk/sasana-portal/modules/sasanarakshaka/domain"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/events"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

// SasanarakshakaService covers both council bodies and their member
// records; the two live on separate backend command endpoints.
type SasanarakshakaService struct {
	registry  *registry.Client
	publisher eventbus.EventBus
}

func NewSasanarakshakaService(client *registry.Client, publisher eventbus.EventBus) *SasanarakshakaService {
	return &SasanarakshakaService{
		registry:  client,
		publisher: publisher,
	}
}

func (s *SasanarakshakaService) List(ctx context.Context, payload map[string]any) (registry.ListResult, error) {
	return s.registry.List(ctx, domain.Domain, payload)
}

func (s *SasanarakshakaService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.registry.One(ctx, domain.Domain, map[string]any{"id": id})
}

func (s *SasanarakshakaService) GetValues(ctx context.Context, id string) (formwizard.Values, error) {
	raw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.FromRecord(raw)
}

func (s *SasanarakshakaService) Create(ctx context.Context, values formwizard.Values) (string, error) {
	raw, err := s.registry.Do(ctx, domain.Domain, registry.ActionCreate, map[string]any{
		"data": domain.ToPayload(values),
	})
	if err != nil {
		return "", err
	}
	id := registry.RecordID(raw)
	s.publish(ctx, domain.Domain, "CREATE", id)
	return id, nil
}

func (s *SasanarakshakaService) Update(ctx context.Context, id string, values formwizard.Values) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionUpdate, map[string]any{
		"id":   id,
		"data": domain.ToPayload(values),
	})
	if err != nil {
		return err
	}
	s.publish(ctx, domain.Domain, "UPDATE", id)
	return nil
}

func (s *SasanarakshakaService) Delete(ctx context.Context, id string) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}
	s.publish(ctx, domain.Domain, "DELETE", id)
	return nil
}

// ListMembers returns the member records of one council.
func (s *SasanarakshakaService) ListMembers(ctx context.Context, councilID string, payload map[string]any) (registry.ListResult, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["council_id"] = councilID
	return s.registry.List(ctx, domain.MemberDomain, payload)
}

func (s *SasanarakshakaService) AddMember(ctx context.Context, councilID string, member map[string]any) (string, error) {
	raw, err := s.registry.Do(ctx, domain.MemberDomain, registry.ActionCreate, map[string]any{
		"council_id": councilID,
		"data":       member,
	})
	if err != nil {
		return "", err
	}
	id := registry.RecordID(raw)
	s.publish(ctx, domain.MemberDomain, "CREATE", id)
	return id, nil
}

func (s *SasanarakshakaService) RemoveMember(ctx context.Context, memberID string) error {
	_, err := s.registry.Do(ctx, domain.MemberDomain, registry.ActionDelete, map[string]any{"id": memberID})
	if err != nil {
		return err
	}
	s.publish(ctx, domain.MemberDomain, "DELETE", memberID)
	return nil
}

func (s *SasanarakshakaService) publish(ctx context.Context, dom, action, id string) {
	username := ""
	if sess, err := composables.UseSession(ctx); err == nil {
		username = sess.Username
	}
	s.publisher.Publish(events.NewRecordEvent(dom, action, id, username))
}
