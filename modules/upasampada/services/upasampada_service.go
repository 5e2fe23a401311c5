package services

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/sasanalk/sasana-portal/modules/upasampada/domain"
	"github.com/sasanalk/sasana-portal/pkg/composables"
	"github.com/sasanalk/sasana-portal/pkg/eventbus"
	"github.com/sasanalk/sasana-portal/pkg/events"
	"github.com/sasanalk/sasana-portal/pkg/formwizard"
	"github.com/sasanalk/sasana-portal/pkg/registry"
)

// ErrStageTwoNotReady rejects a stage-two save for a record whose
// stage-one certificate has not been printed yet.
var ErrStageTwoNotReady = errors.New("stage one certificate not printed")

type UpasampadaService struct {
	registry  *registry.Client
	publisher eventbus.EventBus
}

func NewUpasampadaService(client *registry.Client, publisher eventbus.EventBus) *UpasampadaService {
	return &UpasampadaService{
		registry:  client,
		publisher: publisher,
	}
}

func (s *UpasampadaService) List(ctx context.Context, payload map[string]any) (registry.ListResult, error) {
	return s.registry.List(ctx, domain.Domain, payload)
}

func (s *UpasampadaService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	return s.registry.One(ctx, domain.Domain, map[string]any{"id": id})
}

func (s *UpasampadaService) GetRecord(ctx context.Context, id string) (domain.Record, error) {
	raw, err := s.Get(ctx, id)
	if err != nil {
		return domain.Record{}, err
	}
	return domain.DecodeRecord(raw)
}

func (s *UpasampadaService) GetValues(ctx context.Context, id string) (formwizard.Values, error) {
	raw, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.FromRecord(raw)
}

// SaveStageOne files a new application or resubmits an existing pending
// one; either way the backend keeps the record in the stage-one track.
func (s *UpasampadaService) SaveStageOne(ctx context.Context, id string, values formwizard.Values) (string, error) {
	payload := map[string]any{"data": domain.StageOnePayload(values)}
	if id != "" {
		payload["id"] = id
	}
	raw, err := s.registry.Do(ctx, domain.Domain, registry.ActionSaveStageOne, payload)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = registry.RecordID(raw)
	}
	s.publish(ctx, "SAVE_STAGE_ONE", id)
	return id, nil
}

// SaveStageTwo attaches ceremony details. The record must already have a
// printed stage-one certificate; the gate is re-checked here so a stale
// wizard cannot slip a premature save through.
func (s *UpasampadaService) SaveStageTwo(ctx context.Context, id string, values formwizard.Values) error {
	rec, err := s.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if !domain.StageTwoReady(rec.Status) {
		return ErrStageTwoNotReady
	}
	_, err = s.registry.Do(ctx, domain.Domain, registry.ActionSaveStageTwo, map[string]any{
		"id":   id,
		"data": domain.StageTwoPayload(values),
	})
	if err != nil {
		return err
	}
	s.publish(ctx, "SAVE_STAGE_TWO", id)
	return nil
}

// MarkS1Printed records that the stage-one certificate went to print,
// unlocking stage two.
func (s *UpasampadaService) MarkS1Printed(ctx context.Context, id string) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionMarkS1Printed, map[string]any{"id": id})
	if err != nil {
		return err
	}
	s.publish(ctx, "MARK_S1_PRINTED", id)
	return nil
}

func (s *UpasampadaService) Delete(ctx context.Context, id string) error {
	_, err := s.registry.Do(ctx, domain.Domain, registry.ActionDelete, map[string]any{"id": id})
	if err != nil {
		return err
	}
	s.publish(ctx, "DELETE", id)
	return nil
}

func (s *UpasampadaService) publish(ctx context.Context, action, id string) {
	username := ""
	if sess, err := composables.UseSession(ctx); err == nil {
		username = sess.Username
	}
	s.publisher.Publish(events.NewRecordEvent(domain.Domain, action, id, username))
}
