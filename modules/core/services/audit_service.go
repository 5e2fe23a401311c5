package services

import (
	"github.com/sirupsen/logrus"

	"github.com/sasanalk/sasana-portal/pkg/events"
)

// AuditService subscribes to record events and writes a structured audit
// trail through the application logger. Validation failures never reach
// it; only completed backend mutations do.
type AuditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) *AuditService {
	return &AuditService{log: log}
}

func (s *AuditService) OnRecordEvent(ev *events.RecordEvent) {
	s.log.WithFields(logrus.Fields{
		"domain":   ev.Domain,
		"action":   ev.Action,
		"recordID": ev.RecordID,
		"username": ev.Username,
		"at":       ev.At,
	}).Info("registration record changed")
}
