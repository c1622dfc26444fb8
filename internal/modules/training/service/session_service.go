package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"skidlogg/internal/modules/training/domain"
	trainingout "skidlogg/internal/modules/training/port/out"
	"skidlogg/internal/platform/clock"
	apperrors "skidlogg/internal/platform/errors"
	"skidlogg/internal/platform/id"
)

// SessionService owns the session collection. Every mutation is a whole
// load, change, save cycle against the blob store.
type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     trainingout.BlobStore
	projector trainingout.SessionIndexProjector
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store trainingout.BlobStore, projector trainingout.SessionIndexProjector) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store, projector: projector}
}

func (s *SessionService) CurrentSeason() domain.Season {
	return domain.CurrentSeason(s.clock)
}

func (s *SessionService) Location() string {
	return s.store.Location()
}

// Load never fails. An unreadable blob reads as an empty collection and bad
// records are left out; the report says how many.
func (s *SessionService) Load(ctx context.Context) ([]domain.Session, LoadReport) {
	sessions, report, err := s.load(ctx)
	if err != nil {
		log.WithError(err).WithField("location", s.store.Location()).Warn("read sessions failed, showing none")
	}
	return sessions, report
}

// load is Load for callers that write back: a failed read must stop them,
// or the save would replace the stored log with an empty one.
func (s *SessionService) load(ctx context.Context) ([]domain.Session, LoadReport, error) {
	data, err := s.store.Read(ctx)
	if err != nil {
		return nil, LoadReport{ReadError: err.Error()}, fmt.Errorf("read sessions: %w", err)
	}
	sessions, report := decodeSessions(data, s.idGen.New)
	entry := log.WithFields(log.Fields{
		"location": s.store.Location(),
		"total":    report.Total,
		"kept":     report.Kept,
	})
	if report.Corrupt {
		entry.Warn("stored sessions are not a list, starting empty")
	} else if report.Dropped > 0 {
		entry.WithField("dropped", report.Dropped).Warn("dropped corrupt session records")
	} else {
		entry.Debug("sessions loaded")
	}
	return sessions, report, nil
}

// Save replaces the stored collection and refreshes the index.
func (s *SessionService) Save(ctx context.Context, sessions []domain.Session) error {
	data, err := encodeSessions(sessions)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, data); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	if err := s.project(ctx, sessions); err != nil {
		log.WithError(err).Warn("session index is stale, run reindex")
	}
	return nil
}

func (s *SessionService) Create(ctx context.Context, input domain.SessionInput) (domain.Session, error) {
	payload, err := domain.ParseInput(input)
	if err != nil {
		return domain.Session{}, err
	}
	sessions, _, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	session := payload.Apply(s.idGen.New())
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	sessions = append(sessions, session)
	if err := s.Save(ctx, sessions); err != nil {
		return domain.Session{}, err
	}
	log.WithFields(log.Fields{"id": session.ID, "style": session.Style, "season": session.Season}).Info("session created")
	return session, nil
}

// Update replaces every field but the id.
func (s *SessionService) Update(ctx context.Context, sessionID string, input domain.SessionInput) (domain.Session, error) {
	payload, err := domain.ParseInput(input)
	if err != nil {
		return domain.Session{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	sessions, _, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		sessions[i] = payload.Apply(sessionID)
		if err := s.Save(ctx, sessions); err != nil {
			return domain.Session{}, err
		}
		log.WithField("id", sessionID).Info("session updated")
		return sessions[i], nil
	}
	return domain.Session{}, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
}

// Delete removes the session if it exists. Nothing is written otherwise.
func (s *SessionService) Delete(ctx context.Context, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	sessions, _, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.ID != sessionID {
			kept = append(kept, session)
		}
	}
	if len(kept) == len(sessions) {
		return false, nil
	}
	if err := s.Save(ctx, kept); err != nil {
		return false, err
	}
	log.WithField("id", sessionID).Info("session deleted")
	return true, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	sessions, _, err := s.load(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, session := range sessions {
		if session.ID == strings.TrimSpace(sessionID) {
			return session, nil
		}
	}
	return domain.Session{}, fmt.Errorf("session %s: %w", sessionID, apperrors.ErrNotFound)
}

// Reindex rebuilds the index from the blob and returns the session count.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	sessions, _, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.project(ctx, sessions); err != nil {
		return 0, err
	}
	return len(sessions), nil
}

func (s *SessionService) project(ctx context.Context, sessions []domain.Session) error {
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Reset(ctx); err != nil {
		return fmt.Errorf("reset session index: %w", err)
	}
	for _, session := range sessions {
		if err := s.projector.UpsertSession(ctx, session); err != nil {
			return fmt.Errorf("index session %s: %w", session.ID, err)
		}
	}
	return nil
}
