package handler

import (
	"context"
	"errors"

	"emotion-bot/project/dto"
)

// ===== IngestService スタブ =====

type stubIngest struct {
	challengeOK bool
	err         error
	received    []*dto.SlackEventRequest
}

func (s *stubIngest) VerifyChallenge(req *dto.SlackEventRequest) bool {
	return s.challengeOK
}

func (s *stubIngest) OnMessageEvent(ctx context.Context, req *dto.SlackEventRequest) error {
	if s.err != nil {
		return s.err
	}
	s.received = append(s.received, req)
	return nil
}

// ===== ScoringService スタブ =====

type stubScoring struct {
	err     error
	batches []*dto.ScoreBatchPayload
}

func (s *stubScoring) ProcessBatch(ctx context.Context, batch *dto.ScoreBatchPayload) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, batch)
	return nil
}

// ===== DailyService スタブ =====

type stubDaily struct {
	err   error
	calls int
}

func (s *stubDaily) RunDaily(ctx context.Context) error {
	s.calls++
	return s.err
}

// ===== ArchiveService スタブ =====

type stubArchive struct {
	exportErr   error
	exportCalls int

	objectErr error
	events    []dto.StorageObjectEvent
}

func (s *stubArchive) StartExport(ctx context.Context) error {
	s.exportCalls++
	return s.exportErr
}

func (s *stubArchive) OnObjectCreated(ctx context.Context, event dto.StorageObjectEvent) error {
	if s.objectErr != nil {
		return s.objectErr
	}
	s.events = append(s.events, event)
	return nil
}

var errBoom = errors.New("boom")
