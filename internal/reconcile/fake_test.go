package reconcile

import (
	"context"
	"errors"

	"github.com/neonbeat/nb-admin/clients/neonbeat"
	"github.com/neonbeat/nb-admin/internal/models"
)

// FakeGateway implements Gateway with overridable behavior per test.
type FakeGateway struct {
	PhaseFunc       func(ctx context.Context) (neonbeat.PhaseStatus, error)
	SongFunc        func(ctx context.Context) (neonbeat.SongStatus, error)
	GameFunc        func(ctx context.Context, id string) (models.Game, error)
	TeamsFunc       func(ctx context.Context) ([]models.Team, error)
	RevealFieldFunc func(ctx context.Context, req neonbeat.FieldRevealRequest) (neonbeat.FieldRevealResult, error)

	TeamsCalls int
}

func (f *FakeGateway) Phase(ctx context.Context) (neonbeat.PhaseStatus, error) {
	if f.PhaseFunc != nil {
		return f.PhaseFunc(ctx)
	}
	return neonbeat.PhaseStatus{Phase: models.PhaseIdle}, nil
}

func (f *FakeGateway) Song(ctx context.Context) (neonbeat.SongStatus, error) {
	if f.SongFunc != nil {
		return f.SongFunc(ctx)
	}
	return neonbeat.SongStatus{}, nil
}

func (f *FakeGateway) Game(ctx context.Context, id string) (models.Game, error) {
	if f.GameFunc != nil {
		return f.GameFunc(ctx, id)
	}
	return models.Game{}, errors.New("no game configured")
}

func (f *FakeGateway) Teams(ctx context.Context) ([]models.Team, error) {
	f.TeamsCalls++
	if f.TeamsFunc != nil {
		return f.TeamsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeGateway) RevealField(ctx context.Context, req neonbeat.FieldRevealRequest) (neonbeat.FieldRevealResult, error) {
	if f.RevealFieldFunc != nil {
		return f.RevealFieldFunc(ctx, req)
	}
	return neonbeat.FieldRevealResult{}, errors.New("no reveal configured")
}
