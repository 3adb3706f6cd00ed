package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmoreno/padel-showdown/models"
	"github.com/vmoreno/padel-showdown/repositories"
	"github.com/vmoreno/padel-showdown/standings"
	"github.com/vmoreno/padel-showdown/storage"
)

// SnapshotService exports and imports full tournament state documents and
// optionally backs them up to object storage. Export then Import must
// reproduce identical standings and match history.
type SnapshotService interface {
	Export(ctx context.Context, id string) (*models.Snapshot, error)
	Import(ctx context.Context, snap *models.Snapshot) (*models.Tournament, error)
	Backup(ctx context.Context, id string) (*storage.UploadResult, error)
}

type snapshotService struct {
	store    repositories.TournamentStore
	uploader storage.FileUploader
	now      func() time.Time
}

// NewSnapshotService wires the store and the backup uploader. A nil
// uploader disables Backup but leaves Export/Import fully functional.
func NewSnapshotService(store repositories.TournamentStore, uploader storage.FileUploader) SnapshotService {
	return &snapshotService{
		store:    store,
		uploader: uploader,
		now:      time.Now,
	}
}

func (s *snapshotService) Export(ctx context.Context, id string) (*models.Snapshot, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	snap := &models.Snapshot{
		ID:           t.ID,
		Name:         t.Name,
		Mode:         t.Mode,
		CourtPolicy:  t.CourtPolicy,
		Courts:       t.Courts,
		CurrentRound: t.CurrentRound,
		AllowByes:    t.AllowByes,
		Finalized:    t.Finalized,
		NextMatchID:  t.NextMatchID,
	}

	snap.Competitors = make([]models.Competitor, 0, len(t.Order))
	for _, name := range t.Order {
		if c, ok := t.Competitors[name]; ok {
			snap.Competitors = append(snap.Competitors, *c)
		}
	}
	snap.Matches = make([]models.Match, 0, len(t.Matches))
	for _, m := range t.Matches {
		snap.Matches = append(snap.Matches, *m)
	}
	return snap, nil
}

func (s *snapshotService) Import(ctx context.Context, snap *models.Snapshot) (*models.Tournament, error) {
	if snap == nil || snap.ID == "" || snap.Name == "" {
		return nil, fmt.Errorf("%w: id and name are required", ErrSnapshotInvalid)
	}
	if snap.Mode != models.ModeAdjacent && snap.Mode != models.ModeNoRepeat {
		return nil, fmt.Errorf("%w: pairing mode %q", ErrSnapshotInvalid, snap.Mode)
	}
	if snap.CourtPolicy != models.CourtCycle && snap.CourtPolicy != models.CourtStrict {
		return nil, fmt.Errorf("%w: court policy %q", ErrSnapshotInvalid, snap.CourtPolicy)
	}

	t := models.NewTournament(snap.ID, snap.Name, snap.Mode, snap.CourtPolicy, snap.Courts, snap.AllowByes)
	t.CurrentRound = snap.CurrentRound
	t.Finalized = snap.Finalized

	for i := range snap.Competitors {
		c := snap.Competitors[i]
		if c.Name == "" {
			return nil, fmt.Errorf("%w: competitor without a name", ErrSnapshotInvalid)
		}
		if _, exists := t.Competitors[c.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate competitor %q", ErrSnapshotInvalid, c.Name)
		}
		clean := models.Competitor{Name: c.Name, Members: c.Members}
		t.Competitors[c.Name] = &clean
		t.Order = append(t.Order, c.Name)
	}

	maxID := 0
	for i := range snap.Matches {
		m := snap.Matches[i]
		if _, ok := t.Competitors[m.SideA]; !ok {
			return nil, fmt.Errorf("%w: match %d references unknown competitor %q", ErrSnapshotInvalid, m.ID, m.SideA)
		}
		if !m.Bye {
			if _, ok := t.Competitors[m.SideB]; !ok {
				return nil, fmt.Errorf("%w: match %d references unknown competitor %q", ErrSnapshotInvalid, m.ID, m.SideB)
			}
		}
		if m.Played != (m.ScoreA != nil && m.ScoreB != nil) {
			return nil, fmt.Errorf("%w: match %d played flag disagrees with scores", ErrSnapshotInvalid, m.ID)
		}
		t.Matches = append(t.Matches, &m)
		if m.ID > maxID {
			maxID = m.ID
		}
	}
	t.NextMatchID = maxID + 1
	if snap.NextMatchID > t.NextMatchID {
		t.NextMatchID = snap.NextMatchID
	}

	// Snapshot stats are advisory; the log is the source of truth.
	standings.Compute(t.Competitors, t.Matches)

	if err := s.store.Create(ctx, t); err != nil {
		return nil, mapStoreError(err)
	}
	return t.Clone(), nil
}

func (s *snapshotService) Backup(ctx context.Context, id string) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrBackupUnavailable
	}

	snap, err := s.Export(ctx, id)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot for tournament %s: %w", id, err)
	}

	key := fmt.Sprintf("snapshots/%s/%d.json", id, s.now().Unix())
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot for tournament %s: %w", id, err)
	}
	return result, nil
}
