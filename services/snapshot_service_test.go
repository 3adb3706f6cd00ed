package services

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmoreno/padel-showdown/models"
	"github.com/vmoreno/padel-showdown/repositories"
	"github.com/vmoreno/padel-showdown/storage"
)

type fakeUploader struct {
	key         string
	contentType string
	payload     []byte
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.key = key
	f.contentType = contentType
	f.payload = body
	return &storage.UploadResult{Key: key, Location: "https://backups.example/" + key}, nil
}

func (f *fakeUploader) Delete(context.Context, string) error { return nil }

func (f *fakeUploader) GetPublicURL(key string) string { return "https://backups.example/" + key }

// playedTournament builds a tournament with four competitors, one generated
// round and two recorded results.
func playedTournament(t *testing.T) (repositories.TournamentStore, TournamentService, string) {
	t.Helper()
	store, svc := newFixture()
	ctx := context.Background()

	tour := createTournament(t, svc, CreateTournamentInput{Name: "Open", Courts: []string{"Centre"}}, "A", "B", "C", "D")
	matches, err := svc.GenerateRound(ctx, tour.ID)
	require.NoError(t, err)
	_, err = svc.RecordResult(ctx, tour.ID, matches[0].ID, 6, 2)
	require.NoError(t, err)
	_, err = svc.RecordResult(ctx, tour.ID, matches[1].ID, 4, 4)
	require.NoError(t, err)
	return store, svc, tour.ID
}

func TestExportImportRoundTrip(t *testing.T) {
	store, svc, id := playedTournament(t)
	ctx := context.Background()

	exporter := NewSnapshotService(store, nil)
	exported, err := exporter.Export(ctx, id)
	require.NoError(t, err)
	require.Len(t, exported.Competitors, 4)
	require.Len(t, exported.Matches, 2)

	// Import into a fresh store and compare what the round trip must
	// preserve: ranking and the match log.
	otherStore := repositories.NewMemoryTournamentStore()
	otherSvc := NewTournamentService(otherStore, nil, rand.New(rand.NewSource(7)))
	importer := NewSnapshotService(otherStore, nil)

	restored, err := importer.Import(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, id, restored.ID)
	assert.Equal(t, 1, restored.CurrentRound)

	want, err := svc.Leaderboard(ctx, id)
	require.NoError(t, err)
	got, err := otherSvc.Leaderboard(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	wantMatches, err := svc.MatchesForRound(ctx, id, 1)
	require.NoError(t, err)
	gotMatches, err := otherSvc.MatchesForRound(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, wantMatches, gotMatches)
}

func TestImportRejectsInvalidSnapshots(t *testing.T) {
	store := repositories.NewMemoryTournamentStore()
	svc := NewSnapshotService(store, nil)
	ctx := context.Background()

	base := func() *models.Snapshot {
		return &models.Snapshot{
			ID:          "t1",
			Name:        "Open",
			Mode:        models.ModeAdjacent,
			CourtPolicy: models.CourtCycle,
			Competitors: []models.Competitor{{Name: "A"}, {Name: "B"}},
		}
	}

	cases := []struct {
		name   string
		mutate func(*models.Snapshot)
	}{
		{"missing id", func(s *models.Snapshot) { s.ID = "" }},
		{"missing name", func(s *models.Snapshot) { s.Name = "" }},
		{"bad mode", func(s *models.Snapshot) { s.Mode = "swiss" }},
		{"bad policy", func(s *models.Snapshot) { s.CourtPolicy = "loose" }},
		{"duplicate competitor", func(s *models.Snapshot) {
			s.Competitors = append(s.Competitors, models.Competitor{Name: "A"})
		}},
		{"unknown side", func(s *models.Snapshot) {
			s.Matches = []models.Match{{ID: 1, Round: 1, SideA: "A", SideB: "Z"}}
		}},
		{"played without scores", func(s *models.Snapshot) {
			s.Matches = []models.Match{{ID: 1, Round: 1, SideA: "A", SideB: "B", Played: true}}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := base()
			tc.mutate(snap)
			_, err := svc.Import(context.Background(), snap)
			assert.ErrorIs(t, err, ErrSnapshotInvalid)
		})
	}

	_, err := svc.Import(ctx, nil)
	assert.ErrorIs(t, err, ErrSnapshotInvalid)
}

func TestImportConflictsWithExistingTournament(t *testing.T) {
	store, _, id := playedTournament(t)
	svc := NewSnapshotService(store, nil)
	ctx := context.Background()

	snap, err := svc.Export(ctx, id)
	require.NoError(t, err)

	_, err = svc.Import(ctx, snap)
	assert.ErrorIs(t, err, ErrTournamentConflict)
}

func TestImportRebuildsStatsFromLog(t *testing.T) {
	store := repositories.NewMemoryTournamentStore()
	svc := NewSnapshotService(store, nil)

	six, two := 6, 2
	snap := &models.Snapshot{
		ID:          "t1",
		Name:        "Open",
		Mode:        models.ModeAdjacent,
		CourtPolicy: models.CourtCycle,
		// Stored stats are stale on purpose; the log wins.
		Competitors: []models.Competitor{
			{Name: "A", Points: 99},
			{Name: "B", Points: 42},
		},
		Matches: []models.Match{
			{ID: 1, Round: 1, SideA: "A", SideB: "B", ScoreA: &six, ScoreB: &two, Played: true},
		},
		CurrentRound: 1,
	}

	restored, err := svc.Import(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, models.PointsWin, restored.Competitors["A"].Points)
	assert.Equal(t, 0, restored.Competitors["B"].Points)
	assert.Equal(t, 2, restored.NextMatchID)
}

func TestBackupUnavailableWithoutUploader(t *testing.T) {
	store, _, id := playedTournament(t)
	svc := NewSnapshotService(store, nil)

	_, err := svc.Backup(context.Background(), id)
	assert.ErrorIs(t, err, ErrBackupUnavailable)
}

func TestBackupUploadsSnapshotJSON(t *testing.T) {
	store, _, id := playedTournament(t)
	uploader := &fakeUploader{}
	svc := NewSnapshotService(store, uploader).(*snapshotService)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }

	result, err := svc.Backup(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/"+id+"/1700000000.json", result.Key)
	assert.Equal(t, "application/json", uploader.contentType)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(uploader.payload, &snap))
	assert.Equal(t, id, snap.ID)
	assert.Len(t, snap.Competitors, 4)
}
