package mongostore

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/db/models"
)

func TestOpen_EmptyURI(t *testing.T) {
	_, err := Open(context.Background(), config.DB{Driver: config.DriverMongo})
	require.ErrorIs(t, err, ErrURIEmpty)
}

func TestClientOptions_ObjectIDAsHexString(t *testing.T) {
	opts := clientOptions("mongodb://localhost:27017")
	require.NotNil(t, opts.BSONOptions)
	assert.True(t, opts.BSONOptions.ObjectIDAsHexString)
}

func TestIDFilter(t *testing.T) {
	oid := bson.NewObjectID()

	tests := []struct {
		name string
		id   string
		want bson.D
	}{
		{
			name: "uuid",
			id:   "0b6f1c9e-3d2a-4c4f-9a53-5f0d7c1e2b8a",
			want: bson.D{{Key: "_id", Value: "0b6f1c9e-3d2a-4c4f-9a53-5f0d7c1e2b8a"}},
		},
		{
			name: "object id hex",
			id:   oid.Hex(),
			want: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{oid.Hex(), oid}}}}},
		},
		{
			name: "not quite hex",
			id:   "zzzzzzzzzzzzzzzzzzzzzzzz",
			want: bson.D{{Key: "_id", Value: "zzzzzzzzzzzzzzzzzzzzzzzz"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idFilter(tt.id))
		})
	}
}

func TestDecode_ObjectIDAsString(t *testing.T) {
	oid := bson.NewObjectID()
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: oid},
		{Key: "title", Value: "legacy"},
		{Key: "image_url", Value: "https://cdn.example.com/l.png"},
	})
	require.NoError(t, err)

	dec := bson.NewDecoder(bson.NewDocumentReader(bytes.NewReader(raw)))
	dec.ObjectIDAsHexString()

	var p models.Project
	require.NoError(t, dec.Decode(&p))
	assert.Equal(t, oid.Hex(), p.ID)
	assert.Equal(t, "legacy", p.Title)
}

// startMongo runs a throwaway mongod. Skipped when docker is not reachable.
func startMongo(t *testing.T) *Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	s, err := Open(ctx, config.DB{Driver: config.DriverMongo, URI: uri, Name: "folio_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })

	return s
}

func TestStore_Integration(t *testing.T) {
	s := startMongo(t)
	ctx := context.Background()

	t.Run("projects", func(t *testing.T) {
		p := &models.Project{Title: "folio", Description: "this site", ImageURL: "https://cdn.example.com/f.png"}
		require.NoError(t, s.CreateProject(ctx, p))
		require.NotEmpty(t, p.ID)

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Title, got.Title)

		projects, err := s.ListProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 1)

		require.NoError(t, s.DeleteProject(ctx, p.ID))
		require.ErrorIs(t, s.DeleteProject(ctx, p.ID), db.ErrNotFound)

		_, err = s.GetProject(ctx, p.ID)
		require.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("object id documents", func(t *testing.T) {
		oid := bson.NewObjectID()
		_, err := s.projects.InsertOne(ctx, bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "legacy"},
			{Key: "created_at", Value: time.Now().UTC()},
		})
		require.NoError(t, err)

		projects, err := s.ListProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, oid.Hex(), projects[0].ID)

		got, err := s.GetProject(ctx, oid.Hex())
		require.NoError(t, err)
		assert.Equal(t, "legacy", got.Title)

		require.NoError(t, s.DeleteProject(ctx, oid.Hex()))
		_, err = s.GetProject(ctx, oid.Hex())
		require.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("messages newest first", func(t *testing.T) {
		now := time.Now().UTC()
		require.NoError(t, s.CreateMessage(ctx, &models.Message{Name: "old", SubmittedAt: now.Add(-time.Hour)}))
		require.NoError(t, s.CreateMessage(ctx, &models.Message{Name: "new", SubmittedAt: now}))

		messages, err := s.ListMessages(ctx)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "new", messages[0].Name)

		require.ErrorIs(t, s.DeleteMessage(ctx, "missing"), db.ErrNotFound)
	})

	t.Run("settings upsert keeps one document", func(t *testing.T) {
		first, err := s.UpsertSetting(ctx, models.SettingCVLink, "https://cdn.example.com/a.pdf")
		require.NoError(t, err)

		second, err := s.UpsertSetting(ctx, models.SettingCVLink, "https://cdn.example.com/b.pdf")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "https://cdn.example.com/b.pdf", second.URL)

		n, err := s.settings.CountDocuments(ctx, bson.D{{Key: "name", Value: models.SettingCVLink}})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = s.GetSetting(ctx, models.SettingIllustration)
		require.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("concurrent skills", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, s.CreateSkill(ctx, &models.Skill{Name: fmt.Sprintf("skill-%d", i), Icon: "fa-solid fa-code"}))
			}(i)
		}
		wg.Wait()

		skills, err := s.ListSkills(ctx)
		require.NoError(t, err)
		assert.Len(t, skills, 10)

		require.NoError(t, s.DeleteSkill(ctx, skills[0].ID))
	})
}
