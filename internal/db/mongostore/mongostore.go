// Package mongostore implements db.Store on MongoDB, the store the site was
// originally deployed on.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/db/models"
)

// Collection names.
const (
	Projects = "projects"
	Skills   = "skills"
	Messages = "messages"
	Settings = "settings"
)

const (
	defaultDatabase = "my_portfolio_db"
	connectTimeout  = 10 * time.Second
)

// ErrURIEmpty is returned when no connection string is configured.
var ErrURIEmpty = errors.New("mongo uri is empty")

// Store is a db.Store backed by MongoDB.
type Store struct {
	client   *mongo.Client
	projects *mongo.Collection
	skills   *mongo.Collection
	messages *mongo.Collection
	settings *mongo.Collection
}

var _ db.Store = (*Store)(nil)

// clientOptions decodes ObjectId _id values as hex strings so documents
// written before string ids were introduced still load.
func clientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetBSONOptions(&options.BSONOptions{ObjectIDAsHexString: true})
}

// Open connects to cfg.URI, pings the server and ensures the settings index.
func Open(ctx context.Context, cfg config.DB) (*Store, error) {
	if cfg.URI == "" {
		return nil, ErrURIEmpty
	}

	client, err := mongo.Connect(clientOptions(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect mongo")
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "failed to ping mongo")
	}

	name := cfg.Name
	if name == "" {
		name = defaultDatabase
	}

	s := New(client, client.Database(name))

	if err = s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Info().Str("database", name).Msg("connected to mongo")

	return s, nil
}

// New builds a Store on an already connected client.
func New(client *mongo.Client, database *mongo.Database) *Store {
	return &Store{
		client:   client,
		projects: database.Collection(Projects),
		skills:   database.Collection(Skills),
		messages: database.Collection(Messages),
		settings: database.Collection(Settings),
	}
}

// ensureIndexes puts a unique index on settings.name so an upsert race can not
// leave two documents for one setting.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.settings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return errors.Wrap(err, "failed to create settings index")
}

// ListProjects implements db.Store.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	out := []models.Project{}

	return out, findAll(ctx, s.projects, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}), &out)
}

// CreateProject implements db.Store.
func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = models.NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := s.projects.InsertOne(ctx, p)

	return errors.Wrap(err, "failed to insert project")
}

// GetProject implements db.Store.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := findOne(ctx, s.projects, idFilter(id), &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// DeleteProject implements db.Store.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return deleteByID(ctx, s.projects, id)
}

// ListSkills implements db.Store.
func (s *Store) ListSkills(ctx context.Context) ([]models.Skill, error) {
	out := []models.Skill{}

	return out, findAll(ctx, s.skills, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}), &out)
}

// CreateSkill implements db.Store.
func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) error {
	if sk.ID == "" {
		sk.ID = models.NewID()
	}
	if sk.CreatedAt.IsZero() {
		sk.CreatedAt = time.Now().UTC()
	}

	_, err := s.skills.InsertOne(ctx, sk)

	return errors.Wrap(err, "failed to insert skill")
}

// DeleteSkill implements db.Store.
func (s *Store) DeleteSkill(ctx context.Context, id string) error {
	return deleteByID(ctx, s.skills, id)
}

// ListMessages implements db.Store.
func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	out := []models.Message{}

	return out, findAll(ctx, s.messages, options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}}), &out)
}

// CreateMessage implements db.Store.
func (s *Store) CreateMessage(ctx context.Context, m *models.Message) error {
	if m.ID == "" {
		m.ID = models.NewID()
	}
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = time.Now().UTC()
	}

	_, err := s.messages.InsertOne(ctx, m)

	return errors.Wrap(err, "failed to insert message")
}

// DeleteMessage implements db.Store.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	return deleteByID(ctx, s.messages, id)
}

// ListSettings implements db.Store.
func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	out := []models.Setting{}

	return out, findAll(ctx, s.settings, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}), &out)
}

// GetSetting implements db.Store.
func (s *Store) GetSetting(ctx context.Context, name string) (*models.Setting, error) {
	var st models.Setting
	if err := findOne(ctx, s.settings, bson.D{{Key: "name", Value: name}}, &st); err != nil {
		return nil, err
	}

	return &st, nil
}

// UpsertSetting implements db.Store.
func (s *Store) UpsertSetting(ctx context.Context, name, url string) (*models.Setting, error) {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "url", Value: url},
			{Key: "updated_at", Value: time.Now().UTC()},
		}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: models.NewID()}}},
	}

	_, err := s.settings.UpdateOne(ctx, bson.D{{Key: "name", Value: name}}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to upsert setting %s", name)
	}

	return s.GetSetting(ctx, name)
}

// Close implements db.Store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptionsBuilder, out any) error {
	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return errors.Wrapf(err, "failed to query %s", coll.Name())
	}

	return errors.Wrapf(cursor.All(ctx, out), "failed to decode %s", coll.Name())
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.D, out any) error {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errors.Wrap(db.ErrNotFound, coll.Name())
	}

	return errors.Wrapf(err, "failed to query %s", coll.Name())
}

// idFilter matches id as stored, or as an ObjectId when it is one in hex.
func idFilter(id string) bson.D {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.D{{Key: "_id", Value: id}}
	}
	return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{id, oid}}}}}
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return errors.Wrapf(err, "failed to delete from %s", coll.Name())
	}

	if res.DeletedCount == 0 {
		return errors.Wrapf(db.ErrNotFound, "%s %s", coll.Name(), id)
	}

	return nil
}
