// ABOUTME: MongoDB-backed Store using Atlas $vectorSearch and regex keyword filters
// ABOUTME: One client per process; collections are looked up by name per call
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/portfolio-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig configures the connection and vector search oversampling.
type MongoConfig struct {
	URI             string
	Database        string
	CandidateFactor int
}

type MongoStore struct {
	client          *mongo.Client
	db              *mongo.Database
	candidateFactor int
}

// NewMongoStore connects and pings; it fails fast when the cluster is unreachable.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("MongoDB URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = "portfolio"
	}
	if cfg.CandidateFactor < 1 {
		cfg.CandidateFactor = 10
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetAppName("portfolio-backend"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := &MongoStore{
		client:          client,
		db:              client.Database(cfg.Database),
		candidateFactor: cfg.CandidateFactor,
	}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return store, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	for _, collection := range []string{CollectionProjects, CollectionCertificates} {
		if _, err := s.db.Collection(collection).Indexes().CreateOne(ctx, SlugIndexModel()); err != nil {
			return fmt.Errorf("failed to create slug index on %s: %w", collection, err)
		}
	}
	return nil
}

// DatabaseName reports the database in use.
func (s *MongoStore) DatabaseName() string {
	return s.db.Name()
}

func (s *MongoStore) List(ctx context.Context, collection string) ([]models.Document, error) {
	opts := options.Find().SetProjection(bson.M{EmbeddingField: 0})
	return s.find(ctx, collection, bson.M{}, opts)
}

func (s *MongoStore) GetBySlug(ctx context.Context, collection, slug string) (models.Document, error) {
	var raw bson.M
	opts := options.FindOne().SetProjection(bson.M{EmbeddingField: 0})
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"slug": slug}, opts).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, slug, err)
	}
	return normalizeDocument(raw), nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if mongo.IsDuplicateKeyError(err) {
		return "", ErrDuplicateSlug
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// UpdateBySlug applies fields with $set. A match with no changes still succeeds.
func (s *MongoStore) UpdateBySlug(ctx context.Context, collection, slug string, fields models.Document) error {
	return s.set(ctx, collection, slug, bson.M(fields))
}

func (s *MongoStore) DeleteBySlug(ctx context.Context, collection, slug string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, slug, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Count(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return n, nil
}

func (s *MongoStore) SetEmbedding(ctx context.Context, collection, slug string, vector []float32) error {
	return s.set(ctx, collection, slug, bson.M{EmbeddingField: vector})
}

func (s *MongoStore) ListMissingEmbedding(ctx context.Context, collection string) ([]models.Document, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{EmbeddingField: bson.M{"$exists": false}},
		bson.M{EmbeddingField: nil},
		bson.M{EmbeddingField: bson.A{}},
	}}
	opts := options.Find().SetProjection(bson.M{EmbeddingField: 0})
	return s.find(ctx, collection, filter, opts)
}

func (s *MongoStore) VectorSearch(ctx context.Context, collection string, vector []float32, index string, limit int) ([]models.Document, error) {
	pipeline := BuildVectorSearchPipeline(vector, index, limit, s.candidateFactor)
	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("vector search on %s failed: %w", collection, err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("failed to read vector search results: %w", err)
	}
	return normalizeAll(raws), nil
}

// KeywordSearch returns matches in the store's natural order; there is no relevance ranking.
func (s *MongoStore) KeywordSearch(ctx context.Context, collection, query string, fields []string, limit int) ([]models.Document, error) {
	filter, ok := BuildKeywordFilter(query, fields)
	if !ok {
		return nil, nil
	}
	opts := options.Find().SetLimit(int64(limit)).SetProjection(searchProjection())
	return s.find(ctx, collection, filter, opts)
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) find(ctx context.Context, collection string, filter any, opts *options.FindOptions) ([]models.Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return normalizeAll(raws), nil
}

func (s *MongoStore) set(ctx context.Context, collection, slug string, fields bson.M) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$set": fields})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, slug, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
