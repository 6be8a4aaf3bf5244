package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase is used when the URI does not name a database.
const DefaultMongoDatabase = "gophcalendar"

// MongoRepositoryManager vends MongoDB-backed repositories sharing one client.
type MongoRepositoryManager struct {
	client *mongo.Client
	users  *users.MongoRepository
	events *events.MongoRepository
}

// NewMongoRepositoryManager connects to uri, checks the primary and binds the
// repositories to the database named in the URI.
func NewMongoRepositoryManager(ctx context.Context, uri string) (*MongoRepositoryManager, error) {
	name, err := mongoDatabaseName(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	return newMongoRepositoryManager(client, client.Database(name)), nil
}

func newMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client: client,
		users:  users.NewMongoRepository(db),
		events: events.NewMongoRepository(db),
	}
}

func mongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", fmt.Errorf("invalid mongodb uri: %w", err)
	}
	if cs.Database == "" {
		return DefaultMongoDatabase, nil
	}
	return cs.Database, nil
}

func (m *MongoRepositoryManager) Users() users.Repository   { return m.users }
func (m *MongoRepositoryManager) Events() events.Repository { return m.events }
func (m *MongoRepositoryManager) Backend() string           { return BackendMongo }

// RunMigrations creates the collection indexes.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := m.events.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
