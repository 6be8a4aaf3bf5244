package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding user documents.
const CollectionName = "users"

type userDocument struct {
	ID            string    `bson:"_id"`
	Email         string    `bson:"email"`
	PasswordHash  string    `bson:"password_hash"`
	FirstName     string    `bson:"first_name,omitempty"`
	LastName      string    `bson:"last_name,omitempty"`
	Organizations []string  `bson:"organizations"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:            d.ID,
		Email:         d.Email,
		PasswordHash:  d.PasswordHash,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Organizations: d.Organizations,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// MongoRepository implements Repository over a MongoDB collection. Email
// uniqueness is enforced by the index created in EnsureIndexes.
type MongoRepository struct {
	c *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique email index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_users_email").SetUnique(true),
	})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, nu models.NewUser) (*models.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	orgs := nu.Organizations
	if orgs == nil {
		orgs = []string{}
	}
	doc := userDocument{
		ID:            uuid.NewString(),
		Email:         models.NormalizeEmail(nu.Email),
		PasswordHash:  nu.PasswordHash,
		FirstName:     nu.FirstName,
		LastName:      nu.LastName,
		Organizations: orgs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.c.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

// UpdateByID applies patch with a single findAndModify.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if v, ok := patch.Email.Get(); ok {
		set["email"] = models.NormalizeEmail(v)
	}
	if v, ok := patch.PasswordHash.Get(); ok {
		set["password_hash"] = v
	}
	if v, ok := patch.FirstName.Get(); ok {
		set["first_name"] = v
	}
	if v, ok := patch.LastName.Get(); ok {
		set["last_name"] = v
	}
	if v, ok := patch.Organizations.Get(); ok {
		if v == nil {
			v = []string{}
		}
		set["organizations"] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, common.ErrorNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}
