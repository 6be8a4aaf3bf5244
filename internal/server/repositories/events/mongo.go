package events

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

// CollectionName is the MongoDB collection holding event documents.
const CollectionName = "events"

// Optional fields are omitted when empty, so a missing "time" sorts before
// every HH:mm string.
type eventDocument struct {
	ID           string     `bson:"_id"`
	UserID       string     `bson:"user_id"`
	Title        string     `bson:"title"`
	Description  string     `bson:"description,omitempty"`
	Date         string     `bson:"date"`
	Time         string     `bson:"time,omitempty"`
	Type         string     `bson:"type"`
	Organization string     `bson:"organization,omitempty"`
	RemindDays   *int       `bson:"remind_days,omitempty"`
	DeletedAt    *time.Time `bson:"deleted_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at"`
}

func (d *eventDocument) toModel() *models.Event {
	return (&models.Event{
		ID:           d.ID,
		UserID:       d.UserID,
		Title:        d.Title,
		Description:  d.Description,
		Date:         d.Date,
		Time:         d.Time,
		Type:         models.EventType(d.Type),
		Organization: d.Organization,
		RemindDays:   d.RemindDays,
		DeletedAt:    d.DeletedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}).Clone()
}

// MongoRepository implements Repository over a MongoDB collection.
type MongoRepository struct {
	c *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes used by range queries and by recent
// change lookups.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_events_user_date"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_events_user_updated"),
		},
	}
	_, err := r.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// liveFilter matches an owner's event that has not been soft-deleted.
// {deleted_at: null} also matches documents without the field.
func liveFilter(id, userID string) bson.M {
	return bson.M{"_id": id, "user_id": userID, "deleted_at": nil}
}

func (r *MongoRepository) Create(ctx context.Context, ne models.NewEvent) (*models.Event, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := eventDocument{
		ID:           uuid.NewString(),
		UserID:       ne.UserID,
		Title:        ne.Title,
		Description:  ne.Description,
		Date:         ne.Date,
		Time:         ne.Time,
		Type:         string(ne.Type),
		Organization: ne.Organization,
		RemindDays:   ne.RemindDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) FindByUserAndDateRange(ctx context.Context, userID, from, to string) ([]*models.Event, error) {
	if err := models.CheckRange(from, to); err != nil {
		return nil, err
	}

	filter := bson.M{
		"user_id":    userID,
		"deleted_at": nil,
		"date":       bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to select events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}

	result := make([]*models.Event, 0, len(docs))
	for i := range docs {
		result = append(result, docs[i].toModel())
	}
	return result, nil
}

func (r *MongoRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*models.Event, error) {
	var doc eventDocument
	if err := r.c.FindOne(ctx, liveFilter(id, userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

// updateDocument turns patch into $set/$unset operators. Empty optional
// fields are unset so they read back as absent.
func updateDocument(patch models.EventPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	unset := bson.M{}

	if v, ok := patch.Title.Get(); ok {
		set["title"] = v
	}
	if v, ok := patch.Date.Get(); ok {
		set["date"] = v
	}
	if v, ok := patch.Type.Get(); ok {
		set["type"] = string(v)
	}
	optional := map[string]func() (string, bool){
		"description":  patch.Description.Get,
		"time":         patch.Time.Get,
		"organization": patch.Organization.Get,
	}
	for field, get := range optional {
		v, ok := get()
		switch {
		case !ok:
		case v == "":
			unset[field] = ""
		default:
			set[field] = v
		}
	}
	if v, ok := patch.RemindDays.Get(); ok {
		if v == nil {
			unset["remind_days"] = ""
		} else {
			set["remind_days"] = *v
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// UpdateByIDAndUser applies patch with a single findAndModify filtered by
// id, owner and deletion state.
func (r *MongoRepository) UpdateByIDAndUser(ctx context.Context, id, userID string, patch models.EventPatch) (*models.Event, error) {
	update := updateDocument(patch, time.Now().UTC().Truncate(time.Millisecond))
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc eventDocument
	if err := r.c.FindOneAndUpdate(ctx, liveFilter(id, userID), update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	res, err := r.c.UpdateOne(ctx, liveFilter(id, userID), bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return res.MatchedCount == 1, nil
}
