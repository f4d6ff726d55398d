package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/zaqqye/agency_backend/internal/models"
)

const mongoCollection = "content_sections"

// MongoStore keeps one document per section in a collection with a unique
// index on "section". Fields live under the "fields" sub-document.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongo dials uri, verifies the server and ensures the section index.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	coll := client.Database(database).Collection(mongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "section", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (m *MongoStore) Find(ctx context.Context, section string) (*models.ContentSection, error) {
	var rec models.ContentSection
	err := m.coll.FindOne(ctx, bson.M{"section": section}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find section %q: %w", section, err)
	}
	return plainFields(&rec)
}

func (m *MongoStore) List(ctx context.Context) ([]models.ContentSection, error) {
	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "section", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	recs := []models.ContentSection{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	for i := range recs {
		if _, err := plainFields(&recs[i]); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// Upsert sets each field by dotted path so keys not named in fields survive.
func (m *MongoStore) Upsert(ctx context.Context, section string, fields Fields, now time.Time) (*models.ContentSection, error) {
	set := bson.M{"updatedAt": now}
	for k, v := range fields {
		set["fields."+k] = v
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var rec models.ContentSection
	if err := m.coll.FindOneAndUpdate(ctx, bson.M{"section": section}, update, opts).Decode(&rec); err != nil {
		return nil, fmt.Errorf("upsert section %q: %w", section, err)
	}
	return plainFields(&rec)
}

// plainFields turns decoded bson.M / bson.A values into plain maps and slices.
func plainFields(rec *models.ContentSection) (*models.ContentSection, error) {
	f, err := normalize(Fields(rec.Fields))
	if err != nil {
		return nil, err
	}
	rec.Fields = toJSONMap(f)
	return rec, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
