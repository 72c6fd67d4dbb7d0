package dbclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gridboard/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mongoConnector implements Connector for MongoDB. Layouts are stored as
// native documents so they can be queried in place.
type mongoConnector struct {
	client     *mongo.Client
	dbName     string
	collection string
}

// mongoLayout is the stored document shape.
type mongoLayout struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Data      bson.Raw  `bson:"data"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func buildMongoURI(t *domain.MirrorTarget, password string) string {
	// A full connection string (Atlas mongodb+srv:// or mongodb://) is used as is.
	if strings.HasPrefix(t.Host, "mongodb+srv://") || strings.HasPrefix(t.Host, "mongodb://") {
		uri := t.Host
		if password != "" {
			uri = strings.ReplaceAll(uri, "<password>", password)
			uri = strings.ReplaceAll(uri, "<db_password>", password)
		}
		return uri
	}

	port := t.Port
	if port == 0 {
		port = 27017
	}
	uri := fmt.Sprintf("mongodb://%s:%d", t.Host, port)
	if t.Username != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%d", t.Username, password, t.Host, port)
	}

	// extraJSON carries authSource, replicaSet, etc.
	if t.ExtraJSON != "" && t.ExtraJSON != "{}" {
		var extras map[string]string
		if json.Unmarshal([]byte(t.ExtraJSON), &extras) == nil {
			params := []string{}
			for k, v := range extras {
				params = append(params, k+"="+v)
			}
			if len(params) > 0 {
				uri += "/?" + strings.Join(params, "&")
			}
		}
	}
	return uri
}

func newMongoConnector(t *domain.MirrorTarget, password, collection string) (*mongoConnector, error) {
	dbName := t.Database
	if dbName == "" {
		dbName = "gridboard"
	}
	client, err := mongo.Connect(options.Client().ApplyURI(buildMongoURI(t, password)))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &mongoConnector{client: client, dbName: dbName, collection: collection}, nil
}

func (m *mongoConnector) coll() *mongo.Collection {
	return m.client.Database(m.dbName).Collection(m.collection)
}

func (m *mongoConnector) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

func (m *mongoConnector) PushLayout(ctx context.Context, doc *domain.LayoutDocument) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	data, err := exportToBSON(doc.Data)
	if err != nil {
		return err
	}
	rec := mongoLayout{ID: doc.ID, Name: doc.Name, Data: data, CreatedAt: doc.CreatedAt.UTC(), UpdatedAt: doc.UpdatedAt.UTC()}
	_, err = m.coll().ReplaceOne(ctx, bson.M{"_id": doc.ID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("push layout %s: %w", doc.ID, err)
	}
	return nil
}

func (m *mongoConnector) FetchLayout(ctx context.Context, id string) (*domain.LayoutDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var rec mongoLayout
	err := m.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mirrored layout not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch layout %s: %w", id, err)
	}
	doc := &domain.LayoutDocument{ID: rec.ID, Name: rec.Name, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}
	if doc.Data, err = exportFromBSON(rec.Data); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *mongoConnector) DeleteLayout(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := m.coll().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	return nil
}

func (m *mongoConnector) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// exportToBSON goes through JSON so the document keeps the same field names
// as the exported file.
func exportToBSON(data domain.ExportData) (bson.Raw, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return nil, fmt.Errorf("convert layout to bson: %w", err)
	}
	out, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal layout bson: %w", err)
	}
	return out, nil
}

func exportFromBSON(raw bson.Raw) (domain.ExportData, error) {
	var data domain.ExportData
	js, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return data, fmt.Errorf("convert layout from bson: %w", err)
	}
	if err := json.Unmarshal(js, &data); err != nil {
		return data, fmt.Errorf("decode layout: %w", err)
	}
	return data, nil
}
