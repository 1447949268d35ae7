package connectors

import (
	"context"
	"fmt"

	pandasai "github.com/Andromeda227799/pandas-ai"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReadMongo fetches documents from a MongoDB collection and materializes
// them as a frame. Columns appear in first-seen key order across documents;
// documents missing a key contribute nil.
func ReadMongo(ctx context.Context, uri, database, collection string, filter any, opts ...pandasai.Option) (*pandasai.DataFrame, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if filter == nil {
		filter = bson.D{}
	}
	cursor, err := client.Database(database).Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}

	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}

	return frameFromDocs(docs, opts...)
}

func frameFromDocs(docs []bson.D, opts ...pandasai.Option) (*pandasai.DataFrame, error) {
	var order []string
	index := make(map[string]int)
	for _, doc := range docs {
		for _, elem := range doc {
			if _, ok := index[elem.Key]; !ok {
				index[elem.Key] = len(order)
				order = append(order, elem.Key)
			}
		}
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("mongo: no documents or fields to materialize")
	}

	columns := make([][]any, len(order))
	for i := range columns {
		columns[i] = make([]any, len(docs))
	}
	for row, doc := range docs {
		for _, elem := range doc {
			columns[index[elem.Key]][row] = elem.Value
		}
	}

	series := make([]pandasai.Series, len(order))
	for i, name := range order {
		series[i] = pandasai.Series{Name: name, Values: columns[i]}
	}
	return pandasai.NewDataFrame(series, opts...)
}
