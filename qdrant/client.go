// Package qdrant stores embedded documents in a Qdrant vector database
// over gRPC. Each stored record carries the source text as payload next
// to its embedding vector so the full corpus can be pulled back out for
// projection and topic analysis.
package qdrant

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// scrollPageSize bounds how many records a single Scroll call returns.
const scrollPageSize = 256

// Record is a stored document: its UUID, the original text, and the
// embedding vector computed for it.
type Record struct {
	ID     string
	Text   string
	Vector []float32
}

// Store wraps a gRPC connection to a Qdrant instance and exposes the
// record operations the rest of the program needs.
type Store struct {
	connection  *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
	vectorSize  uint64
}

// NewStore connects to the Qdrant server at address and makes sure the
// named collection exists, creating it with cosine distance when missing.
func NewStore(address, collection string, vectorSize uint64) (*Store, error) {
	connection, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant: %w", err)
	}

	store := &Store{
		connection:  connection,
		points:      pb.NewPointsClient(connection),
		collections: pb.NewCollectionsClient(connection),
		collection:  collection,
		vectorSize:  vectorSize,
	}

	if err := store.ensureCollection(context.Background()); err != nil {
		connection.Close()
		return nil, err
	}

	return store, nil
}

func (store *Store) ensureCollection(ctx context.Context) error {
	_, err := store.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: store.collection,
	})
	if err == nil {
		return nil
	}

	_, err = store.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: store.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     store.vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	return nil
}

// Upsert writes a single record, inserting it or replacing the record
// with the same UUID.
func (store *Store) Upsert(ctx context.Context, id string, text string, vector []float32) error {
	return store.UpsertBatch(ctx, []Record{{ID: id, Text: text, Vector: vector}})
}

// UpsertBatch writes a batch of records in one request. Records with
// existing UUIDs are replaced.
func (store *Store) UpsertBatch(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	structs := make([]*pb.PointStruct, 0, len(records))
	for _, record := range records {
		structs = append(structs, &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: record.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: record.Vector},
				},
			},
			Payload: map[string]*pb.Value{
				"text": {Kind: &pb.Value_StringValue{StringValue: record.Text}},
			},
		})
	}

	_, err := store.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: store.collection,
		Points:         structs,
	})
	if err != nil {
		return fmt.Errorf("upsert points: %w", err)
	}
	return nil
}

// GetAll scrolls through the whole collection and returns every stored
// record with its payload text and vector.
func (store *Store) GetAll(ctx context.Context) ([]Record, error) {
	var records []Record
	var offset *pb.PointId

	for {
		response, err := store.points.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: store.collection,
			WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
			WithVectors:    &pb.WithVectorsSelector{SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: true}},
			Limit:          pb.PtrOf(uint32(scrollPageSize)),
			Offset:         offset,
		})
		if err != nil {
			return nil, fmt.Errorf("scroll points: %w", err)
		}

		for _, retrieved := range response.Result {
			records = append(records, recordFromRetrieved(retrieved))
		}

		if response.NextPageOffset == nil {
			return records, nil
		}
		offset = response.NextPageOffset
	}
}

func recordFromRetrieved(retrieved *pb.RetrievedPoint) Record {
	var record Record

	if uuid := retrieved.Id.GetUuid(); uuid != "" {
		record.ID = uuid
	}
	if payload, exists := retrieved.Payload["text"]; exists {
		record.Text = payload.GetStringValue()
	}
	if vector := retrieved.Vectors.GetVector(); vector != nil {
		record.Vector = vector.Data
	}

	return record
}

// Delete removes the record with the given UUID from the collection.
func (store *Store) Delete(ctx context.Context, id string) error {
	selector := &pb.PointsSelector{
		PointsSelectorOneOf: &pb.PointsSelector_Points{
			Points: &pb.PointsIdsList{
				Ids: []*pb.PointId{
					{PointIdOptions: &pb.PointId_Uuid{Uuid: id}},
				},
			},
		},
	}

	_, err := store.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: store.collection,
		Points:         selector,
	})
	return err
}

// Close tears down the gRPC connection.
func (store *Store) Close() error {
	return store.connection.Close()
}
