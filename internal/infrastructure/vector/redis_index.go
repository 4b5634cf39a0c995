package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"talent-match/internal/domain/ranking"

	"github.com/redis/go-redis/v9"
)

const (
	indexName = "idx:candidates"
	keyPrefix = "cand:"
)

// RedisIndex stores one embedding per candidate in Redis Stack and answers
// KNN queries restricted to an allowed-id subset via a TAG filter.
//
// Metric contract: the index is created with the COSINE metric, so Redis
// reports a *distance* where lower means closer. Search converts it with
// similarity = 1 - distance before returning, keeping the engine's
// higher-is-better assumption intact.
type RedisIndex struct {
	client *redis.Client
	logger *log.Logger
}

func NewRedisIndex(client *redis.Client, logger *log.Logger) *RedisIndex {
	if logger == nil {
		logger = log.Default()
	}
	return &RedisIndex{client: client, logger: logger}
}

// EnsureIndex creates the HNSW index if it does not exist yet.
func (r *RedisIndex) EnsureIndex(ctx context.Context, dim int) error {
	err := r.client.FTCreate(ctx, indexName,
		&redis.FTCreateOptions{OnHash: true, Prefix: []any{keyPrefix}},
		&redis.FieldSchema{FieldName: "candidate_id", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				HNSWOptions: &redis.FTHNSWOptions{
					Type:           "FLOAT32",
					Dim:            dim,
					DistanceMetric: "COSINE",
				},
			},
		},
	).Err()
	if err != nil && strings.Contains(err.Error(), "Index already exists") {
		return nil
	}
	return err
}

// Upsert writes or replaces the embedding for one candidate id.
func (r *RedisIndex) Upsert(ctx context.Context, id string, embedding []float32) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("empty vector id")
	}
	return r.client.HSet(ctx, keyPrefix+id, map[string]any{
		"candidate_id": id,
		"embedding":    encodeFloat32(embedding),
	}).Err()
}

// Search returns up to k nearest candidates among allowedIDs. Fewer hits
// than k (or than allowed ids) is normal; callers branch on presence.
func (r *RedisIndex) Search(ctx context.Context, embedding []float32, allowedIDs []string, k int) ([]ranking.Hit, error) {
	if len(allowedIDs) == 0 || k <= 0 {
		return []ranking.Hit{}, nil
	}

	tags := make([]string, 0, len(allowedIDs))
	for _, id := range allowedIDs {
		tags = append(tags, escapeTag(id))
	}
	query := fmt.Sprintf("(@candidate_id:{%s})=>[KNN %d @embedding $vec AS score]", strings.Join(tags, "|"), k)

	res, err := r.client.FTSearchWithArgs(ctx, indexName, query, &redis.FTSearchOptions{
		Params:         map[string]any{"vec": encodeFloat32(embedding)},
		SortBy:         []redis.FTSearchSortBy{{FieldName: "score", Asc: true}},
		Limit:          k,
		DialectVersion: 2,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	hits := make([]ranking.Hit, 0, len(res.Docs))
	for _, doc := range res.Docs {
		id := doc.Fields["candidate_id"]
		if id == "" {
			id = strings.TrimPrefix(doc.ID, keyPrefix)
		}
		dist, err := strconv.ParseFloat(doc.Fields["score"], 64)
		if err != nil {
			r.logger.Printf("[VectorIndex] unreadable distance dropped | doc=%s value=%q", doc.ID, doc.Fields["score"])
			continue
		}
		hits = append(hits, ranking.Hit{ID: id, Similarity: SimilarityFromDistance(dist)})
	}
	return hits, nil
}

// SimilarityFromDistance maps a cosine distance onto a score that grows
// with match quality.
func SimilarityFromDistance(distance float64) float64 {
	return 1 - distance
}

func encodeFloat32(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// escapeTag backslash-escapes the punctuation RediSearch treats as syntax
// inside TAG filters (uuids carry hyphens).
func escapeTag(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '-', '.', '@', ':', '{', '}', '|', ' ':
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

var _ ranking.VectorIndex = (*RedisIndex)(nil)
