package vecindex

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/rueidis"
)

const (
	redisKeyPrefix   = "doc:"
	redisScoreField  = "__vector_score"
	redisMaxListSize = 10000
)

// RedisConfig holds connection parameters for a Redis-backed index.
type RedisConfig struct {
	Addr       string
	Password   string
	IndexName  string
	Dimensions int
}

// RedisIndex stores vectors in Redis hashes and queries them with
// FT.SEARCH KNN (Redis 8+ / RediSearch).
type RedisIndex struct {
	client     rueidis.Client
	indexName  string
	dimensions int
}

// NewRedisIndex connects to Redis and ensures the FT index exists.
func NewRedisIndex(cfg RedisConfig) (*RedisIndex, error) {
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "talentsift"
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{cfg.Addr},
		Password:     cfg.Password,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH result parsing expects RESP2 array format
	})
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	idx := &RedisIndex{
		client:     client,
		indexName:  cfg.IndexName,
		dimensions: cfg.Dimensions,
	}
	if err := idx.ensureIndex(context.Background()); err != nil {
		client.Close()
		return nil, err
	}
	return idx, nil
}

func (r *RedisIndex) ensureIndex(ctx context.Context) error {
	cmd := r.client.B().Arbitrary("FT.INFO").Args(r.indexName).Build()
	if err := r.client.Do(ctx, cmd).Error(); err == nil {
		return nil
	} else if !strings.Contains(strings.ToLower(err.Error()), "unknown index name") {
		return fmt.Errorf("probe index: %w", err)
	}

	create := r.client.B().Arbitrary("FT.CREATE").Args(
		r.indexName,
		"ON", "HASH",
		"PREFIX", "1", redisKeyPrefix,
		"SCHEMA",
		"embedding", "VECTOR", "FLAT", "6",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(r.dimensions),
		"DISTANCE_METRIC", "COSINE",
		"document", "TEXT", "NOSTEM",
		"type", "TAG",
		"filename", "TAG",
	).Build()
	if err := r.client.Do(ctx, create).Error(); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "index already exists") {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert writes the entry as a Redis hash under doc:<id>.
func (r *RedisIndex) Upsert(ctx context.Context, entry Entry) error {
	if len(entry.Embedding) != r.dimensions {
		return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(entry.Embedding), r.dimensions)
	}
	fv := r.client.B().Hset().Key(redisKeyPrefix+entry.ID).FieldValue().
		FieldValue("embedding", rueidis.BinaryString(vectorToBytes(entry.Embedding))).
		FieldValue("document", entry.Document)
	for k, v := range entry.Metadata {
		fv = fv.FieldValue(k, v)
	}
	if err := r.client.Do(ctx, fv.Build()).Error(); err != nil {
		return fmt.Errorf("upsert %s: %w", entry.ID, err)
	}
	return nil
}

// QueryNearest runs a KNN query, optionally restricted by tag filters.
func (r *RedisIndex) QueryNearest(ctx context.Context, embedding []float32, k int, filter Filter) ([]Result, error) {
	if len(embedding) != r.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(embedding), r.dimensions)
	}
	if k <= 0 {
		return nil, nil
	}

	knn := fmt.Sprintf("[KNN %d @embedding $BLOB AS %s]", k, redisScoreField)
	queryStr := "*=>" + knn
	if f := buildTagFilter(filter); f != "" {
		queryStr = fmt.Sprintf("(%s)=>%s", f, knn)
	}

	cmd := r.client.B().Arbitrary("FT.SEARCH").Args(
		r.indexName, queryStr,
		"SORTBY", redisScoreField,
		"LIMIT", "0", strconv.Itoa(k),
		"PARAMS", "2", "BLOB", rueidis.BinaryString(vectorToBytes(embedding)),
		"DIALECT", "2",
	).Build()
	raw, err := r.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}
	return parseKNNResult(raw)
}

// Delete removes the hash backing an entry.
func (r *RedisIndex) Delete(ctx context.Context, id string) error {
	cmd := r.client.B().Del().Key(redisKeyPrefix + id).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// IDs lists all stored entry ids (bounded scan via FT.SEARCH NOCONTENT).
func (r *RedisIndex) IDs(ctx context.Context) ([]string, error) {
	cmd := r.client.B().Arbitrary("FT.SEARCH").Args(
		r.indexName, "*",
		"NOCONTENT",
		"LIMIT", "0", strconv.Itoa(redisMaxListSize),
	).Build()
	raw, err := r.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	ids := make([]string, 0, len(raw))
	for i := 1; i < len(raw); i++ {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		ids = append(ids, strings.TrimPrefix(key, redisKeyPrefix))
	}
	return ids, nil
}

// Count returns the number of indexed entries via FT.SEARCH LIMIT 0 0.
func (r *RedisIndex) Count(ctx context.Context) (int, error) {
	cmd := r.client.B().Arbitrary("FT.SEARCH").Args(r.indexName, "*", "LIMIT", "0", "0").Build()
	raw, err := r.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// Close shuts down the client.
func (r *RedisIndex) Close() error {
	r.client.Close()
	return nil
}

func buildTagFilter(filter Filter) string {
	if len(filter) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filter))
	for k, v := range filter {
		parts = append(parts, fmt.Sprintf("@%s:{%s}", k, escapeTag(v)))
	}
	return strings.Join(parts, " ")
}

// escapeTag escapes RediSearch tag syntax characters.
func escapeTag(v string) string {
	replacer := strings.NewReplacer(
		",", "\\,", ".", "\\.", "<", "\\<", ">", "\\>", "{", "\\{", "}", "\\}",
		"[", "\\[", "]", "\\]", "\"", "\\\"", "'", "\\'", ":", "\\:", ";", "\\;",
		"!", "\\!", "@", "\\@", "#", "\\#", "$", "\\$", "%", "\\%", "^", "\\^",
		"&", "\\&", "*", "\\*", "(", "\\(", ")", "\\)", "-", "\\-", "+", "\\+",
		"=", "\\=", "~", "\\~", " ", "\\ ",
	)
	return replacer.Replace(v)
}

// parseKNNResult decodes the RESP2 FT.SEARCH reply:
// [total, key1, fields1, key2, fields2, ...].
func parseKNNResult(raw []rueidis.RedisMessage) ([]Result, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	results := make([]Result, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fieldsArr, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		fields := make(map[string]string, len(fieldsArr)/2)
		for j := 0; j+1 < len(fieldsArr); j += 2 {
			name, err1 := fieldsArr[j].ToString()
			value, err2 := fieldsArr[j+1].ToString()
			if err1 != nil || err2 != nil {
				continue
			}
			fields[name] = value
		}

		res := Result{ID: strings.TrimPrefix(key, redisKeyPrefix)}
		if score, ok := fields[redisScoreField]; ok {
			if d, err := strconv.ParseFloat(score, 64); err == nil {
				res.Distance = d
			}
			delete(fields, redisScoreField)
		}
		res.Document = fields["document"]
		delete(fields, "document")
		delete(fields, "embedding")
		res.Metadata = fields
		results = append(results, res)
	}
	return results, nil
}

func vectorToBytes(vec []float32) []byte {
	out := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[i*4:(i+1)*4], math.Float32bits(v))
	}
	return out
}
