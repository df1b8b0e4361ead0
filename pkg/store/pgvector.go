package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/xhad/profile-embed/internal/models"
	"github.com/xhad/profile-embed/internal/types"
)

var _ types.Sink = (*VectorStore)(nil)

// chunkNamespace seeds the UUIDv5 ids of stored chunks.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("profile-embed/chunk"))

type VectorStoreConfig struct {
	ConnString string
	TableName  string
	VectorDim  int
	BatchSize  int
}

// VectorStore mirrors one output file into a pgvector table. Each Store
// replaces the rows previously written for the same model.
type VectorStore struct {
	config VectorStoreConfig
	pool   *pgxpool.Pool
	table  string
}

func NewWithConfig(ctx context.Context, config VectorStoreConfig) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "profile_chunks"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 384
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	pool, err := pgxpool.New(ctx, config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	vs := &VectorStore{
		config: config,
		pool:   pool,
		table:  pgx.Identifier{config.TableName}.Sanitize(),
	}

	if err := vs.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize(ctx context.Context) error {
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			chunk_type TEXT NOT NULL,
			content TEXT NOT NULL,
			metadata JSONB,
			embedding vector(%d)
		)`, vs.table, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

type row struct {
	id        string
	index     int
	chunkType string
	content   string
	metadata  []byte
	embedding pgvector.Vector
}

// ChunkID is stable for the same model, position and content, so rerunning
// on unchanged input updates rows in place.
func ChunkID(model string, index int, c models.Chunk) string {
	name := model + "\x00" + strconv.Itoa(index) + "\x00" + string(c.Type) + "\x00" + c.Content
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}

func (vs *VectorStore) buildRows(model string, chunks []models.Chunk) ([]row, error) {
	rows := make([]row, 0, len(chunks))
	for i, c := range chunks {
		if len(c.Embedding) != vs.config.VectorDim {
			return nil, fmt.Errorf("chunk %d: embedding has %d dimensions, table expects %d", i, len(c.Embedding), vs.config.VectorDim)
		}

		metadata, err := json.Marshal(c.Metadata)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: failed to encode metadata: %w", i, err)
		}

		content := sanitizeUTF8(c.Content)
		rows = append(rows, row{
			id:        ChunkID(model, i, c),
			index:     i,
			chunkType: string(c.Type),
			content:   content,
			metadata:  metadata,
			embedding: pgvector.NewVector(c.Embedding),
		})
	}
	return rows, nil
}

func (vs *VectorStore) Store(ctx context.Context, model string, chunks []models.Chunk) error {
	rows, err := vs.buildRows(model, chunks)
	if err != nil {
		return err
	}

	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, model, chunk_index, chunk_type, content, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			chunk_index = EXCLUDED.chunk_index,
			metadata = EXCLUDED.metadata,
			embedding = EXCLUDED.embedding`,
		vs.table)

	ids := make([]string, len(rows))
	for i := 0; i < len(rows); i += vs.config.BatchSize {
		end := i + vs.config.BatchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := &pgx.Batch{}
		for j, r := range rows[i:end] {
			ids[i+j] = r.id
			batch.Queue(stmt, r.id, model, r.index, r.chunkType, r.content, r.metadata, r.embedding)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert chunks: %w", err)
		}
	}

	prune := fmt.Sprintf(`DELETE FROM %s WHERE model = $1 AND id <> ALL($2::text[])`, vs.table)
	if _, err := tx.Exec(ctx, prune, model, ids); err != nil {
		return fmt.Errorf("failed to prune stale chunks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (vs *VectorStore) Close() {
	if vs.pool != nil {
		vs.pool.Close()
	}
}

// sanitizeUTF8 drops invalid bytes, which Postgres rejects in TEXT columns.
func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for i, r := range s {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(s[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		return string(v)
	}
	return s
}
