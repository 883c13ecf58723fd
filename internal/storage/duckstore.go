package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"
	"github.com/mdt-route/backend/internal/models"
)

// DuckStoreOptions tunes the DuckDB connection.
type DuckStoreOptions struct {
	Threads     int
	MemoryLimit string
}

// DuckStore persists decoded routes in a DuckDB file. Placed enemies are
// kept in their own table so routes can be queried by NPC.
type DuckStore struct {
	db     *sql.DB
	dbPath string
}

const duckSchema = `
CREATE TABLE IF NOT EXISTS routes (
	id            VARCHAR PRIMARY KEY,
	created_at    BIGINT NOT NULL,
	dungeon_index INTEGER NOT NULL,
	dungeon_name  VARCHAR NOT NULL,
	title         VARCHAR,
	pull_count    INTEGER NOT NULL,
	total_count   INTEGER NOT NULL,
	input         VARCHAR NOT NULL,
	payload       VARCHAR NOT NULL
);
CREATE TABLE IF NOT EXISTS route_enemies (
	route_id     VARCHAR NOT NULL,
	pull_index   INTEGER NOT NULL,
	enemy_index  INTEGER NOT NULL,
	clone_index  INTEGER NOT NULL,
	npc_id       INTEGER NOT NULL,
	name         VARCHAR NOT NULL,
	count        INTEGER NOT NULL,
	sublevel     INTEGER NOT NULL,
	x            DOUBLE NOT NULL,
	y            DOUBLE NOT NULL,
	norm_x       DOUBLE NOT NULL,
	norm_y       DOUBLE NOT NULL
);
`

// NewDuckStore opens (or creates) a route database at dbPath.
func NewDuckStore(dbPath string, opts DuckStoreOptions) (*DuckStore, error) {
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	if opts.MemoryLimit == "" {
		opts.MemoryLimit = "1GB"
	}

	fmt.Printf("[DuckStore] Opening route database at: %s\n", dbPath)
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			fmt.Sprintf("PRAGMA memory_limit='%s'", opts.MemoryLimit),
			fmt.Sprintf("PRAGMA threads=%d", opts.Threads),
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				fmt.Printf("[DuckStore] Pragma error: %v\n", err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if _, err := db.Exec(duckSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &DuckStore{db: db, dbPath: dbPath}, nil
}

// Save stores a decode result and its placed enemies.
func (ds *DuckStore) Save(ctx context.Context, input string, result *models.DecodeResult) (*models.RouteSummary, error) {
	if result == nil || result.Resolved == nil {
		return nil, fmt.Errorf("saving route: nil result")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding route: %w", err)
	}
	summary := models.NewRouteSummary(uuid.New().String(), time.Now(), result)

	conn, err := ds.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx, `
		INSERT INTO routes (id, created_at, dungeon_index, dungeon_name, title, pull_count, total_count, input, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ID, summary.CreatedAt.UnixMilli(), summary.DungeonIndex, summary.DungeonName,
		summary.Title, summary.PullCount, summary.TotalCount, input, string(payload))
	if err != nil {
		return nil, fmt.Errorf("inserting route: %w", err)
	}

	err = conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("failed to cast to duckdb.Conn")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "route_enemies")
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		defer appender.Close()

		for _, p := range result.Resolved.Pulls {
			for _, e := range p.Enemies {
				err := appender.AppendRow(
					summary.ID,
					int32(p.PullIndex),
					int32(e.EnemyIndex),
					int32(e.CloneIndex),
					int32(e.NPCID),
					e.Name,
					int32(e.Count),
					int32(e.Sublevel),
					e.X,
					e.Y,
					e.NormalizedX,
					e.NormalizedY,
				)
				if err != nil {
					return fmt.Errorf("failed to append enemy row: %w", err)
				}
			}
		}
		return appender.Flush()
	})
	if err != nil {
		ds.deleteRows(ctx, summary.ID)
		return nil, fmt.Errorf("appender error: %w", err)
	}

	return &summary, nil
}

// Get loads a stored route by ID.
func (ds *DuckStore) Get(ctx context.Context, id string) (*models.StoredRoute, error) {
	row := ds.db.QueryRowContext(ctx, `
		SELECT id, created_at, dungeon_index, dungeon_name, title, pull_count, total_count, input, payload
		FROM routes WHERE id = ?`, id)

	var (
		stored    models.StoredRoute
		createdAt int64
		title     sql.NullString
		payload   string
	)
	err := row.Scan(&stored.ID, &createdAt, &stored.DungeonIndex, &stored.DungeonName, &title,
		&stored.PullCount, &stored.TotalCount, &stored.Input, &payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading route: %w", err)
	}
	stored.CreatedAt = time.UnixMilli(createdAt)
	stored.Title = title.String

	var result models.DecodeResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decoding stored route: %w", err)
	}
	stored.Result = &result

	return &stored, nil
}

// List returns the most recent routes.
func (ds *DuckStore) List(ctx context.Context, limit int) ([]*models.RouteSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := ds.db.QueryContext(ctx, `
		SELECT id, created_at, dungeon_index, dungeon_name, title, pull_count, total_count
		FROM routes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// FindByNPC returns routes that pull at least one enemy with the given NPC ID.
func (ds *DuckStore) FindByNPC(ctx context.Context, npcID int, limit int) ([]*models.RouteSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := ds.db.QueryContext(ctx, `
		SELECT r.id, r.created_at, r.dungeon_index, r.dungeon_name, r.title, r.pull_count, r.total_count
		FROM routes r
		WHERE r.id IN (SELECT DISTINCT route_id FROM route_enemies WHERE npc_id = ?)
		ORDER BY r.created_at DESC LIMIT ?`, npcID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying routes by npc: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// Delete removes a route and its enemies.
func (ds *DuckStore) Delete(ctx context.Context, id string) error {
	var n int
	if err := ds.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM routes WHERE id = ?", id).Scan(&n); err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ds.deleteRows(ctx, id)
}

func (ds *DuckStore) deleteRows(ctx context.Context, id string) error {
	if _, err := ds.db.ExecContext(ctx, "DELETE FROM route_enemies WHERE route_id = ?", id); err != nil {
		return fmt.Errorf("deleting route enemies: %w", err)
	}
	if _, err := ds.db.ExecContext(ctx, "DELETE FROM routes WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	return nil
}

// Close closes the database. The file is kept.
func (ds *DuckStore) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

func scanSummaries(rows *sql.Rows) ([]*models.RouteSummary, error) {
	var list []*models.RouteSummary
	for rows.Next() {
		var (
			s         models.RouteSummary
			createdAt int64
			title     sql.NullString
		)
		if err := rows.Scan(&s.ID, &createdAt, &s.DungeonIndex, &s.DungeonName, &title,
			&s.PullCount, &s.TotalCount); err != nil {
			return nil, fmt.Errorf("scanning route: %w", err)
		}
		s.CreatedAt = time.UnixMilli(createdAt)
		s.Title = title.String
		list = append(list, &s)
	}
	return list, rows.Err()
}
