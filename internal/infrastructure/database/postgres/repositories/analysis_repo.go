package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ProteinScope/internal/application/analysis"
	"github.com/turtacn/ProteinScope/internal/infrastructure/database/postgres"
	"github.com/turtacn/ProteinScope/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ProteinScope/pkg/errors"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
	"github.com/turtacn/ProteinScope/pkg/types/common"
)

const analysisColumns = `id, pdb_id, viz_mode, summary, helix_count, sheet_count, coil_count,
	atom_count, scene_error, duration_ms, created_at`

type postgresAnalysisRepo struct {
	conn *postgres.Connection
	log  logging.Logger
}

// NewPostgresAnalysisRepo stores analysis records in the analyses table.
func NewPostgresAnalysisRepo(conn *postgres.Connection, log logging.Logger) analysis.Repository {
	return &postgresAnalysisRepo{conn: conn, log: log}
}

func (r *postgresAnalysisRepo) executor() queryExecutor {
	return r.conn.DB()
}

func (r *postgresAnalysisRepo) Save(ctx context.Context, rec *types.Record) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return errors.InvalidParam("analysis id must be a UUID").WithDetail(rec.ID)
	}
	summary, err := json.Marshal(rec.Summary)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode analysis summary")
	}
	createdAt := time.Time(rec.CreatedAt)
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO analyses (` + analysisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.executor().ExecContext(ctx, query,
		id, rec.PDBID, rec.VizMode, summary,
		rec.Secondary.Helix, rec.Secondary.Sheet, rec.Secondary.Coil,
		rec.AtomCount, rec.SceneError, rec.DurationMS, createdAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save analysis")
	}
	r.log.Debug("analysis saved", logging.String(logging.FieldAnalysisID, rec.ID), logging.String(logging.FieldPDBID, rec.PDBID))
	return nil
}

func (r *postgresAnalysisRepo) FindByID(ctx context.Context, id string) (*types.Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.InvalidParam("analysis id must be a UUID").WithDetail(id)
	}
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`

	rec, err := scanRecord(r.executor().QueryRowContext(ctx, query, uid))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("analysis not found").WithDetail(id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to find analysis")
	}
	return rec, nil
}

// List returns records newest first together with the total row count.
func (r *postgresAnalysisRepo) List(ctx context.Context, limit, offset int) ([]*types.Record, int64, error) {
	var total int64
	if err := r.executor().QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count analyses")
	}

	query := `SELECT ` + analysisColumns + ` FROM analyses ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.executor().QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list analyses")
	}
	defer rows.Close()

	records := make([]*types.Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan analysis")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate analyses")
	}
	return records, total, nil
}

func scanRecord(row scanner) (*types.Record, error) {
	var (
		rec       types.Record
		id        uuid.UUID
		summary   []byte
		createdAt time.Time
	)
	err := row.Scan(
		&id, &rec.PDBID, &rec.VizMode, &summary,
		&rec.Secondary.Helix, &rec.Secondary.Sheet, &rec.Secondary.Coil,
		&rec.AtomCount, &rec.SceneError, &rec.DurationMS, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if len(summary) > 0 {
		if err := json.Unmarshal(summary, &rec.Summary); err != nil {
			return nil, err
		}
	}
	rec.ID = id.String()
	rec.CreatedAt = common.Timestamp(createdAt.UTC())
	return &rec, nil
}

//Personal.AI order the ending
