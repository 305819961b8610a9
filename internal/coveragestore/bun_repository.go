package coveragestore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// BunRepository persists run records using a Bun-backed database.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

// OpenSQLite opens (or creates) a SQLite database at path and wraps it with
// Bun. The caller owns the returned handle.
func OpenSQLite(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_fk=1")
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Init creates the run-record table when it does not exist yet.
func (r *BunRepository) Init(ctx context.Context) error {
	if r.db == nil {
		return errors.New("coveragestore: bun repository requires a database")
	}
	_, err := r.db.NewCreateTable().Model((*recordModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Save inserts or replaces the record with the same ID.
func (r *BunRepository) Save(ctx context.Context, record Record) error {
	if r.db == nil {
		return errors.New("coveragestore: bun repository requires a database")
	}
	model := modelFromRecord(record)
	_, err := r.db.NewInsert().
		Model(&model).
		On("CONFLICT (id) DO UPDATE").
		Set("label = EXCLUDED.label").
		Set("locale = EXCLUDED.locale").
		Set("files = EXCLUDED.files").
		Set("files_fallback = EXCLUDED.files_fallback").
		Set("words_total = EXCLUDED.words_total").
		Set("words_copied = EXCLUDED.words_copied").
		Set("words_fallback = EXCLUDED.words_fallback").
		Set("structure_clean = EXCLUDED.structure_clean").
		Set("started_at = EXCLUDED.started_at").
		Set("finished_at = EXCLUDED.finished_at").
		Exec(ctx)
	return err
}

// Get returns the record with the given ID or ErrRecordNotFound.
func (r *BunRepository) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	if r.db == nil {
		return Record{}, errors.New("coveragestore: bun repository requires a database")
	}
	var model recordModel
	if err := r.db.NewSelect().Model(&model).Where("id = ?", id.String()).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	return modelToRecord(&model)
}

// Recent returns up to limit records ordered newest first by start time.
func (r *BunRepository) Recent(ctx context.Context, limit int) ([]Record, error) {
	if r.db == nil {
		return nil, errors.New("coveragestore: bun repository requires a database")
	}
	query := r.db.NewSelect().Model((*recordModel)(nil)).Order("started_at DESC", "id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []recordModel
	if err := query.Scan(ctx, &models); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(models))
	for i := range models {
		record, err := modelToRecord(&models[i])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

type recordModel struct {
	bun.BaseModel `bun:"table:localegen_runs"`

	ID             string    `bun:"id,pk"`
	Label          string    `bun:"label"`
	Locale         string    `bun:"locale"`
	Files          int       `bun:"files"`
	FilesFallback  int       `bun:"files_fallback"`
	WordsTotal     int       `bun:"words_total"`
	WordsCopied    int       `bun:"words_copied"`
	WordsFallback  int       `bun:"words_fallback"`
	StructureClean bool      `bun:"structure_clean"`
	StartedAt      time.Time `bun:"started_at"`
	FinishedAt     time.Time `bun:"finished_at"`
}

func modelFromRecord(record Record) recordModel {
	return recordModel{
		ID:             record.ID.String(),
		Label:          record.Label,
		Locale:         record.Locale,
		Files:          record.Files,
		FilesFallback:  record.FilesFallback,
		WordsTotal:     record.WordsTotal,
		WordsCopied:    record.WordsCopied,
		WordsFallback:  record.WordsFallback,
		StructureClean: record.StructureClean,
		StartedAt:      record.StartedAt.UTC(),
		FinishedAt:     record.FinishedAt.UTC(),
	}
}

func modelToRecord(model *recordModel) (Record, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:             id,
		Label:          model.Label,
		Locale:         model.Locale,
		Files:          model.Files,
		FilesFallback:  model.FilesFallback,
		WordsTotal:     model.WordsTotal,
		WordsCopied:    model.WordsCopied,
		WordsFallback:  model.WordsFallback,
		StructureClean: model.StructureClean,
		StartedAt:      model.StartedAt,
		FinishedAt:     model.FinishedAt,
	}, nil
}
