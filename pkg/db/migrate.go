package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/unowned-ai/eduquest/pkg/logging"
)

const (
	// TargetSchemaVersion is the highest schema version this version of the code supports for the studydb component.
	TargetSchemaVersion int64 = 2
	// StudyDBComponent is the name for the main study database component.
	StudyDBComponent = "studydb"
)

// schemaSteps maps each schema version to the SQL that moves the previous version to it.
var schemaSteps = map[int64]string{
	1: SchemaV1,
	2: SchemaV2,
}

type columnInfo struct {
	CID       int            `db:"cid"`
	Name      string         `db:"name"`
	Type      string         `db:"type"`
	NotNull   bool           `db:"notnull"`
	DfltValue sql.NullString `db:"dflt_value"`
	PK        int            `db:"pk"`
}

// GetComponentSchemaVersion retrieves the schema version for a given component.
// Returns 0 if the component is not found or the versions table doesn't exist yet.
func GetComponentSchemaVersion(ctx context.Context, db *sqlx.DB, componentName string) (int64, error) {
	var version int64
	err := db.GetContext(ctx, &version, `SELECT version FROM eduquest_versions WHERE component = ?;`, componentName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "eduquest_versions") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// HasColumn reports whether table has a column called column.
func HasColumn(ctx context.Context, db *sqlx.DB, table, column string) (bool, error) {
	var cols []columnInfo
	if err := db.SelectContext(ctx, &cols, fmt.Sprintf("PRAGMA table_info(%s)", table)); err != nil {
		return false, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	for _, c := range cols {
		if strings.EqualFold(c.Name, column) {
			return true, nil
		}
	}
	return false, nil
}

// InitializeSchema applies every schema step up to schemaVersionToSet,
// repairs legacy tables along the way and records the version.
func InitializeSchema(ctx context.Context, db *sqlx.DB, schemaVersionToSet int64) error {
	return applySteps(ctx, db, 0, schemaVersionToSet)
}

// UpgradeDB brings the studydb component of db up to appTargetSchemaVersion.
// dbIdentifierForLog is used for logging purposes only.
func UpgradeDB(ctx context.Context, db *sqlx.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	logger := logging.FromContext(ctx)

	currentDBVersion, err := GetComponentSchemaVersion(ctx, db, StudyDBComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		logger.Info("initializing database", "component", StudyDBComponent, "db", dbIdentifierForLog, "version", appTargetSchemaVersion)
		if err := InitializeSchema(ctx, db, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", StudyDBComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		if _, err := ensureEventTimeColumn(ctx, db); err != nil {
			return err
		}
		logger.Debug("database up to date", "component", StudyDBComponent, "db", dbIdentifierForLog, "version", currentDBVersion)
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		logger.Info("upgrading database", "component", StudyDBComponent, "db", dbIdentifierForLog, "from", currentDBVersion, "to", appTargetSchemaVersion)
		if err := applySteps(ctx, db, currentDBVersion, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to upgrade component %s in database '%s': %w", StudyDBComponent, dbIdentifierForLog, err)
		}
		return nil
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", StudyDBComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}

func applySteps(ctx context.Context, db *sqlx.DB, from, to int64) error {
	for v := from + 1; v <= to; v++ {
		step, ok := schemaSteps[v]
		if !ok {
			return fmt.Errorf("no schema definition for version %d", v)
		}
		if _, err := db.ExecContext(ctx, step); err != nil {
			return fmt.Errorf("failed to execute schema v%d SQL: %w", v, err)
		}
		// Tables left by the original app predate the time column; fix them
		// before any later step indexes it.
		if v == 1 {
			if _, err := ensureEventTimeColumn(ctx, db); err != nil {
				return err
			}
		}
	}
	return setComponentVersion(ctx, db, StudyDBComponent, to)
}

func setComponentVersion(ctx context.Context, db *sqlx.DB, component string, version int64) error {
	const upsertVersionSQL = `
INSERT INTO eduquest_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	if _, err := db.ExecContext(ctx, upsertVersionSQL, component, version); err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", component, version, err)
	}
	return nil
}

// ensureEventTimeColumn adds events.time when missing. It never drops data.
func ensureEventTimeColumn(ctx context.Context, db *sqlx.DB) (bool, error) {
	ok, err := HasColumn(ctx, db, "events", "time")
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	logging.FromContext(ctx).Info("migrating database: adding 'time' column to events table")
	if _, err := db.ExecContext(ctx, addEventTimeColumn); err != nil {
		return false, fmt.Errorf("failed to add time column to events: %w", err)
	}
	return true, nil
}
