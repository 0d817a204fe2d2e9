package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orplanning/internal/domain"

	"github.com/lib/pq"
)

type ruleRepository struct {
	DB *sql.DB
}

// NewRuleRepository returns a domain.RuleRepository implemented with Postgres.
func NewRuleRepository(db *sql.DB) domain.RuleRepository {
	return &ruleRepository{DB: db}
}

const ruleColumns = `id, name, description, kind, sector_id, active, priority,
	max_rooms_per_supervisor, max_rooms_exception, internal_supervision_only, contiguous_rooms_required,
	required_skills, allowed_external_sectors, incompatible_sectors, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.SupervisionRule, error) {
	r := &domain.SupervisionRule{}
	var sectorNull sql.NullString
	var exceptionNull sql.NullInt64
	err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.Kind, &sectorNull, &r.Active, &r.Priority,
		&r.Conditions.MaxRoomsPerSupervisor, &exceptionNull,
		&r.Conditions.InternalSupervisionOnly, &r.Conditions.ContiguousRoomsRequired,
		pq.Array(&r.Conditions.RequiredSkills),
		pq.Array(&r.Conditions.AllowedExternalSectors),
		pq.Array(&r.Conditions.IncompatibleSectors),
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sectorNull.Valid {
		r.SectorID = sectorNull.String
	}
	if exceptionNull.Valid {
		v := int(exceptionNull.Int64)
		r.Conditions.MaxRoomsException = &v
	}
	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func (r *ruleRepository) Create(ctx context.Context, rule *domain.SupervisionRule) error {
	query := `
		INSERT INTO supervision_rules (name, description, kind, sector_id, active, priority,
			max_rooms_per_supervisor, max_rooms_exception, internal_supervision_only, contiguous_rooms_required,
			required_skills, allowed_external_sectors, incompatible_sectors, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	c := rule.Conditions
	err := r.DB.QueryRowContext(ctx, query,
		rule.Name, rule.Description, string(rule.Kind), nullString(rule.SectorID), rule.Active, rule.Priority,
		c.MaxRoomsPerSupervisor, nullInt(c.MaxRoomsException), c.InternalSupervisionOnly, c.ContiguousRoomsRequired,
		pq.Array(c.RequiredSkills), pq.Array(c.AllowedExternalSectors), pq.Array(c.IncompatibleSectors),
		rule.CreatedAt, rule.UpdatedAt,
	).Scan(&rule.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return fmt.Errorf("rule name already exists: %s: %w", rule.Name, domain.ErrInvalidInput)
		}
		return err
	}
	return nil
}

func (r *ruleRepository) GetByID(ctx context.Context, id string) (*domain.SupervisionRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM supervision_rules WHERE id = $1`
	rule, err := scanRule(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (r *ruleRepository) List(ctx context.Context) ([]*domain.SupervisionRule, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+ruleColumns+` FROM supervision_rules ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRules(rows)
}

func (r *ruleRepository) ListPaged(ctx context.Context, params domain.PaginationParams) ([]*domain.SupervisionRule, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM supervision_rules`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM supervision_rules ORDER BY seq LIMIT $1 OFFSET $2`,
		params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	rules, err := collectRules(rows)
	if err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

func collectRules(rows *sql.Rows) ([]*domain.SupervisionRule, error) {
	rules := make([]*domain.SupervisionRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepository) Update(ctx context.Context, rule *domain.SupervisionRule) error {
	query := `
		UPDATE supervision_rules SET name = $2, description = $3, kind = $4, sector_id = $5, active = $6, priority = $7,
			max_rooms_per_supervisor = $8, max_rooms_exception = $9, internal_supervision_only = $10,
			contiguous_rooms_required = $11, required_skills = $12, allowed_external_sectors = $13,
			incompatible_sectors = $14, updated_at = $15
		WHERE id = $1
	`
	c := rule.Conditions
	result, err := r.DB.ExecContext(ctx, query,
		rule.ID, rule.Name, rule.Description, string(rule.Kind), nullString(rule.SectorID), rule.Active, rule.Priority,
		c.MaxRoomsPerSupervisor, nullInt(c.MaxRoomsException), c.InternalSupervisionOnly, c.ContiguousRoomsRequired,
		pq.Array(c.RequiredSkills), pq.Array(c.AllowedExternalSectors), pq.Array(c.IncompatibleSectors),
		rule.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM supervision_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
