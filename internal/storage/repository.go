package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"igreja/internal/core"
	applog "igreja/internal/log"
)

// Repository is the relational store for every record type. It owns the
// connection pool; callers open it at startup and Close it at shutdown.
type Repository struct {
	db      *sql.DB
	driver  Driver
	queries *Queries
}

// NewRepository opens the store, verifies the connection and applies
// migrations. For SQLite dsn is a file path.
func NewRepository(driver Driver, dsn string) (*Repository, error) {
	switch driver {
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres dsn is required")
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver.sqlDriverName(), driver.dataSource(dsn))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(driver, dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:      db,
		driver:  driver,
		queries: New(db, driver),
	}, nil
}

func NewSQLiteRepository(dbPath string) (*Repository, error) {
	return NewRepository(DriverSQLite, dbPath)
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Repository) Driver() Driver {
	return r.driver
}

func (r *Repository) ListMembers(ctx context.Context) ([]core.Member, error) {
	rows, err := r.queries.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	out := make([]core.Member, 0, len(rows))
	for _, m := range rows {
		out = append(out, memberFromRow(m))
	}
	return out, nil
}

// CreateMember rejects a member without a name; every other field is optional.
func (r *Repository) CreateMember(ctx context.Context, in core.MemberInput) (core.Member, error) {
	if err := in.Validate(); err != nil {
		return core.Member{}, err
	}
	row := Member{
		Name:          in.Name,
		Role:          in.Role,
		MaritalStatus: in.MaritalStatus,
		Baptism:       in.Baptism,
		Contact:       in.Contact,
		Address:       in.Address,
	}
	id, err := r.queries.CreateMember(ctx, CreateMemberParams{
		Name:          row.Name,
		Role:          row.Role,
		MaritalStatus: row.MaritalStatus,
		Baptism:       row.Baptism,
		Contact:       row.Contact,
		Address:       row.Address,
	})
	if err != nil {
		return core.Member{}, fmt.Errorf("create member: %w", err)
	}
	row.ID = id

	slog.InfoContext(ctx, "Member saved", "id", id, "name", row.Name, "role", row.Role)
	return memberFromRow(row), nil
}

func (r *Repository) DeleteMember(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteMember(ctx, id)
	if err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("member %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Member deleted", "id", id)
	return nil
}

func (r *Repository) ListChurches(ctx context.Context) ([]core.Church, error) {
	rows, err := r.queries.ListChurches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list churches: %w", err)
	}
	out := make([]core.Church, 0, len(rows))
	for _, c := range rows {
		out = append(out, churchFromRow(c))
	}
	return out, nil
}

func (r *Repository) CreateChurch(ctx context.Context, in core.ChurchInput) (core.Church, error) {
	row := Church{
		Name:        in.Name,
		Type:        string(in.Type),
		Location:    in.Location,
		Responsible: in.Responsible,
		Contact:     in.Contact,
	}
	id, err := r.queries.CreateChurch(ctx, CreateChurchParams{
		Name:        row.Name,
		Type:        row.Type,
		Location:    row.Location,
		Responsible: row.Responsible,
		Contact:     row.Contact,
	})
	if err != nil {
		return core.Church{}, fmt.Errorf("create church: %w", err)
	}
	row.ID = id

	slog.InfoContext(ctx, "Church saved", "id", id, "name", row.Name, "type", row.Type)
	return churchFromRow(row), nil
}

// ListPastors returns every pastor with the name of its church, if any.
func (r *Repository) ListPastors(ctx context.Context) ([]core.Pastor, error) {
	rows, err := r.queries.ListPastorsWithChurch(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pastors: %w", err)
	}
	out := make([]core.Pastor, 0, len(rows))
	for _, p := range rows {
		out = append(out, pastorFromRow(p))
	}
	return out, nil
}

func (r *Repository) GetPastor(ctx context.Context, id int64) (core.Pastor, error) {
	row, err := r.queries.GetPastorWithChurch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Pastor{}, fmt.Errorf("pastor %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Pastor{}, fmt.Errorf("get pastor %d: %w", id, err)
	}
	return pastorFromRow(row), nil
}

// CreatePastor stores the pastor and reads it back with its church name.
// A church_id that references no church fails the foreign key.
func (r *Repository) CreatePastor(ctx context.Context, in core.PastorInput) (core.Pastor, error) {
	var churchID sql.NullInt64
	if in.ChurchID != nil {
		churchID = sql.NullInt64{Int64: *in.ChurchID, Valid: true}
	}
	id, err := r.queries.CreatePastor(ctx, CreatePastorParams{
		Name:     in.Name,
		Contact:  in.Contact,
		ChurchID: churchID,
	})
	if err != nil {
		return core.Pastor{}, fmt.Errorf("create pastor: %w", err)
	}

	slog.InfoContext(ctx, "Pastor saved", "id", id, "name", in.Name, "church_id", churchID.Int64)
	return r.GetPastor(ctx, id)
}

func (r *Repository) DeletePastor(ctx context.Context, id int64) error {
	n, err := r.queries.DeletePastor(ctx, id)
	if err != nil {
		return fmt.Errorf("delete pastor %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("pastor %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Pastor deleted", "id", id)
	return nil
}

func (r *Repository) ListFinancialEntries(ctx context.Context) ([]core.FinancialEntry, error) {
	rows, err := r.queries.ListFinancialEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list financial entries: %w", err)
	}
	out := make([]core.FinancialEntry, 0, len(rows))
	for _, e := range rows {
		out = append(out, entryFromRow(e))
	}
	return out, nil
}

func (r *Repository) GetFinancialEntry(ctx context.Context, id int64) (core.FinancialEntry, error) {
	row, err := r.queries.GetFinancialEntry(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.FinancialEntry{}, fmt.Errorf("financial entry %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("get financial entry %d: %w", id, err)
	}
	return entryFromRow(row), nil
}

func (r *Repository) CreateFinancialEntry(ctx context.Context, in core.FinancialEntryInput) (core.FinancialEntry, error) {
	row := FinancialEntry{
		Date:        in.Date,
		Kind:        string(in.Kind),
		Category:    in.Category,
		AmountCents: in.Amount.Cents,
		Notes:       in.Notes,
	}
	id, err := r.queries.CreateFinancialEntry(ctx, CreateFinancialEntryParams{
		Date:        row.Date,
		Kind:        row.Kind,
		Category:    row.Category,
		AmountCents: row.AmountCents,
		Notes:       row.Notes,
	})
	if err != nil {
		return core.FinancialEntry{}, fmt.Errorf("create financial entry: %w", err)
	}
	row.ID = id

	slog.InfoContext(ctx, "Financial entry saved",
		applog.FieldRecordID, id,
		applog.FieldEntryKind, row.Kind,
		applog.FieldCategory, row.Category,
		applog.FieldAmountCents, row.AmountCents)
	return entryFromRow(row), nil
}

func (r *Repository) DeleteFinancialEntry(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteFinancialEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("delete financial entry %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("financial entry %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Financial entry deleted", "id", id)
	return nil
}

func (r *Repository) ListActivities(ctx context.Context) ([]core.Activity, error) {
	rows, err := r.queries.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	out := make([]core.Activity, 0, len(rows))
	for _, a := range rows {
		out = append(out, activityFromRow(a))
	}
	return out, nil
}

func (r *Repository) CreateActivity(ctx context.Context, in core.ActivityInput) (core.Activity, error) {
	row := Activity{
		Date:        in.Date,
		Time:        in.Time,
		Activity:    in.Name,
		Location:    in.Location,
		Responsible: in.Responsible,
	}
	id, err := r.queries.CreateActivity(ctx, CreateActivityParams{
		Date:        row.Date,
		Time:        row.Time,
		Activity:    row.Activity,
		Location:    row.Location,
		Responsible: row.Responsible,
	})
	if err != nil {
		return core.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	row.ID = id

	slog.InfoContext(ctx, "Activity saved", "id", id, "activity", row.Activity, "date", row.Date)
	return activityFromRow(row), nil
}

func (r *Repository) DeleteActivity(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteActivity(ctx, id)
	if err != nil {
		return fmt.Errorf("delete activity %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("activity %d: %w", id, core.ErrNotFound)
	}
	slog.InfoContext(ctx, "Activity deleted", "id", id)
	return nil
}

func memberFromRow(m Member) core.Member {
	return core.Member{
		ID:            m.ID,
		Name:          m.Name,
		Role:          m.Role,
		MaritalStatus: m.MaritalStatus,
		Baptism:       m.Baptism,
		Contact:       m.Contact,
		Address:       m.Address,
	}
}

func churchFromRow(c Church) core.Church {
	return core.Church{
		ID:          c.ID,
		Name:        c.Name,
		Type:        core.ChurchType(c.Type),
		Location:    c.Location,
		Responsible: c.Responsible,
		Contact:     c.Contact,
	}
}

func pastorFromRow(p PastorWithChurch) core.Pastor {
	out := core.Pastor{ID: p.ID, Name: p.Name, Contact: p.Contact}
	if p.ChurchID.Valid {
		id := p.ChurchID.Int64
		out.ChurchID = &id
	}
	if p.ChurchName.Valid {
		name := p.ChurchName.String
		out.ChurchName = &name
	}
	return out
}

func entryFromRow(e FinancialEntry) core.FinancialEntry {
	return core.FinancialEntry{
		ID:       e.ID,
		Date:     e.Date,
		Kind:     core.EntryKind(e.Kind),
		Category: e.Category,
		Amount:   core.Money{Cents: e.AmountCents},
		Notes:    e.Notes,
	}
}

func activityFromRow(a Activity) core.Activity {
	return core.Activity{
		ID:          a.ID,
		Date:        a.Date,
		Time:        a.Time,
		Name:        a.Activity,
		Location:    a.Location,
		Responsible: a.Responsible,
	}
}
