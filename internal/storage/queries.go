package storage

import (
	"context"
	"database/sql"
)

const listMembers = `-- name: ListMembers :many
SELECT id, name, role, marital_status, baptism, contact, address
FROM members
ORDER BY id
`

func (q *Queries) ListMembers(ctx context.Context) ([]Member, error) {
	rows, err := q.db.QueryContext(ctx, listMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Member{}
	for rows.Next() {
		var i Member
		if err := rows.Scan(&i.ID, &i.Name, &i.Role, &i.MaritalStatus, &i.Baptism, &i.Contact, &i.Address); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createMember = `-- name: CreateMember :one
INSERT INTO members (name, role, marital_status, baptism, contact, address)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id
`

type CreateMemberParams struct {
	Name          string
	Role          string
	MaritalStatus string
	Baptism       string
	Contact       string
	Address       string
}

func (q *Queries) CreateMember(ctx context.Context, arg CreateMemberParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(createMember),
		arg.Name, arg.Role, arg.MaritalStatus, arg.Baptism, arg.Contact, arg.Address)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteMember = `-- name: DeleteMember :execrows
DELETE FROM members WHERE id = ?
`

func (q *Queries) DeleteMember(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deleteMember, id)
}

const listChurches = `-- name: ListChurches :many
SELECT id, name, type, location, responsible, contact
FROM churches
ORDER BY id
`

func (q *Queries) ListChurches(ctx context.Context) ([]Church, error) {
	rows, err := q.db.QueryContext(ctx, listChurches)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Church{}
	for rows.Next() {
		var i Church
		if err := rows.Scan(&i.ID, &i.Name, &i.Type, &i.Location, &i.Responsible, &i.Contact); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createChurch = `-- name: CreateChurch :one
INSERT INTO churches (name, type, location, responsible, contact)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

type CreateChurchParams struct {
	Name        string
	Type        string
	Location    string
	Responsible string
	Contact     string
}

func (q *Queries) CreateChurch(ctx context.Context, arg CreateChurchParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(createChurch),
		arg.Name, arg.Type, arg.Location, arg.Responsible, arg.Contact)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const detachPastorsFromChurch = `-- name: DetachPastorsFromChurch :execrows
UPDATE pastors SET church_id = NULL WHERE church_id = ?
`

func (q *Queries) DetachPastorsFromChurch(ctx context.Context, churchID int64) (int64, error) {
	return q.execRows(ctx, detachPastorsFromChurch, churchID)
}

const deleteChurch = `-- name: DeleteChurch :execrows
DELETE FROM churches WHERE id = ?
`

func (q *Queries) DeleteChurch(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deleteChurch, id)
}

const listPastorsWithChurch = `-- name: ListPastorsWithChurch :many
SELECT p.id, p.name, p.contact, p.church_id, c.name
FROM pastors p
LEFT JOIN churches c ON c.id = p.church_id
ORDER BY p.id
`

func (q *Queries) ListPastorsWithChurch(ctx context.Context) ([]PastorWithChurch, error) {
	rows, err := q.db.QueryContext(ctx, listPastorsWithChurch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []PastorWithChurch{}
	for rows.Next() {
		var i PastorWithChurch
		if err := rows.Scan(&i.ID, &i.Name, &i.Contact, &i.ChurchID, &i.ChurchName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPastorWithChurch = `-- name: GetPastorWithChurch :one
SELECT p.id, p.name, p.contact, p.church_id, c.name
FROM pastors p
LEFT JOIN churches c ON c.id = p.church_id
WHERE p.id = ?
`

func (q *Queries) GetPastorWithChurch(ctx context.Context, id int64) (PastorWithChurch, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(getPastorWithChurch), id)
	var i PastorWithChurch
	err := row.Scan(&i.ID, &i.Name, &i.Contact, &i.ChurchID, &i.ChurchName)
	return i, err
}

const createPastor = `-- name: CreatePastor :one
INSERT INTO pastors (name, contact, church_id)
VALUES (?, ?, ?)
RETURNING id
`

type CreatePastorParams struct {
	Name     string
	Contact  string
	ChurchID sql.NullInt64
}

func (q *Queries) CreatePastor(ctx context.Context, arg CreatePastorParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(createPastor), arg.Name, arg.Contact, arg.ChurchID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deletePastor = `-- name: DeletePastor :execrows
DELETE FROM pastors WHERE id = ?
`

func (q *Queries) DeletePastor(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deletePastor, id)
}

const listFinancialEntries = `-- name: ListFinancialEntries :many
SELECT id, date, kind, category, amount_cents, notes
FROM financial_entries
ORDER BY id
`

func (q *Queries) ListFinancialEntries(ctx context.Context) ([]FinancialEntry, error) {
	rows, err := q.db.QueryContext(ctx, listFinancialEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []FinancialEntry{}
	for rows.Next() {
		var i FinancialEntry
		if err := rows.Scan(&i.ID, &i.Date, &i.Kind, &i.Category, &i.AmountCents, &i.Notes); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getFinancialEntry = `-- name: GetFinancialEntry :one
SELECT id, date, kind, category, amount_cents, notes
FROM financial_entries
WHERE id = ?
`

func (q *Queries) GetFinancialEntry(ctx context.Context, id int64) (FinancialEntry, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(getFinancialEntry), id)
	var i FinancialEntry
	err := row.Scan(&i.ID, &i.Date, &i.Kind, &i.Category, &i.AmountCents, &i.Notes)
	return i, err
}

const createFinancialEntry = `-- name: CreateFinancialEntry :one
INSERT INTO financial_entries (date, kind, category, amount_cents, notes)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

type CreateFinancialEntryParams struct {
	Date        string
	Kind        string
	Category    string
	AmountCents int64
	Notes       string
}

func (q *Queries) CreateFinancialEntry(ctx context.Context, arg CreateFinancialEntryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(createFinancialEntry),
		arg.Date, arg.Kind, arg.Category, arg.AmountCents, arg.Notes)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteFinancialEntry = `-- name: DeleteFinancialEntry :execrows
DELETE FROM financial_entries WHERE id = ?
`

func (q *Queries) DeleteFinancialEntry(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deleteFinancialEntry, id)
}

const listActivities = `-- name: ListActivities :many
SELECT id, date, time, activity, location, responsible
FROM activities
ORDER BY id
`

func (q *Queries) ListActivities(ctx context.Context) ([]Activity, error) {
	rows, err := q.db.QueryContext(ctx, listActivities)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Activity{}
	for rows.Next() {
		var i Activity
		if err := rows.Scan(&i.ID, &i.Date, &i.Time, &i.Activity, &i.Location, &i.Responsible); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createActivity = `-- name: CreateActivity :one
INSERT INTO activities (date, time, activity, location, responsible)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

type CreateActivityParams struct {
	Date        string
	Time        string
	Activity    string
	Location    string
	Responsible string
}

func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(createActivity),
		arg.Date, arg.Time, arg.Activity, arg.Location, arg.Responsible)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const deleteActivity = `-- name: DeleteActivity :execrows
DELETE FROM activities WHERE id = ?
`

func (q *Queries) DeleteActivity(ctx context.Context, id int64) (int64, error) {
	return q.execRows(ctx, deleteActivity, id)
}

const cashFlowTotals = `-- name: CashFlowTotals :one
SELECT
    CAST(COALESCE(SUM(CASE WHEN kind = ? THEN amount_cents ELSE 0 END), 0) AS BIGINT) AS income_cents,
    CAST(COALESCE(SUM(CASE WHEN kind = ? THEN amount_cents ELSE 0 END), 0) AS BIGINT) AS expense_cents
FROM financial_entries
`

func (q *Queries) CashFlowTotals(ctx context.Context, incomeKind, expenseKind string) (int64, int64, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(cashFlowTotals), incomeKind, expenseKind)
	var income, expense int64
	err := row.Scan(&income, &expense)
	return income, expense, err
}

const categoryTotals = `-- name: CategoryTotals :many
SELECT category, CAST(COALESCE(SUM(amount_cents), 0) AS BIGINT) AS total_cents
FROM financial_entries
WHERE kind = ?
GROUP BY category
ORDER BY total_cents DESC, `

func (q *Queries) CategoryTotals(ctx context.Context, kind string) ([]CategoryTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, q.driver.rebind(categoryTotals+q.driver.categoryOrder()), kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CategoryTotalRow{}
	for rows.Next() {
		var i CategoryTotalRow
		if err := rows.Scan(&i.Category, &i.TotalCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const dashboard = `-- name: Dashboard :one
SELECT
    (SELECT COUNT(*) FROM members) AS members,
    (SELECT COUNT(*) FROM pastors) AS pastors,
    (SELECT COUNT(*) FROM churches) AS churches,
    (SELECT COUNT(*) FROM activities) AS activities,
    (SELECT CAST(COALESCE(SUM(CASE WHEN kind = ? THEN amount_cents ELSE 0 END), 0) AS BIGINT)
        FROM financial_entries) AS income_cents,
    (SELECT CAST(COALESCE(SUM(CASE WHEN kind = ? THEN amount_cents ELSE 0 END), 0) AS BIGINT)
        FROM financial_entries) AS expense_cents
`

func (q *Queries) Dashboard(ctx context.Context, incomeKind, expenseKind string) (DashboardRow, error) {
	row := q.db.QueryRowContext(ctx, q.driver.rebind(dashboard), incomeKind, expenseKind)
	var i DashboardRow
	err := row.Scan(&i.Members, &i.Pastors, &i.Churches, &i.Activities, &i.IncomeCents, &i.ExpenseCents)
	return i, err
}

func (q *Queries) execRows(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := q.db.ExecContext(ctx, q.driver.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
