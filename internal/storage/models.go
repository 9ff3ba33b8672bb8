package storage

import "database/sql"

type Member struct {
	ID            int64
	Name          string
	Role          string
	MaritalStatus string
	Baptism       string
	Contact       string
	Address       string
}

type Church struct {
	ID          int64
	Name        string
	Type        string
	Location    string
	Responsible string
	Contact     string
}

type PastorWithChurch struct {
	ID         int64
	Name       string
	Contact    string
	ChurchID   sql.NullInt64
	ChurchName sql.NullString
}

type FinancialEntry struct {
	ID          int64
	Date        string
	Kind        string
	Category    string
	AmountCents int64
	Notes       string
}

type Activity struct {
	ID          int64
	Date        string
	Time        string
	Activity    string
	Location    string
	Responsible string
}

type CategoryTotalRow struct {
	Category   string
	TotalCents int64
}

type DashboardRow struct {
	Members      int64
	Pastors      int64
	Churches     int64
	Activities   int64
	IncomeCents  int64
	ExpenseCents int64
}
