package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/social-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

const (
	monthlyRecordsTable   = "monthly_records mr"
	monthlyRecordsColumns = "mr.account_id, mr.handle, mr.display_name, mr.fb_page, mr.year, mr.month, mr.reach, mr.views, mr.followers, mr.status, mr.comment"
)

// MonthlyRecordRepository é o armazenamento persistente de registros mensais,
// chaveado por (conta, ano, mês). O núcleo só depende da semântica
// put/get/getAllByAccount/getAllByPeriod/clear.
type MonthlyRecordRepository interface {
	SaveOrUpdate(account domain.Account, record *domain.MonthlyRecord) error
	GetByAccountAndPeriod(accountID string, year, month int) (*domain.AccountRecord, error)
	GetAllByAccount(accountID string) ([]domain.AccountRecord, error)
	GetAllByPeriod(year, month int) ([]domain.AccountRecord, error)
	GetAll() ([]domain.AccountRecord, error)
	GetAllPeriods() ([]period.Period, error)
	Clear() error
}

type monthlyRecordRepository struct {
	conn *postgres.Connection
}

func NewMonthlyRecordRepository(conn *postgres.Connection) MonthlyRecordRepository {
	return &monthlyRecordRepository{
		conn: conn,
	}
}

// SaveOrUpdate faz o upsert do registro pela chave (account_id, year, month).
// A substituição é total, valores antigos não são mesclados.
func (r *monthlyRecordRepository) SaveOrUpdate(account domain.Account, record *domain.MonthlyRecord) error {
	query := squirrel.StatementBuilder.
		Insert("monthly_records").
		Columns("account_id", "handle", "display_name", "fb_page", "year", "month",
			"reach", "views", "followers", "status", "comment").
		Values(
			account.ID,
			account.Handle,
			account.DisplayName,
			record.FBPage,
			record.Period.Year,
			record.Period.Month,
			record.Reach,
			record.Views,
			record.Followers,
			record.Status,
			record.Comment,
		).
		Suffix(`
			ON CONFLICT (account_id, year, month) DO UPDATE SET
				handle = EXCLUDED.handle,
				display_name = EXCLUDED.display_name,
				fb_page = EXCLUDED.fb_page,
				reach = EXCLUDED.reach,
				views = EXCLUDED.views,
				followers = EXCLUDED.followers,
				status = EXCLUDED.status,
				comment = EXCLUDED.comment,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *monthlyRecordRepository) GetByAccountAndPeriod(accountID string, year, month int) (*domain.AccountRecord, error) {
	query, args, err := squirrel.
		Select(monthlyRecordsColumns).
		From(monthlyRecordsTable).
		Where(squirrel.Eq{"mr.account_id": accountID, "mr.year": year, "mr.month": month}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	record, err := r.scanRecordRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear registro mensal: %w", err)
	}

	return record, nil
}

func (r *monthlyRecordRepository) GetAllByAccount(accountID string) ([]domain.AccountRecord, error) {
	query, args, err := squirrel.
		Select(monthlyRecordsColumns).
		From(monthlyRecordsTable).
		Where(squirrel.Eq{"mr.account_id": accountID}).
		OrderBy("mr.year ASC", "mr.month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

func (r *monthlyRecordRepository) GetAllByPeriod(year, month int) ([]domain.AccountRecord, error) {
	query, args, err := squirrel.
		Select(monthlyRecordsColumns).
		From(monthlyRecordsTable).
		Where(squirrel.Eq{"mr.year": year, "mr.month": month}).
		OrderBy("LOWER(mr.handle) ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

func (r *monthlyRecordRepository) GetAll() ([]domain.AccountRecord, error) {
	query, args, err := squirrel.
		Select(monthlyRecordsColumns).
		From(monthlyRecordsTable).
		OrderBy("LOWER(mr.handle) ASC", "mr.year ASC", "mr.month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

// GetAllPeriods retorna os períodos distintos com dados, em ordem cronológica
func (r *monthlyRecordRepository) GetAllPeriods() ([]period.Period, error) {
	query, args, err := squirrel.
		Select("DISTINCT year, month").
		From("monthly_records").
		OrderBy("year ASC", "month ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := make([]period.Period, 0)
	for rows.Next() {
		var p period.Period
		if err := rows.Scan(&p.Year, &p.Month); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

// Clear descarta todos os registros armazenados
func (r *monthlyRecordRepository) Clear() error {
	query, args, err := squirrel.Delete("monthly_records").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *monthlyRecordRepository) queryRecords(query string, args ...interface{}) ([]domain.AccountRecord, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]domain.AccountRecord, 0)
	for rows.Next() {
		record, err := r.scanRecordRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registros mensais: %w", err)
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}

func (r *monthlyRecordRepository) scanRecordRow(row *sql.Row) (*domain.AccountRecord, error) {
	var account domain.Account
	record := &domain.MonthlyRecord{}

	err := row.Scan(
		&account.ID,
		&account.Handle,
		&account.DisplayName,
		&record.FBPage,
		&record.Period.Year,
		&record.Period.Month,
		&record.Reach,
		&record.Views,
		&record.Followers,
		&record.Status,
		&record.Comment,
	)
	if err != nil {
		return nil, err
	}

	record.AccountID = account.ID
	return &domain.AccountRecord{Account: account, Record: record}, nil
}

func (r *monthlyRecordRepository) scanRecordRows(rows *sql.Rows) (*domain.AccountRecord, error) {
	var account domain.Account
	record := &domain.MonthlyRecord{}

	err := rows.Scan(
		&account.ID,
		&account.Handle,
		&account.DisplayName,
		&record.FBPage,
		&record.Period.Year,
		&record.Period.Month,
		&record.Reach,
		&record.Views,
		&record.Followers,
		&record.Status,
		&record.Comment,
	)
	if err != nil {
		return nil, err
	}

	record.AccountID = account.ID
	return &domain.AccountRecord{Account: account, Record: record}, nil
}
