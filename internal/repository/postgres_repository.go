package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PraveshYadav900/codenest-website/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "storefront_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func fromNullable(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	query := `INSERT INTO orders (
	              package_id, amount, payment_method, status,
	              customer_name, customer_email, customer_phone, customer_company,
	              customer_address, customer_city, customer_state, customer_pincode,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		order.PackageID,
		order.Amount,
		order.PaymentMethod,
		order.Status,
		order.Customer.Name,
		order.Customer.Email,
		nullable(order.Customer.Phone),
		nullable(order.Customer.Company),
		nullable(order.Customer.Address),
		nullable(order.Customer.City),
		nullable(order.Customer.State),
		nullable(order.Customer.Pincode),
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

const orderColumns = `id, package_id, amount, payment_method, status,
	customer_name, customer_email, customer_phone, customer_company,
	customer_address, customer_city, customer_state, customer_pincode,
	payment_id, gateway_order_id, created_at, updated_at`

func scanOrder(row *sql.Row) (*domain.Order, error) {
	var order domain.Order
	var phone, company, address, city, state, pincode sql.NullString
	var paymentID, gatewayOrderID sql.NullString
	err := row.Scan(
		&order.ID,
		&order.PackageID,
		&order.Amount,
		&order.PaymentMethod,
		&order.Status,
		&order.Customer.Name,
		&order.Customer.Email,
		&phone,
		&company,
		&address,
		&city,
		&state,
		&pincode,
		&paymentID,
		&gatewayOrderID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Customer.Phone = fromNullable(phone)
	order.Customer.Company = fromNullable(company)
	order.Customer.Address = fromNullable(address)
	order.Customer.City = fromNullable(city)
	order.Customer.State = fromNullable(state)
	order.Customer.Pincode = fromNullable(pincode)
	order.PaymentID = fromNullable(paymentID)
	order.GatewayOrderID = fromNullable(gatewayOrderID)
	return &order, nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

// RecordPaymentOutcome applies a verified callback in a single transaction:
// the audit event insert doubles as the idempotency gate (unique on
// order_id + txn_id), and the status write is conditional on the row still
// being pending so a racing duplicate cannot double-apply.
func (r *Repository) RecordPaymentOutcome(ctx context.Context, outcome *PaymentOutcome) (*PaymentResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	eventQuery := `INSERT INTO payment_events (id, order_id, txn_id, event_type, payload, processed, created_at)
	               VALUES ($1, $2, $3, $4, $5, false, NOW())
	               ON CONFLICT (order_id, txn_id) DO NOTHING`

	res, insertErr := tx.ExecContext(ctx, eventQuery,
		uuid.New(),
		outcome.OrderID,
		outcome.TxnID,
		"payment."+string(outcome.Status),
		outcome.Payload)
	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("insert payment event: %w", insertErr)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("payment event rows affected: %w", err)
	}

	result := &PaymentResult{Duplicate: inserted == 0}

	if !result.Duplicate && outcome.Status != domain.OrderStatusPending {
		updateQuery := `UPDATE orders
		                SET status = $2, payment_id = $3, gateway_order_id = $4, updated_at = NOW()
		                WHERE id = $1 AND status = 'pending'`

		updateRes, updateErr := tx.ExecContext(ctx, updateQuery,
			outcome.OrderID,
			outcome.Status,
			outcome.TxnID,
			outcome.GatewayOrderID)
		if updateErr != nil {
			return nil, fmt.Errorf("update order status: %w", updateErr)
		}
		updated, err2 := updateRes.RowsAffected()
		if err2 != nil {
			return nil, fmt.Errorf("order update rows affected: %w", err2)
		}
		result.Transitioned = updated == 1
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, outcome.OrderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order after outcome: %w", err)
	}
	result.Order = order

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment outcome: %w", err)
	}
	return result, nil
}

func (r *Repository) CreateContact(ctx context.Context, submission *domain.ContactSubmission) error {
	query := `INSERT INTO contact_submissions (
	              name, email, company, phone, service, budget, timeline, message, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	          RETURNING id, submitted_at`

	err := r.db.QueryRowContext(ctx, query,
		submission.Name,
		submission.Email,
		nullable(submission.Company),
		nullable(submission.Phone),
		submission.Service,
		nullable(submission.Budget),
		nullable(submission.Timeline),
		submission.Message,
	).Scan(&submission.ID, &submission.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, phone, company, password_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5, NOW())
	          RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		nullable(user.Phone),
		nullable(user.Company),
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, name, email, phone, company, password_hash, created_at
	          FROM users WHERE email = $1`

	var user domain.User
	var phone, company sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&phone,
		&company,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	user.Phone = fromNullable(phone)
	user.Company = fromNullable(company)
	return &user, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*PaymentEvent, error) {
	query := `SELECT id, order_id, txn_id, event_type, payload
	          FROM payment_events
	          WHERE processed = false
	          ORDER BY created_at
	          LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*PaymentEvent
	for rows.Next() {
		var event PaymentEvent
		if err := rows.Scan(&event.ID, &event.OrderID, &event.TxnID, &event.EventType, &event.Payload); err != nil {
			return nil, fmt.Errorf("scan payment event: %w", err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE payment_events SET processed = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
