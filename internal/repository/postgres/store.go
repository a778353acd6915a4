package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/marketerrors"
	model "marketplace/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

// Store implements repository.MarketDB on PostgreSQL
type Store struct {
	pool *pgxpool.Pool
}

// NewPool connects to dsn and verifies the connection
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to DB: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database pool ping failed: %w", err)
	}
	return pool, nil
}

// NewStore creates a Store on top of an open pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const productColumns = `id, name, price, stock, status`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Status)
	return p, err
}

func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, fmt.Errorf("get product %s: %w", id, marketerrors.ErrProductNotFound)
		}
		return model.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	query := `
        INSERT INTO products (name, price, stock, status)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + productColumns
	created, err := scanProduct(s.pool.QueryRow(ctx, query, p.Name, p.Price, p.Stock, p.Status))
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

const auctionColumns = `id, product_name, starting_price, current_price, status, last_bid_at, created_at`

func scanAuction(row pgx.Row) (model.Auction, error) {
	var (
		a         model.Auction
		status    string
		lastBidAt *time.Time // NULL until the first ordered update
	)
	err := row.Scan(&a.ID, &a.ProductName, &a.StartingPrice, &a.CurrentPrice, &status, &lastBidAt, &a.CreatedAt)
	a.Status = model.AuctionStatus(status)
	a.LastBidAt = lastBidAt
	return a, err
}

func (s *Store) ListAuctions(ctx context.Context) ([]model.Auction, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+auctionColumns+` FROM auctions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer rows.Close()

	auctions := []model.Auction{}
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("list auctions: scan: %w", err)
		}
		auctions = append(auctions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

func (s *Store) GetAuction(ctx context.Context, id string) (model.Auction, error) {
	a, err := scanAuction(s.pool.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Auction{}, fmt.Errorf("get auction %s: %w", id, marketerrors.ErrAuctionNotFound)
		}
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, err)
	}
	return a, nil
}

func (s *Store) CreateAuction(ctx context.Context, a model.Auction) (model.Auction, error) {
	query := `
        INSERT INTO auctions (product_name, starting_price, current_price, status)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + auctionColumns
	created, err := scanAuction(s.pool.QueryRow(ctx, query, a.ProductName, a.StartingPrice, a.CurrentPrice, string(a.Status)))
	if err != nil {
		return model.Auction{}, fmt.Errorf("create auction: %w", err)
	}
	return created, nil
}

// SetCurrentPrice is a single unconditional UPDATE
func (s *Store) SetCurrentPrice(ctx context.Context, auctionID string, amount float64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE auctions SET current_price = $2 WHERE id = $1`, auctionID, amount)
	if err != nil {
		return fmt.Errorf("set current price for auction %s: %w", auctionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set current price for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
	}
	return nil
}

// ApplyBidPrice locks the auction row, compares last_bid_at and updates in one transaction
func (s *Store) ApplyBidPrice(ctx context.Context, auctionID string, amount float64, bidAt time.Time) (applied bool, err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("apply bid price: begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			applied = false
			err = fmt.Errorf("apply bid price: commit: %w", commitErr)
		}
	}()

	var lastBidAt *time.Time
	err = tx.QueryRow(ctx, `SELECT last_bid_at FROM auctions WHERE id = $1 FOR UPDATE`, auctionID).Scan(&lastBidAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("apply bid price for auction %s: %w", auctionID, marketerrors.ErrAuctionNotFound)
		}
		return false, fmt.Errorf("apply bid price for auction %s: %w", auctionID, err)
	}
	if lastBidAt != nil && !bidAt.After(*lastBidAt) {
		return false, nil
	}

	_, err = tx.Exec(ctx, `UPDATE auctions SET current_price = $2, last_bid_at = $3 WHERE id = $1`, auctionID, amount, bidAt)
	if err != nil {
		return false, fmt.Errorf("apply bid price for auction %s: %w", auctionID, err)
	}
	return true, nil
}

const bidColumns = `id, auction_id, bidder_id, amount, created_at`

func scanBid(row pgx.Row) (model.Bid, error) {
	var b model.Bid
	err := row.Scan(&b.ID, &b.AuctionID, &b.BidderID, &b.Amount, &b.CreatedAt)
	return b, err
}

func (s *Store) CreateBid(ctx context.Context, bid model.Bid) (model.Bid, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bids (`+bidColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		bid.ID, bid.AuctionID, bid.BidderID, bid.Amount, bid.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return model.Bid{}, fmt.Errorf("create bid for auction %s: %w", bid.AuctionID, marketerrors.ErrAuctionNotFound)
		}
		return model.Bid{}, fmt.Errorf("create bid for auction %s: %w", bid.AuctionID, err)
	}
	return bid, nil
}

func (s *Store) GetBid(ctx context.Context, auctionID, bidID string) (model.Bid, error) {
	b, err := scanBid(s.pool.QueryRow(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 AND id = $2`, auctionID, bidID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Bid{}, fmt.Errorf("get bid %s for auction %s: %w", bidID, auctionID, marketerrors.ErrBidNotFound)
		}
		return model.Bid{}, fmt.Errorf("get bid %s for auction %s: %w", bidID, auctionID, err)
	}
	return b, nil
}

func (s *Store) ListBids(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if _, err := s.GetAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+bidColumns+` FROM bids WHERE auction_id = $1 ORDER BY created_at ASC`, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, err)
	}
	defer rows.Close()

	bids := []model.Bid{}
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("list bids for auction %s: scan: %w", auctionID, err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}
