package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/iliyamo/wishlist/internal/model"
)

// PresentRepo provides CRUD operations for catalog presents plus the
// guarded reservation transition.  Images are stored as a JSON array in a
// single column so their display order survives round trips.  All
// timestamp fields are stored in UTC.
type PresentRepo struct {
	db *sql.DB
}

// NewPresentRepo returns a new PresentRepo bound to the given database.
func NewPresentRepo(db *sql.DB) *PresentRepo { return &PresentRepo{db: db} }

// DB exposes the underlying handle for callers that need to coordinate
// with the repository (e.g. schema checks in the seed binary).
func (r *PresentRepo) DB() *sql.DB { return r.db }

const presentColumns = `id, name, description, price, images, is_reserved, created_at, updated_at`

// PriceFilter restricts List to a price range.  Nil bounds are open.
type PriceFilter struct {
	Min *float64
	Max *float64
}

// List returns all presents ordered by creation time, newest first.  An
// optional price filter narrows the result in SQL rather than in memory.
func (r *PresentRepo) List(ctx context.Context, filter PriceFilter) ([]model.Present, error) {
	q := `SELECT ` + presentColumns + ` FROM presents`
	args := make([]interface{}, 0, 2)
	where := ""
	if filter.Min != nil {
		where = ` WHERE price >= ?`
		args = append(args, *filter.Min)
	}
	if filter.Max != nil {
		if where == "" {
			where = ` WHERE price <= ?`
		} else {
			where += ` AND price <= ?`
		}
		args = append(args, *filter.Max)
	}
	q += where + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Present{}
	for rows.Next() {
		p, err := scanPresent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single present or ErrPresentNotFound.
func (r *PresentRepo) GetByID(ctx context.Context, id string) (*model.Present, error) {
	const q = `SELECT ` + presentColumns + ` FROM presents WHERE id = ?`
	p, err := scanPresent(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrPresentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new present.  The repository assigns the UUID and the
// database assigns both timestamps; the stored row is read back so the
// caller sees exactly what was persisted.
func (r *PresentRepo) Create(ctx context.Context, name, description string, price float64, images []string) (*model.Present, error) {
	id := uuid.NewString()
	imgJSON, err := marshalImages(images)
	if err != nil {
		return nil, err
	}
	const q = `INSERT INTO presents (id, name, description, price, images, is_reserved) VALUES (?, ?, ?, ?, ?, 0)`
	if _, err := r.db.ExecContext(ctx, q, id, name, description, price, imgJSON); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update overwrites every mutable field of a present, including the
// reservation flag.  This is the administrative write path: it is not
// guarded by the shared code and may reset is_reserved back to 0.
func (r *PresentRepo) Update(ctx context.Context, id, name, description string, price float64, images []string, isReserved bool) (*model.Present, error) {
	imgJSON, err := marshalImages(images)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE presents SET name = ?, description = ?, price = ?, images = ?, is_reserved = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, description, price, imgJSON, isReserved, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// MySQL reports 0 affected rows both for a missing row and for a
		// no-op overwrite, so confirm existence before reporting not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a present.  Returns ErrPresentNotFound when no row
// matched the ID.
func (r *PresentRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM presents WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPresentNotFound
	}
	return nil
}

// Reserve flips is_reserved from 0 to 1 for a single present.  The update
// is conditional on the current flag, so two concurrent attempts on the
// same present are serialized by the database: exactly one statement
// affects a row, the other observes ErrAlreadyReserved.  The shared-code
// check happens in the handler before the store is touched at all.
func (r *PresentRepo) Reserve(ctx context.Context, id string) (*model.Present, error) {
	const q = `UPDATE presents SET is_reserved = 1, updated_at = UTC_TIMESTAMP() WHERE id = ? AND is_reserved = 0`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Either the present does not exist or it lost the race.  A plain
		// lookup distinguishes the two; GetByID yields ErrPresentNotFound
		// for the former.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		// The update matched no row, so the present was reserved at that
		// instant (an admin overwrite may have cleared the flag since).
		return nil, ErrAlreadyReserved
	}
	return r.GetByID(ctx, id)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPresent(row rowScanner) (model.Present, error) {
	var p model.Present
	var imgJSON []byte
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &imgJSON, &p.IsReserved, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Present{}, err
	}
	if len(imgJSON) > 0 {
		if err := json.Unmarshal(imgJSON, &p.Images); err != nil {
			return model.Present{}, err
		}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

func marshalImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}
