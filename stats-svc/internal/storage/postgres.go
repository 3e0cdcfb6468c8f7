package storage

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

// DishNames reads dish names from the planner's catalog tables.
type DishNames struct {
	DB *sql.DB
}

func NewDishNames(db *sql.DB) *DishNames {
	return &DishNames{DB: db}
}

func (d *DishNames) Names(ctx context.Context, ids []int) (map[int]string, error) {
	names := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	arr := make([]int64, len(ids))
	for i, id := range ids {
		arr[i] = int64(id)
	}
	rows, err := d.DB.QueryContext(ctx, `SELECT id, name FROM dishes WHERE id = ANY($1)`, pq.Array(arr))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
