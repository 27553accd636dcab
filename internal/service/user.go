package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
)

type UserInput struct {
	Name     string `json:"name"`
	HeightCm *int   `json:"height_cm,omitempty"`
	WeightKg *int   `json:"weight_kg,omitempty"`
	Age      *int   `json:"age,omitempty"`
	Sex      string `json:"sex,omitempty"`
}

func CreateUser(ctx context.Context, db *sql.DB, in UserInput) (model.User, error) {
	name, err := requireName("user", in.Name)
	if err != nil {
		return model.User{}, err
	}
	for field, v := range map[string]*int{"height_cm": in.HeightCm, "weight_kg": in.WeightKg, "age": in.Age} {
		if err := validatePositiveOptional(field, v); err != nil {
			return model.User{}, err
		}
	}
	sex := strings.ToUpper(strings.TrimSpace(in.Sex))
	if sex != "" && sex != "M" && sex != "F" {
		return model.User{}, validationf("sex must be M or F, got %q", in.Sex)
	}

	var sexArg any
	if sex != "" {
		sexArg = sex
	}
	res, err := db.ExecContext(ctx, `INSERT INTO users(name, height_cm, weight_kg, age, sex) VALUES(?, ?, ?, ?, ?)`,
		name, nullableInt(in.HeightCm), nullableInt(in.WeightKg), nullableInt(in.Age), sexArg)
	if err != nil {
		return model.User{}, fmt.Errorf("insert user %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("read user id: %w", err)
	}
	return UserByID(ctx, db, id)
}

func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, height_cm, weight_kg, age, IFNULL(sex, ''), created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func UserByID(ctx context.Context, db *sql.DB, id int64) (model.User, error) {
	return userByID(ctx, db, id)
}

func userByID(ctx context.Context, q querier, id int64) (model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, `SELECT id, name, height_cm, weight_kg, age, IFNULL(sex, ''), created_at FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, notFoundf("user %d", id)
		}
		return model.User{}, fmt.Errorf("load user %d: %w", id, err)
	}
	return u, nil
}

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var height, weight, age sql.NullInt64
	if err := row.Scan(&u.ID, &u.Name, &height, &weight, &age, &u.Sex, &u.CreatedAt); err != nil {
		return model.User{}, err
	}
	u.HeightCm = intPtr(height)
	u.WeightKg = intPtr(weight)
	u.Age = intPtr(age)
	return u, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
