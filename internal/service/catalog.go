package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
)

type FoodInput struct {
	Name            string  `json:"name"`
	CaloriesPer100g int     `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	SodiumMgPer100g int     `json:"sodium_mg_per_100g"`
}

func (in FoodInput) validate() error {
	if err := validateNonNegativeInt("calories_per_100g", in.CaloriesPer100g); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein_per_100g", in.ProteinPer100g); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs_per_100g", in.CarbsPer100g); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat_per_100g", in.FatPer100g); err != nil {
		return err
	}
	return validateNonNegativeInt("sodium_mg_per_100g", in.SodiumMgPer100g)
}

func CreateFood(ctx context.Context, db *sql.DB, in FoodInput) (model.FoodItem, error) {
	name, err := requireName("food", in.Name)
	if err != nil {
		return model.FoodItem{}, err
	}
	if err := in.validate(); err != nil {
		return model.FoodItem{}, err
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO food_items(name, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g, sodium_mg_per_100g)
VALUES(?, ?, ?, ?, ?, ?)`, name, in.CaloriesPer100g, in.ProteinPer100g, in.CarbsPer100g, in.FatPer100g, in.SodiumMgPer100g)
	if err != nil {
		return model.FoodItem{}, fmt.Errorf("insert food %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.FoodItem{}, fmt.Errorf("read food id: %w", err)
	}
	return model.FoodItem{
		ID:              id,
		Name:            name,
		CaloriesPer100g: in.CaloriesPer100g,
		ProteinPer100g:  in.ProteinPer100g,
		CarbsPer100g:    in.CarbsPer100g,
		FatPer100g:      in.FatPer100g,
		SodiumMgPer100g: in.SodiumMgPer100g,
	}, nil
}

// ListFoods returns the whole catalog in insertion order.
func ListFoods(ctx context.Context, db *sql.DB) ([]model.FoodItem, error) {
	return listFoods(ctx, db)
}

func FoodByID(ctx context.Context, db *sql.DB, id int64) (model.FoodItem, error) {
	return foodByID(ctx, db, id)
}
