package db

import (
	"database/sql"
	"errors"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "users_and_catalog",
		sql: `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  height_cm INTEGER CHECK(height_cm IS NULL OR height_cm > 0),
  weight_kg INTEGER CHECK(weight_kg IS NULL OR weight_kg > 0),
  age INTEGER CHECK(age IS NULL OR age > 0),
  sex TEXT CHECK(sex IS NULL OR sex IN ('M','F')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS food_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  calories_per_100g INTEGER NOT NULL CHECK(calories_per_100g >= 0),
  protein_per_100g REAL NOT NULL CHECK(protein_per_100g >= 0),
  carbs_per_100g REAL NOT NULL CHECK(carbs_per_100g >= 0),
  fat_per_100g REAL NOT NULL CHECK(fat_per_100g >= 0),
  sodium_mg_per_100g INTEGER NOT NULL CHECK(sodium_mg_per_100g >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "meal_plans",
		sql: `
CREATE TABLE IF NOT EXISTS meal_plans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  goal TEXT NOT NULL CHECK(goal IN ('Weight Loss','Muscle Gain','Low Sodium','Balanced Diet')),
  duration_days INTEGER NOT NULL CHECK(duration_days > 0),
  status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active','completed')),
  current_day INTEGER NOT NULL DEFAULT 0 CHECK(current_day >= 0 AND current_day <= duration_days),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_meal_plans_one_active
  ON meal_plans(user_id) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS meal_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_plan_id INTEGER NOT NULL,
  food_item_id INTEGER NOT NULL,
  day_index INTEGER NOT NULL CHECK(day_index >= 0),
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast','lunch','dinner','snack')),
  grams INTEGER NOT NULL CHECK(grams > 0),
  FOREIGN KEY(meal_plan_id) REFERENCES meal_plans(id) ON DELETE CASCADE,
  FOREIGN KEY(food_item_id) REFERENCES food_items(id)
);

CREATE INDEX IF NOT EXISTS idx_meal_entries_plan_day ON meal_entries(meal_plan_id, day_index);

CREATE TABLE IF NOT EXISTS meal_recommendations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_plan_id INTEGER NOT NULL,
  food_item_id INTEGER NOT NULL,
  day_index INTEGER NOT NULL CHECK(day_index >= 0),
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast','lunch','dinner','snack')),
  recommended_grams INTEGER NOT NULL CHECK(recommended_grams > 0),
  FOREIGN KEY(meal_plan_id) REFERENCES meal_plans(id) ON DELETE CASCADE,
  FOREIGN KEY(food_item_id) REFERENCES food_items(id)
);

CREATE INDEX IF NOT EXISTS idx_meal_recommendations_slot
  ON meal_recommendations(meal_plan_id, day_index, meal_type);
`,
	},
	{
		version: 3,
		name:    "day_tracking",
		sql: `
CREATE TABLE IF NOT EXISTS actual_meal_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_plan_id INTEGER NOT NULL,
  food_item_id INTEGER NOT NULL,
  day_index INTEGER NOT NULL CHECK(day_index >= 0),
  meal_type TEXT NOT NULL CHECK(meal_type IN ('breakfast','lunch','dinner','snack')),
  grams INTEGER NOT NULL CHECK(grams > 0),
  FOREIGN KEY(meal_plan_id) REFERENCES meal_plans(id) ON DELETE CASCADE,
  FOREIGN KEY(food_item_id) REFERENCES food_items(id),
  UNIQUE(meal_plan_id, day_index, meal_type)
);

CREATE TABLE IF NOT EXISTS daily_trackings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_plan_id INTEGER NOT NULL,
  day_index INTEGER NOT NULL CHECK(day_index >= 0),
  feedback TEXT NOT NULL CHECK(feedback IN ('strictly_followed','less_healthy','more_healthy')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(meal_plan_id) REFERENCES meal_plans(id) ON DELETE CASCADE,
  UNIQUE(meal_plan_id, day_index)
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	if _, err := tx.Exec(m.sql); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration version %d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration version %d: %w", m.version, err)
	}
	return nil
}

// LatestVersion is the schema version ApplyMigrations brings a database to.
func LatestVersion() int {
	return migrations[len(migrations)-1].version
}
