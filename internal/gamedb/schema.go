package gamedb

import "context"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS library_records (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		alternative_titles TEXT,
		year INTEGER,
		languages TEXT,
		authors TEXT,
		publishers TEXT,
		summary TEXT,
		genres TEXT,
		subjects TEXT,
		playing_times TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS relations (
		source_id TEXT PRIMARY KEY,
		target_id TEXT,
		match_kind TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		primary_name TEXT,
		all_names TEXT,
		year INTEGER,
		description TEXT,
		min_players TEXT,
		max_players TEXT,
		playing_time TEXT,
		min_age TEXT,
		designers TEXT,
		artists TEXT,
		publishers TEXT,
		rank TEXT,
		average_rating TEXT,
		bayes_average TEXT,
		users_rated TEXT,
		weight TEXT,
		owned TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		category_id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS mechanics (
		mechanic_id INTEGER PRIMARY KEY AUTOINCREMENT,
		mechanic TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS game_categories (
		game_id TEXT NOT NULL,
		category_id INTEGER NOT NULL,
		PRIMARY KEY (game_id, category_id),
		FOREIGN KEY (category_id) REFERENCES categories(category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS game_mechanics (
		game_id TEXT NOT NULL,
		mechanic_id INTEGER NOT NULL,
		PRIMARY KEY (game_id, mechanic_id),
		FOREIGN KEY (mechanic_id) REFERENCES mechanics(mechanic_id)
	)`,
	`CREATE TABLE IF NOT EXISTS availability (
		record_id TEXT PRIMARY KEY,
		title TEXT,
		num_locations INTEGER,
		locations TEXT,
		organizations TEXT,
		buildings_json TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_relations_target ON relations(target_id)`,
	`CREATE INDEX IF NOT EXISTS idx_relations_kind ON relations(match_kind)`,
	`CREATE INDEX IF NOT EXISTS idx_game_categories_cat ON game_categories(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_game_mechanics_mech ON game_mechanics(mechanic_id)`,
}

func (s *Store) applySchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return wrapf(err, "apply schema")
		}
	}
	return nil
}
