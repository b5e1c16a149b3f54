package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"wedding-planner/utilities"
)

// Connect abre a conexão com o banco do contador de cota.
// driver é "postgres" em produção ou "sqlite" para rodar localmente.
func Connect(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		utilities.LogError(err, "Erro ao abrir conexão com o banco de dados")
		return nil, err
	}

	if driver == "sqlite" {
		// o sqlite não aceita escritas concorrentes
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		utilities.LogError(err, "Erro ao conectar ao banco de dados")
		db.Close()
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	utilities.LogInfo("Conectado ao banco de dados (%s) com sucesso!", driver)
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS email_quota (
	user_uid TEXT NOT NULL,
	day      TEXT NOT NULL,
	sent     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (user_uid, day)
)`

// Migrate cria as tabelas usadas pelo serviço. O SQL é compatível com Postgres e SQLite.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("erro ao criar tabela email_quota: %w", err)
	}
	return nil
}
