package config

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"busbooking/internal/utils"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB initializes the shared DB connection and applies the schema (idempotent).
func ConnectDB(env Env) *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		env.DB.User,
		env.DB.Password,
		env.DB.Host,
		env.DB.Name,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		utils.Log().Fatal("failed to open DB", zap.Error(err))
	}

	db.SetMaxOpenConns(env.DB.MaxOpenConns)
	db.SetMaxIdleConns(env.DB.MaxIdleConns)
	db.SetConnMaxLifetime(env.DB.ConnMaxLifetime)
	db.SetConnMaxIdleTime(env.DB.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		utils.Log().Fatal("failed to ping DB", zap.Error(err))
	}

	if err := initSchema(db); err != nil {
		utils.Log().Fatal("failed to apply schema", zap.Error(err))
	}

	DB = db
	utils.Log().Info("connected to MySQL", zap.String("host", env.DB.Host), zap.String("database", env.DB.Name))
	return DB
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
	}
}
