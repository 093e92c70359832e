// Package db は store.driver が sqlite / postgres のときのリレーショナルストアを開きます。
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config はダイアレクトと接続文字列を指定します。
type Config struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
}

// Opener は DSN から gorm の接続を開きます。
type Opener func(dsn string) (*gorm.DB, error)

// ErrUnsupportedDriver は sqlite / postgres 以外のドライバー指定で返します。
var ErrUnsupportedDriver = errors.New("unsupported database driver")

const retryBase = 500 * time.Millisecond

// OpenerFor はドライバー名に対応する Opener を返します。
func OpenerFor(driver string) (Opener, error) {
	var dial func(string) gorm.Dialector
	switch driver {
	case "sqlite":
		dial = sqlite.Open
	case "postgres":
		dial = postgres.Open
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		gdb, err := gorm.Open(dial(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, err
		}
		if driver == "sqlite" {
			// sqlite は書き込みが1接続のみ。インメモリDBは接続ごとに別物になる
			sqlDB, err := gdb.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return gdb, nil
	}, nil
}

// Open はリトライ付きで接続し、models の AutoMigrate を実行します。
func Open(ctx context.Context, cfg Config, models ...any) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	gdb, err := ConnectWithRetry(ctx, cfg.DSN, cfg.ConnectTimeout, opener)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, gdb, models...); err != nil {
		return nil, err
	}
	return gdb, nil
}

// ConnectWithRetry は成功するか timeout を過ぎるまでフィボナッチバックオフで open を呼びます。
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	backoff := retry.WithMaxDuration(timeout, retry.NewFibonacci(retryBase))

	var gdb *gorm.DB
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		db, err := open(dsn)
		if err != nil {
			slog.WarnContext(ctx, "database connect failed, retrying", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		gdb = db
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("database connect failed after %d attempts: %w", attempt, err)
	}
	return gdb, nil
}

// Migrate は models のテーブルとインデックスを作成・更新します。
func Migrate(ctx context.Context, gdb *gorm.DB, models ...any) error {
	if len(models) == 0 {
		return nil
	}
	if err := gdb.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping はコネクションプールに到達できるか確認します。
func Ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close はコネクションプールを解放します。
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
