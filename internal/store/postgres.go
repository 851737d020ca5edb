package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/ticketdraft/ticket-draft-backend/internal/draft"
	"github.com/ticketdraft/ticket-draft-backend/internal/notify"
)

// Postgres is the GORM-backed Room Store. Every successful mutation publishes
// a payload-free invalidation for the room; subscribers re-fetch, they never
// receive deltas.
type Postgres struct {
	db  *gorm.DB
	bus notify.Bus
}

// OpenPostgres connects, migrates the three tables, and wires the notifier.
func OpenPostgres(dsn string, bus notify.Bus) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}
	if err := db.AutoMigrate(&draft.Room{}, &draft.Player{}, &draft.Game{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Postgres{db: db, bus: bus}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *Postgres) notifyRoom(ctx context.Context, code string) {
	if p.bus != nil {
		_ = p.bus.Publish(ctx, code)
	}
}

func (p *Postgres) GetRoom(ctx context.Context, code string) (draft.Room, error) {
	var room draft.Room
	err := p.db.WithContext(ctx).First(&room, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return draft.Room{}, draft.ErrRoomNotFound
		}
		return draft.Room{}, fmt.Errorf("store: get room %q: %w", code, err)
	}
	return room, nil
}

func (p *Postgres) EnsureRoom(ctx context.Context, code string) (draft.Room, error) {
	room := draft.Room{Code: code}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&room).Error
	if err != nil {
		return draft.Room{}, fmt.Errorf("store: ensure room %q: %w", code, err)
	}
	return p.GetRoom(ctx, code)
}

func (p *Postgres) SetRoomOrder(ctx context.Context, code string, order []string) error {
	err := p.db.WithContext(ctx).Model(&draft.Room{}).
		Where("code = ?", code).
		Update("draft_order", order).Error
	if err != nil {
		return fmt.Errorf("store: set order for %q: %w", code, err)
	}
	p.notifyRoom(ctx, code)
	return nil
}

func (p *Postgres) SetRoomSnake(ctx context.Context, code string, snake bool) error {
	err := p.db.WithContext(ctx).Model(&draft.Room{}).
		Where("code = ?", code).
		Update("snake", snake).Error
	if err != nil {
		return fmt.Errorf("store: set snake for %q: %w", code, err)
	}
	p.notifyRoom(ctx, code)
	return nil
}

func (p *Postgres) AdvanceTurn(ctx context.Context, code string) error {
	err := p.db.WithContext(ctx).Model(&draft.Room{}).
		Where("code = ?", code).
		Update("turn", gorm.Expr("turn + 1")).Error
	if err != nil {
		return fmt.Errorf("store: advance turn for %q: %w", code, err)
	}
	p.notifyRoom(ctx, code)
	return nil
}

func (p *Postgres) ListPlayers(ctx context.Context, code string) ([]draft.Player, error) {
	var players []draft.Player
	err := p.db.WithContext(ctx).
		Where("room_code = ?", code).
		Order("created_at").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("store: list players for %q: %w", code, err)
	}
	return players, nil
}

func (p *Postgres) GetPlayerByEmail(ctx context.Context, code, email string) (draft.Player, bool, error) {
	var player draft.Player
	err := p.db.WithContext(ctx).
		Where("room_code = ? AND email_ci = ?", code, strings.ToLower(email)).
		First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return draft.Player{}, false, nil
		}
		return draft.Player{}, false, fmt.Errorf("store: find player in %q: %w", code, err)
	}
	return player, true, nil
}

func (p *Postgres) UpsertPlayer(ctx context.Context, code, email, name string) error {
	player := draft.Player{
		RoomCode: code,
		Email:    email,
		EmailCI:  strings.ToLower(email),
		Name:     name,
	}
	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_code"}, {Name: "email_ci"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email"}),
		}).
		Create(&player).Error
	if err != nil {
		return fmt.Errorf("store: upsert player in %q: %w", code, err)
	}
	p.notifyRoom(ctx, code)
	return nil
}

func (p *Postgres) ListGames(ctx context.Context, code string) ([]draft.Game, error) {
	var games []draft.Game
	err := p.db.WithContext(ctx).
		Where("room_code = ?", code).
		Order("id").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("store: list games for %q: %w", code, err)
	}
	return games, nil
}

func (p *Postgres) InsertGame(ctx context.Context, g draft.Game) error {
	if err := p.db.WithContext(ctx).Create(&g).Error; err != nil {
		return fmt.Errorf("store: insert game in %q: %w", g.RoomCode, err)
	}
	p.notifyRoom(ctx, g.RoomCode)
	return nil
}

func (p *Postgres) DeleteGame(ctx context.Context, code string, id uint) error {
	err := p.db.WithContext(ctx).
		Where("room_code = ? AND id = ?", code, id).
		Delete(&draft.Game{}).Error
	if err != nil {
		return fmt.Errorf("store: delete game %d in %q: %w", id, code, err)
	}
	p.notifyRoom(ctx, code)
	return nil
}

// ClaimGame is the one write that carries the concurrency burden: a single
// conditional UPDATE guarded by picked_by IS NULL. The database applies it
// atomically, so of two racing claimants at most one sees matched == 1.
func (p *Postgres) ClaimGame(ctx context.Context, code string, id uint, claimant string) (int64, error) {
	res := p.db.WithContext(ctx).Model(&draft.Game{}).
		Where("room_code = ? AND id = ? AND picked_by IS NULL", code, id).
		Update("picked_by", claimant)
	if res.Error != nil {
		return 0, fmt.Errorf("store: claim game %d in %q: %w", id, code, res.Error)
	}
	if res.RowsAffected > 0 {
		p.notifyRoom(ctx, code)
	}
	return res.RowsAffected, nil
}
