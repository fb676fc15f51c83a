package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/thekirsila/telegram-pingpong-ranking/internal/models"
	"gorm.io/gorm"
)

type Storage struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&models.Player{},
		&models.Match{},
		&models.Group{},
	); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}
	return nil
}

// GetPlayer returns (nil, nil) when no player with that name exists.
func (s *Storage) GetPlayer(ctx context.Context, name string) (*models.Player, error) {
	var player models.Player
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting player: %w", err)
	}
	return &player, nil
}

func (s *Storage) PlayerExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := s.db.
		WithContext(ctx).
		Model(&models.Player{}).
		Where("name = ?", name).
		Count(&count).
		Error; err != nil {
		return false, fmt.Errorf("counting players: %w", err)
	}
	return count > 0, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *models.Player) error {
	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		return fmt.Errorf("creating player: %w", err)
	}
	return nil
}

func (s *Storage) UpdatePlayerRating(ctx context.Context, name string, newRating int) error {
	if err := s.db.
		WithContext(ctx).
		Model(&models.Player{}).
		Where("name = ?", name).
		Update("rating", newRating).
		Error; err != nil {
		return fmt.Errorf("updating player rating: %w", err)
	}
	return nil
}

func (s *Storage) UpdatePlayerChatID(ctx context.Context, name string, chatID int64) error {
	if err := s.db.
		WithContext(ctx).
		Model(&models.Player{}).
		Where("name = ?", name).
		Update("chat_id", chatID).
		Error; err != nil {
		return fmt.Errorf("updating player chat id: %w", err)
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	var result []*models.Player
	if err := s.db.WithContext(ctx).Find(&result).Error; err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	return result, nil
}

func (s *Storage) CreateMatch(ctx context.Context, match *models.Match) error {
	if err := s.db.WithContext(ctx).Create(match).Error; err != nil {
		return fmt.Errorf("creating match: %w", err)
	}
	return nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*models.Match, error) {
	var result []*models.Match
	if err := s.db.WithContext(ctx).Find(&result).Error; err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return result, nil
}

func (s *Storage) ListMatchesForPlayer(ctx context.Context, name string) ([]*models.Match, error) {
	var result []*models.Match
	if err := s.db.
		WithContext(ctx).
		Where("player1 = ? OR player2 = ?", name, name).
		Find(&result).
		Error; err != nil {
		return nil, fmt.Errorf("listing matches for player: %w", err)
	}
	return result, nil
}

func (s *Storage) CountMatches(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Match{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting matches: %w", err)
	}
	return count, nil
}

// GetGroup returns (nil, nil) when the chat has not been added.
func (s *Storage) GetGroup(ctx context.Context, chatID int64) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting group: %w", err)
	}
	return &group, nil
}

func (s *Storage) CreateGroup(ctx context.Context, group *models.Group) error {
	if err := s.db.WithContext(ctx).Create(group).Error; err != nil {
		return fmt.Errorf("creating group: %w", err)
	}
	return nil
}

func (s *Storage) ListGroups(ctx context.Context) ([]*models.Group, error) {
	var result []*models.Group
	if err := s.db.WithContext(ctx).Find(&result).Error; err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	return result, nil
}
