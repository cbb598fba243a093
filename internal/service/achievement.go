package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
)

type AchievementService struct {
	achievements repository.AchievementRepository
}

func NewAchievementService(achievements repository.AchievementRepository) *AchievementService {
	return &AchievementService{achievements: achievements}
}

func (s *AchievementService) Achievements(userID string) ([]*model.Achievement, error) {
	return s.achievements.ForUser(userID)
}

func (s *AchievementService) Completed(userID string) ([]*model.Achievement, error) {
	return s.achievements.CompletedForUser(userID)
}

func (s *AchievementService) ByID(userID, achievementID string) (*model.Achievement, error) {
	achievement, err := s.achievements.ByID(achievementID)
	if err != nil {
		return nil, err
	}
	if achievement.UserID != userID {
		return nil, ErrForbidden
	}
	return achievement, nil
}

type AchievementCreateInput struct {
	Title       string
	Description *string
	Icon        *string
	Color       *string
	Completed   bool
}

// Create adds an achievement; titles are unique per user. An achievement born
// completed is stamped with today.
func (s *AchievementService) Create(userID string, in AchievementCreateInput) (*model.Achievement, error) {
	_, err := s.achievements.ByUserAndTitle(userID, in.Title)
	if err == nil {
		return nil, repository.ErrDuplicateAchievement
	}
	if !errors.Is(err, repository.ErrAchievementNotFound) {
		return nil, fmt.Errorf("failed to check achievement title: %w", err)
	}

	achievement := &model.Achievement{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		Completed:   in.Completed,
	}
	if achievement.Completed {
		now := time.Now().UTC()
		achievement.DateEarned = &now
	}

	err = s.achievements.Create(achievement)
	if err != nil {
		return nil, err
	}

	return achievement, nil
}

type AchievementUpdateInput struct {
	Title       *string
	Description *string
	Icon        *string
	Color       *string
	Completed   *bool
}

// Update rewrites an achievement. Completing it stamps date_earned if unset;
// un-completing clears the stamp.
func (s *AchievementService) Update(userID, achievementID string, in AchievementUpdateInput) (*model.Achievement, error) {
	achievement, err := s.achievements.ByID(achievementID)
	if err != nil {
		return nil, err
	}
	if achievement.UserID != userID {
		return nil, ErrForbidden
	}

	if in.Title != nil && *in.Title != achievement.Title {
		_, err = s.achievements.ByUserAndTitle(userID, *in.Title)
		if err == nil {
			return nil, repository.ErrDuplicateAchievement
		}
		if !errors.Is(err, repository.ErrAchievementNotFound) {
			return nil, fmt.Errorf("failed to check achievement title: %w", err)
		}
		achievement.Title = *in.Title
	}
	if in.Description != nil {
		achievement.Description = in.Description
	}
	if in.Icon != nil {
		achievement.Icon = in.Icon
	}
	if in.Color != nil {
		achievement.Color = in.Color
	}
	if in.Completed != nil {
		switch {
		case *in.Completed && !achievement.Completed:
			if achievement.DateEarned == nil {
				now := time.Now().UTC()
				achievement.DateEarned = &now
			}
		case !*in.Completed && achievement.Completed:
			achievement.DateEarned = nil
		}
		achievement.Completed = *in.Completed
	}

	err = s.achievements.Update(achievement)
	if err != nil {
		return nil, err
	}

	return achievement, nil
}

func (s *AchievementService) Delete(userID, achievementID string) error {
	achievement, err := s.achievements.ByID(achievementID)
	if err != nil {
		return err
	}
	if achievement.UserID != userID {
		return ErrForbidden
	}

	return s.achievements.Delete(achievementID)
}
