package service

import (
	"github.com/google/uuid"
	"github.com/vitatrack/vitatrack/internal/model"
	"github.com/vitatrack/vitatrack/internal/repository"
	"github.com/vitatrack/vitatrack/internal/validation"
)

// TemplateService manages the shared workout template catalog. Templates are
// global, not per-user.
type TemplateService struct {
	templates repository.WorkoutTemplateRepository
	workouts  *WorkoutService
}

func NewTemplateService(templates repository.WorkoutTemplateRepository, workouts *WorkoutService) *TemplateService {
	return &TemplateService{templates: templates, workouts: workouts}
}

func (s *TemplateService) Templates(filter repository.TemplateFilter) ([]*model.WorkoutTemplate, error) {
	return s.templates.All(filter)
}

func (s *TemplateService) ByID(id string) (*model.WorkoutTemplate, error) {
	return s.templates.ByID(id)
}

type TemplateCreateInput struct {
	Name              string
	Description       *string
	Difficulty        *string
	EstimatedDuration *int
	TargetArea        *string
}

func (s *TemplateService) Create(in TemplateCreateInput) (*model.WorkoutTemplate, error) {
	template := &model.WorkoutTemplate{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		Difficulty:        in.Difficulty,
		EstimatedDuration: in.EstimatedDuration,
		TargetArea:        in.TargetArea,
	}

	err := s.templates.Create(template)
	if err != nil {
		return nil, err
	}

	return template, nil
}

type TemplateUpdateInput struct {
	Name              *string
	Description       *string
	Difficulty        *string
	EstimatedDuration *int
	TargetArea        *string
}

func (s *TemplateService) Update(id string, in TemplateUpdateInput) (*model.WorkoutTemplate, error) {
	template, err := s.templates.ByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		template.Name = *in.Name
	}
	if in.Description != nil {
		template.Description = in.Description
	}
	if in.Difficulty != nil {
		template.Difficulty = in.Difficulty
	}
	if in.EstimatedDuration != nil {
		template.EstimatedDuration = in.EstimatedDuration
	}
	if in.TargetArea != nil {
		template.TargetArea = in.TargetArea
	}

	err = s.templates.Update(template)
	if err != nil {
		return nil, err
	}

	return template, nil
}

func (s *TemplateService) Delete(id string) error {
	return s.templates.Delete(id)
}

// StartWorkout creates a fresh, not-yet-completed workout for today from a
// template.
func (s *TemplateService) StartWorkout(userID, templateID string) (*model.Workout, error) {
	template, err := s.templates.ByID(templateID)
	if err != nil {
		return nil, err
	}

	return s.workouts.FromTemplate(userID, template, validation.Today())
}
