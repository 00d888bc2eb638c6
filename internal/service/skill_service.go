package service

import (
	"context"
	"errors"
	"strings"

	"SkillSphere/internal/model"
	"SkillSphere/internal/repository/mysql"

	"gorm.io/gorm"
)

type SkillService struct {
	repo *mysql.SkillRepository
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{repo: &mysql.SkillRepository{DB: db}}
}

type SkillInput struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	ProficiencyLevel int    `json:"proficiency_level"`
	YearsExperience  int    `json:"years_experience"`
	Description      string `json:"description"`
	ProjectURL       string `json:"project_url"`
}

func (s *SkillService) Add(ctx context.Context, userID uint64, in SkillInput) (*model.Skill, error) {
	if userID == 0 {
		return nil, ErrInvalidID
	}
	if in.Name == "" || in.Category == "" {
		return nil, errors.New("name and category required")
	}
	if in.ProficiencyLevel < 1 || in.ProficiencyLevel > 5 {
		return nil, errors.New("proficiency level must be 1-5")
	}
	if in.YearsExperience < 0 {
		return nil, errors.New("years experience must be >= 0")
	}

	exists, err := s.repo.ExistsByNameAndUser(ctx, in.Name, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSkillExists
	}

	skill := &model.Skill{
		UserID:           userID,
		Name:             in.Name,
		Category:         strings.ToLower(in.Category),
		ProficiencyLevel: in.ProficiencyLevel,
		YearsExperience:  in.YearsExperience,
		Description:      in.Description,
		ProjectURL:       in.ProjectURL,
	}
	if err := s.repo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Update 只更新调用方提供的字段；verified 不可外部设置
func (s *SkillService) Update(ctx context.Context, userID, skillID uint64, fields map[string]any) (*model.Skill, error) {
	if userID == 0 || skillID == 0 {
		return nil, ErrInvalidID
	}

	allowed := map[string]bool{
		"name": true, "category": true, "proficiency_level": true,
		"years_experience": true, "description": true, "project_url": true,
	}
	updates := make(map[string]any)
	for k, v := range fields {
		if !allowed[k] {
			continue
		}
		if k == "category" {
			if str, ok := v.(string); ok {
				v = strings.ToLower(str)
			}
		}
		updates[k] = v
	}
	if len(updates) == 0 {
		return nil, errors.New("no valid fields to update")
	}

	affected, err := s.repo.Update(ctx, skillID, userID, updates)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSkillNotFound
	}
	return s.repo.FindByID(ctx, skillID)
}

// Delete 只有所有者可删；技能删除时同事务清掉全部背书
func (s *SkillService) Delete(ctx context.Context, userID, skillID uint64) error {
	if userID == 0 || skillID == 0 {
		return ErrInvalidID
	}
	affected, err := s.repo.DeleteCascade(ctx, skillID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (s *SkillService) ListByUser(ctx context.Context, userID uint64) ([]model.Skill, error) {
	if userID == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *SkillService) Get(ctx context.Context, skillID uint64) (*model.Skill, error) {
	if skillID == 0 {
		return nil, ErrInvalidID
	}
	skill, err := s.repo.FindByID(ctx, skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSkillNotFound
	}
	return skill, err
}
