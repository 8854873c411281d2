package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Names are unique per user,
// case-insensitively: "Food" and "food" are the same category.
func (s *categoryService) CreateCategory(userID, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide category name")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrCategoryExists
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
	}

	if err := s.db.Create(category).Error; err != nil {
		// The pre-check races with concurrent creates; the unique index on
		// (user_id, lower(name)) catches the loser, which gets the same error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories returns all categories owned by the user, oldest first.
func (s *categoryService) GetUserCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// DeleteCategory removes a category after an ownership check. Expenses and
// budgets referencing the category by name are left untouched.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if category.UserID != userID {
		return apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to delete this category")
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
