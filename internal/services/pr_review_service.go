package services

import (
	"github.com/alimgiray/reviewboard/internal/models"
	"github.com/alimgiray/reviewboard/internal/repositories"
)

type PRReviewService struct {
	prReviewRepo *repositories.PRReviewRepository
}

func NewPRReviewService(prReviewRepo *repositories.PRReviewRepository) *PRReviewService {
	return &PRReviewService{
		prReviewRepo: prReviewRepo,
	}
}

func (s *PRReviewService) GetReviewsByPRNumber(prNumber int) ([]models.Review, error) {
	return s.prReviewRepo.GetByPRNumber(prNumber)
}

func (s *PRReviewService) UpsertReview(review *models.Review) error {
	return s.prReviewRepo.Upsert(review)
}
