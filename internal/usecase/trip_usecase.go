package usecase

import (
	"context"
	"log"

	"WeatherWise-App/internal/domain/model"
	"WeatherWise-App/internal/domain/repository"
	"WeatherWise-App/internal/domain/schema"
)

type TripUseCase interface {
	// PlanTrip はセッションを使わずに旅行プランを生成する
	PlanTrip(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error)
}

// tripUseCaseImpl はTripUseCaseの実装
type tripUseCaseImpl struct {
	tripRepo repository.TripPlanGenerationRepository
}

// NewTripUseCase は新しいTripUseCaseインスタンスを作成
func NewTripUseCase(tripRepo repository.TripPlanGenerationRepository) TripUseCase {
	return &tripUseCaseImpl{
		tripRepo: tripRepo,
	}
}

func (u *tripUseCaseImpl) PlanTrip(ctx context.Context, req *model.TripPlanRequest) (*model.TripPlan, error) {
	// 入力エラーは生成レイヤーに到達させない
	if err := schema.ValidateTripPlanRequest(req); err != nil {
		log.Printf("⚠️ 旅行プランの入力エラー: %v", err)
		return nil, err
	}
	return u.tripRepo.PlanTrip(ctx, req)
}
