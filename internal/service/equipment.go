package service

import (
	"context"
	"errors"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
)

var ErrInvalidRate = errors.New("rate per day must be positive")

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) AddEquipment(ctx context.Context, eq *domain.Equipment) error {
	logger.EnterMethod("equipmentService.AddEquipment", "name", eq.Name)
	if eq.RatePerDayPaise <= 0 {
		return ErrInvalidRate
	}
	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		logger.ExitMethodWithError("equipmentService.AddEquipment", err)
		return err
	}
	logger.ExitMethod("equipmentService.AddEquipment", "equipmentID", eq.ID)
	return nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if eq.RatePerDayPaise <= 0 {
		return ErrInvalidRate
	}
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) ListEquipment(ctx context.Context, page, pageSize int32) ([]domain.Equipment, int32, error) {
	return s.equipmentRepo.List(ctx, page, pageSize)
}

func (s *equipmentService) SetMaintenanceCount(ctx context.Context, id int32, count int32) (*domain.Equipment, error) {
	logger.EnterMethod("equipmentService.SetMaintenanceCount", "equipmentID", id, "count", count)
	eq, err := s.equipmentRepo.SetMaintenance(ctx, id, count)
	if err != nil {
		logger.ExitMethodWithError("equipmentService.SetMaintenanceCount", err, "equipmentID", id)
		return nil, err
	}
	logger.ExitMethod("equipmentService.SetMaintenanceCount", "equipmentID", id, "available", eq.Available())
	return eq, nil
}
