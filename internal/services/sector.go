package services

import (
	"context"
	"fmt"
	"time"

	"orplanning/internal/domain"
)

type sectorService struct {
	sectorRepo     domain.SectorRepository
	contextTimeout time.Duration
}

func NewSectorService(sectorRepo domain.SectorRepository, timeout time.Duration) domain.SectorService {
	return &sectorService{sectorRepo: sectorRepo, contextTimeout: timeout}
}

func (s *sectorService) ListSectors(ctx context.Context) ([]*domain.Sector, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sectors, err := s.sectorRepo.ListSectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	return sectors, nil
}

func (s *sectorService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rooms, err := s.sectorRepo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}
