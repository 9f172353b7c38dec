package service

import (
	"fmt"

	"github.com/lshigami/Quokka/internal/dto"
	"github.com/lshigami/Quokka/internal/model"
	"github.com/lshigami/Quokka/internal/repository"
)

// DefaultLeaderboardSize is how many rows the leaderboard shows unless the
// caller asks for fewer.
const DefaultLeaderboardSize = 10

type LeaderboardService interface {
	TopN(limit int) ([]dto.LeaderboardEntryDTO, error)
}

type leaderboardService struct {
	participantRepo repository.ParticipantRepository
}

func NewLeaderboardService(participantRepo repository.ParticipantRepository) LeaderboardService {
	return &leaderboardService{participantRepo: participantRepo}
}

func (s *leaderboardService) TopN(limit int) ([]dto.LeaderboardEntryDTO, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	participants, err := s.participantRepo.FindTopByXP(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return RankByXP(participants), nil
}

// RankByXP assigns dense ranks to participants already sorted by XP
// descending: equal XP shares a rank and the next distinct XP gets the
// next consecutive rank.
func RankByXP(participants []model.Participant) []dto.LeaderboardEntryDTO {
	entries := make([]dto.LeaderboardEntryDTO, 0, len(participants))
	rank := 0
	prevXP := -1
	for i, p := range participants {
		if i == 0 || p.XP != prevXP {
			rank++
			prevXP = p.XP
		}
		entries = append(entries, dto.LeaderboardEntryDTO{
			Rank:      rank,
			Name:      p.Name,
			ClassName: p.ClassName,
			XP:        p.XP,
		})
	}
	return entries
}
