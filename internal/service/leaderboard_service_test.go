package service

import (
	"testing"

	"github.com/lshigami/Quokka/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankByXP_TiesShareDenseRanks(t *testing.T) {
	participants := []model.Participant{
		{Name: "Anika", ClassName: "8A", XP: 500},
		{Name: "Borhan", ClassName: "8B", XP: 500},
		{Name: "Chameli", ClassName: "8A", XP: 300},
	}

	entries := RankByXP(participants)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	// Dense ranking: the next distinct XP takes rank 2, not rank 3.
	assert.Equal(t, 2, entries[2].Rank)
}

func TestRankByXP_DistinctScores(t *testing.T) {
	participants := []model.Participant{
		{Name: "A", XP: 900},
		{Name: "B", XP: 700},
		{Name: "C", XP: 100},
	}

	entries := RankByXP(participants)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRankByXP_PreservesInputOrderWithinTies(t *testing.T) {
	// The repository orders ties by name; ranking must not reshuffle them.
	participants := []model.Participant{
		{Name: "Anika", XP: 500},
		{Name: "Borhan", XP: 500},
	}

	entries := RankByXP(participants)
	require.Len(t, entries, 2)
	assert.Equal(t, "Anika", entries[0].Name)
	assert.Equal(t, "Borhan", entries[1].Name)
}

func TestRankByXP_Empty(t *testing.T) {
	assert.Empty(t, RankByXP(nil))
}

func TestRankByXP_ZeroXPStillRanked(t *testing.T) {
	entries := RankByXP([]model.Participant{{Name: "New", XP: 0}})
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 0, entries[0].XP)
}
