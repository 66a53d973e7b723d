package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPetInstance(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	instance, err := NewPetInstance(userID, "pet_cat")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, instance.ID)
	assert.Equal(t, userID, instance.UserID)
	assert.Equal(t, "pet_cat", instance.PetID)
	assert.Equal(t, 1, instance.Level)
	assert.Equal(t, 0, instance.Experience)
	assert.False(t, instance.IsActive)
	assert.Equal(t, StatMax, instance.Mood)
	assert.Equal(t, StatMax, instance.Hunger)
	assert.Equal(t, 0, instance.Affection)
}

func TestNewPetInstanceValidation(t *testing.T) {
	t.Parallel() // Enable parallel execution

	_, err := NewPetInstance(uuid.Nil, "pet_cat")
	assert.ErrorIs(t, err, ErrPetUserIDEmpty)

	_, err = NewPetInstance(uuid.New(), "")
	assert.ErrorIs(t, err, ErrPetIDEmpty)
}

func TestLevelThreshold(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.Equal(t, 100, LevelThreshold(1))
	assert.Equal(t, 400, LevelThreshold(2))
	assert.Equal(t, 900, LevelThreshold(3))
	assert.Equal(t, 10000, LevelThreshold(10))
}

func TestApplyExperience(t *testing.T) {
	t.Parallel() // Enable parallel execution

	newPet := func(t *testing.T) *PetInstance {
		t.Helper()
		instance, err := NewPetInstance(uuid.New(), "pet_cat")
		require.NoError(t, err)
		return instance
	}

	t.Run("No level up keeps experience and bumps mood", func(t *testing.T) {
		t.Parallel()
		pet := newPet(t)
		pet.Mood = 50

		gained := pet.ApplyExperience(40)

		assert.Equal(t, 0, gained)
		assert.Equal(t, 1, pet.Level)
		assert.Equal(t, 40, pet.Experience)
		assert.Equal(t, 55, pet.Mood)
	})

	t.Run("Single level up carries the remainder", func(t *testing.T) {
		t.Parallel()
		pet := newPet(t)
		pet.Level = 2
		pet.Experience = 50
		pet.Mood = 40
		pet.Affection = 3

		// 50 + 400 = 450, threshold(2) = 400, so level 3 with 50 left over.
		gained := pet.ApplyExperience(400)

		assert.Equal(t, 1, gained)
		assert.Equal(t, 3, pet.Level)
		assert.Equal(t, 50, pet.Experience)
		assert.Equal(t, 60, pet.Mood)
		assert.Equal(t, 8, pet.Affection)
	})

	t.Run("Large grant crosses several thresholds", func(t *testing.T) {
		t.Parallel()
		pet := newPet(t)

		// threshold(1)=100, threshold(2)=400: 600 exp is two levels plus 100.
		gained := pet.ApplyExperience(600)

		assert.Equal(t, 2, gained)
		assert.Equal(t, 3, pet.Level)
		assert.Equal(t, 100, pet.Experience)
	})

	t.Run("Mood is clamped at the ceiling", func(t *testing.T) {
		t.Parallel()
		pet := newPet(t)
		pet.Mood = 95

		gained := pet.ApplyExperience(150)

		assert.Equal(t, 1, gained)
		assert.Equal(t, StatMax, pet.Mood)
	})

	t.Run("Non-positive delta is a no-op", func(t *testing.T) {
		t.Parallel()
		pet := newPet(t)
		pet.Mood = 50

		assert.Equal(t, 0, pet.ApplyExperience(0))
		assert.Equal(t, 0, pet.ApplyExperience(-10))
		assert.Equal(t, 0, pet.Experience)
		assert.Equal(t, 50, pet.Mood)
	})
}

func TestApplyAction(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("Feed boosts hunger mood and affection", func(t *testing.T) {
		t.Parallel()
		pet, err := NewPetInstance(uuid.New(), "pet_cat")
		require.NoError(t, err)
		pet.Hunger = 40
		pet.Mood = 40
		pet.Affection = 1

		require.NoError(t, pet.ApplyAction(PetActionFeed))

		assert.Equal(t, 70, pet.Hunger)
		assert.Equal(t, 50, pet.Mood)
		assert.Equal(t, 3, pet.Affection)
	})

	t.Run("Pat boosts mood and affection", func(t *testing.T) {
		t.Parallel()
		pet, err := NewPetInstance(uuid.New(), "pet_cat")
		require.NoError(t, err)
		pet.Mood = 90

		require.NoError(t, pet.ApplyAction(PetActionPat))

		assert.Equal(t, 95, pet.Mood)
		assert.Equal(t, 1, pet.Affection)
	})

	t.Run("Stats clamp at the ceiling", func(t *testing.T) {
		t.Parallel()
		pet, err := NewPetInstance(uuid.New(), "pet_cat")
		require.NoError(t, err)

		require.NoError(t, pet.ApplyAction(PetActionFeed))

		assert.Equal(t, StatMax, pet.Hunger)
		assert.Equal(t, StatMax, pet.Mood)
	})

	t.Run("Unknown verb is rejected", func(t *testing.T) {
		t.Parallel()
		pet, err := NewPetInstance(uuid.New(), "pet_cat")
		require.NoError(t, err)

		assert.ErrorIs(t, pet.ApplyAction(PetAction("CUDDLE")), ErrInvalidAction)
	})
}

func TestActionCost(t *testing.T) {
	t.Parallel() // Enable parallel execution

	cost, err := ActionCost(PetActionFeed)
	require.NoError(t, err)
	assert.Equal(t, int64(FeedCost), cost)

	cost, err = ActionCost(PetActionPat)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cost)

	_, err = ActionCost(PetAction("JUGGLE"))
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestClampStat(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.Equal(t, StatMin, ClampStat(-5))
	assert.Equal(t, 50, ClampStat(50))
	assert.Equal(t, StatMax, ClampStat(130))
}
