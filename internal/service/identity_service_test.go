package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-hub/internal/domain"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

func TestIdentifierCollisionAcrossNamespaces(t *testing.T) {
	participants := newFakeParticipantRepo()
	existing := &domain.Participant{
		Regno:       "CS2021001",
		ProfileName: "trinity",
		Email:       "t@example.com",
		Status:      domain.ParticipantStatusActive,
	}
	require.NoError(t, participants.Create(context.Background(), existing))

	svc := NewIdentityService(participants)

	// A regno equal to someone else's profile name is rejected, case- and
	// whitespace-insensitively.
	regno := "  TRINITY "
	err := svc.EnsureNoIdentifierCollision(context.Background(), "", &regno, nil)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// And the reverse direction.
	profileName := "cs2021001"
	err = svc.EnsureNoIdentifierCollision(context.Background(), "", nil, &profileName)
	require.Error(t, err)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestIdentifierCollisionExcludesSelf(t *testing.T) {
	participants := newFakeParticipantRepo()
	existing := &domain.Participant{
		Regno:       "CS2021001",
		ProfileName: "trinity",
		Email:       "t@example.com",
		Status:      domain.ParticipantStatusActive,
	}
	require.NoError(t, participants.Create(context.Background(), existing))

	svc := NewIdentityService(participants)

	// Matching your own row is not a collision; only other accounts conflict.
	profileName := "cs2021001"
	err := svc.EnsureNoIdentifierCollision(context.Background(), existing.ID, nil, &profileName)
	assert.NoError(t, err)

	err = svc.EnsureNoIdentifierCollision(context.Background(), "", nil, &profileName)
	assert.Error(t, err)
}

func TestIdentifierNoCollisionForDistinctValues(t *testing.T) {
	participants := newFakeParticipantRepo()
	svc := NewIdentityService(participants)

	regno := "CS2021002"
	profileName := "morpheus"
	err := svc.EnsureNoIdentifierCollision(context.Background(), "", &regno, &profileName)
	assert.NoError(t, err)
}

func TestUpdateProfileGuardsReassignment(t *testing.T) {
	participants := newFakeParticipantRepo()
	first := &domain.Participant{
		Regno:       "CS2021001",
		ProfileName: "trinity",
		Email:       "t@example.com",
		Status:      domain.ParticipantStatusActive,
	}
	require.NoError(t, participants.Create(context.Background(), first))
	second := &domain.Participant{
		Regno:       "CS2021002",
		ProfileName: "morpheus",
		Email:       "m@example.com",
		Status:      domain.ParticipantStatusActive,
	}
	require.NoError(t, participants.Create(context.Background(), second))

	svc := NewIdentityService(participants)

	// A new profile name shadowing another account's regno is a conflict.
	shadow := "cs2021001"
	_, err := svc.UpdateProfile(context.Background(), second.ID, ProfileUpdateInput{ProfileName: &shadow})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// Same-namespace duplicates are caught too.
	taken := "Trinity"
	_, err = svc.UpdateProfile(context.Background(), second.ID, ProfileUpdateInput{ProfileName: &taken})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	// Shadowing your own regno is legal; only other accounts conflict.
	own := "cs2021002"
	updated, err := svc.UpdateProfile(context.Background(), second.ID, ProfileUpdateInput{ProfileName: &own})
	require.NoError(t, err)
	assert.Equal(t, "cs2021002", updated.ProfileName)

	stored, err := participants.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs2021002", stored.ProfileName)
}

func TestUpdateProfileLeavesOmittedFieldsUntouched(t *testing.T) {
	participants := newFakeParticipantRepo()
	existing := &domain.Participant{
		Regno:       "CS2021001",
		ProfileName: "trinity",
		Name:        "Trinity",
		College:     "Zion",
		Email:       "t@example.com",
		Status:      domain.ParticipantStatusActive,
	}
	require.NoError(t, participants.Create(context.Background(), existing))

	svc := NewIdentityService(participants)

	name := "Trinity M."
	updated, err := svc.UpdateProfile(context.Background(), existing.ID, ProfileUpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Trinity M.", updated.Name)
	assert.Equal(t, "CS2021001", updated.Regno)
	assert.Equal(t, "trinity", updated.ProfileName)
	assert.Equal(t, "Zion", updated.College)
}
