package service

import (
	"context"
	"strings"

	"github.com/spec-kit/campus-hub/internal/domain"
	"github.com/spec-kit/campus-hub/internal/repository"
	apperrors "github.com/spec-kit/campus-hub/pkg/util/errorutil"
)

// IdentityService guards the two participant identifier namespaces.
// Registration numbers and profile names are both usable as lookup handles,
// so a value in one namespace must never shadow a value in the other.
type IdentityService struct {
	participants repository.ParticipantRepository
}

// NewIdentityService constructs the service.
func NewIdentityService(participants repository.ParticipantRepository) *IdentityService {
	return &IdentityService{participants: participants}
}

// normalizeIdentifier performs case-insensitive canonicalization.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EnsureNoIdentifierCollision rejects a candidate regno that matches an
// existing profile name on another account, and vice versa. Called at every
// point either identifier is assigned, not only at creation. selfID excludes
// the caller's own row so re-saving unchanged identifiers stays legal.
func (s *IdentityService) EnsureNoIdentifierCollision(ctx context.Context, selfID string, regno, profileName *string) error {
	if regno != nil {
		candidate := normalizeIdentifier(*regno)
		taken, err := s.participants.ProfileNameExists(ctx, candidate, selfID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflict("registration number conflicts with an existing profile name",
				map[string]any{"field": "regno"})
		}
	}

	if profileName != nil {
		candidate := normalizeIdentifier(*profileName)
		taken, err := s.participants.RegnoExists(ctx, candidate, selfID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflict("profile name conflicts with an existing registration number",
				map[string]any{"field": "profile_name"})
		}
	}

	return nil
}

// ProfileUpdateInput carries optional profile changes. Nil fields are left
// untouched.
type ProfileUpdateInput struct {
	Regno       *string
	ProfileName *string
	Name        *string
	College     *string
}

// UpdateProfile applies profile changes to a participant. Identifier
// reassignment runs through the same-namespace uniqueness checks and the
// cross-namespace collision guard, with the caller's own row excluded so
// re-saving an unchanged identifier stays legal.
func (s *IdentityService) UpdateProfile(ctx context.Context, participantID string, input ProfileUpdateInput) (*domain.Participant, error) {
	participant, err := s.participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if input.Regno != nil {
		taken, err := s.participants.RegnoExists(ctx, normalizeIdentifier(*input.Regno), participant.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflict("registration number already registered",
				map[string]any{"field": "regno"})
		}
	}
	if input.ProfileName != nil {
		taken, err := s.participants.ProfileNameExists(ctx, normalizeIdentifier(*input.ProfileName), participant.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflict("profile name already taken",
				map[string]any{"field": "profile_name"})
		}
	}
	if err := s.EnsureNoIdentifierCollision(ctx, participant.ID, input.Regno, input.ProfileName); err != nil {
		return nil, err
	}

	if input.Regno != nil {
		participant.Regno = *input.Regno
	}
	if input.ProfileName != nil {
		participant.ProfileName = *input.ProfileName
	}
	if input.Name != nil {
		participant.Name = *input.Name
	}
	if input.College != nil {
		participant.College = *input.College
	}
	if err := s.participants.Update(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}
