package service

import (
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

// requireClientOwner rejects unless the actor is the owning client or an
// admin. The same ownership rule recurs across every scheduling mutation,
// so it lives here instead of being re-derived per operation.
func requireClientOwner(actor *models.JWTClaims, clientID string) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	switch actor.Role {
	case models.RoleAdmin, models.RoleSuperAdmin:
		return nil
	case models.RoleClient:
		if actor.UserID == clientID {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "not the owning client")
}

// requireAssignedCaregiver rejects unless the actor is the caregiver assigned
// to the shift.
func requireAssignedCaregiver(actor *models.JWTClaims, shift *models.Shift) error {
	if actor == nil {
		return appErrors.ErrUnauthorized
	}
	if actor.Role != models.RoleCaregiver {
		return appErrors.Clone(appErrors.ErrForbidden, "caregiver role required")
	}
	if shift.CaregiverID == nil || *shift.CaregiverID != actor.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "not assigned to this shift")
	}
	return nil
}
