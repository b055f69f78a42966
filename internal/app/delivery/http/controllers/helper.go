package controllers

import (
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/exceptions"
	"net/http"
)

func clinicianFromContext(r *http.Request) (models.TeamMember, error) {
	clinician, ok := r.Context().Value(constvars.CONTEXT_CLINICIAN_KEY).(models.TeamMember)
	if !ok || clinician.ID == "" {
		return models.TeamMember{}, exceptions.ErrClinicianNotInContext(nil)
	}
	return clinician, nil
}
