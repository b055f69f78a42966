package careplans

import (
	"fmt"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"mdtcare-service/internal/pkg/constvars"
	"sort"
	"strings"
	"time"
)

// HarmonizeInput carries everything the engine needs. The clock is injected
// and no IDs are generated here, so harmonizing the same input twice yields
// identical output.
type HarmonizeInput struct {
	Plans              []models.SpecialtyTreatmentPlan
	PrimaryConsultant  models.TeamMember
	PatientID          string
	MeetingID          string
	Version            int
	ReviewIntervalDays int
	Now                time.Time
}

// Harmonize merges N specialty plans into one draft care plan: diagnosis
// union, category-grouped treatments with conflict annotations, medication
// reconciliation against the interaction rules, and unions of
// investigations, procedures and goals. Callers enforce the >= 2 plan
// precondition.
func Harmonize(in HarmonizeInput, rules contracts.InteractionRuleProvider) *models.HarmonizedCarePlan {
	primary, secondary := mergeDiagnoses(in.Plans)

	plan := &models.HarmonizedCarePlan{
		PatientID:            in.PatientID,
		MeetingID:            in.MeetingID,
		PrimaryConsultant:    in.PrimaryConsultant,
		Version:              in.Version,
		Status:               models.CarePlanDraft,
		PrimaryDiagnosis:     primary,
		SecondaryDiagnoses:   secondary,
		Treatments:           mergeTreatments(in.Plans),
		Medications:          reconcileMedications(in.Plans, in.PrimaryConsultant, rules),
		Investigations:       mergeInvestigations(in.Plans),
		Procedures:           mergeProcedures(in.Plans),
		Goals:                mergeGoals(in.Plans),
		TeamResponsibilities: assignResponsibilities(in.Plans),
		Approvals:            []models.ApprovalRecord{},
		ReviewDate:           in.Now.AddDate(0, 0, in.ReviewIntervalDays),
		EscalationCriteria:   append([]string(nil), constvars.DefaultEscalationCriteria...),
		CreatedAt:            in.Now,
		UpdatedAt:            in.Now,
	}
	return plan
}

// mergeDiagnoses deduplicates case-insensitively, keeping first-seen order
// and first-seen casing. The first diagnosis becomes primary.
func mergeDiagnoses(plans []models.SpecialtyTreatmentPlan) (string, []string) {
	seen := make(map[string]bool)
	ordered := make([]string, 0)
	for _, plan := range plans {
		for _, diagnosis := range plan.Diagnoses {
			key := strings.ToLower(strings.TrimSpace(diagnosis))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			ordered = append(ordered, diagnosis)
		}
	}

	if len(ordered) == 0 {
		return "", nil
	}
	return ordered[0], ordered[1:]
}

type treatmentContribution struct {
	specialty      string
	recommendation models.TreatmentRecommendation
}

func mergeTreatments(plans []models.SpecialtyTreatmentPlan) []models.HarmonizedTreatment {
	groups := make(map[string][]treatmentContribution)
	orderedCategories := make([]string, 0)

	for _, plan := range plans {
		for _, recommendation := range plan.Recommendations {
			key := strings.ToLower(strings.TrimSpace(recommendation.Category))
			if _, exists := groups[key]; !exists {
				orderedCategories = append(orderedCategories, key)
			}
			groups[key] = append(groups[key], treatmentContribution{
				specialty:      plan.Specialty,
				recommendation: recommendation,
			})
		}
	}

	treatments := make([]models.HarmonizedTreatment, 0, len(orderedCategories))
	for _, category := range orderedCategories {
		contributions := groups[category]

		descriptions := make([]string, 0, len(contributions))
		rationales := make([]string, 0, len(contributions))
		specialties := make([]string, 0, len(contributions))
		seenSpecialties := make(map[string]bool)
		priority := contributions[0].recommendation.Priority

		for _, contribution := range contributions {
			descriptions = append(descriptions, contribution.recommendation.Description)
			if contribution.recommendation.Rationale != "" {
				rationales = append(rationales, contribution.recommendation.Rationale)
			}
			if !seenSpecialties[contribution.specialty] {
				seenSpecialties[contribution.specialty] = true
				specialties = append(specialties, contribution.specialty)
			}
			if contribution.recommendation.Priority.Rank() > priority.Rank() {
				priority = contribution.recommendation.Priority
			}
		}

		treatments = append(treatments, models.HarmonizedTreatment{
			Category:          category,
			Description:       strings.Join(descriptions, "; "),
			Rationale:         strings.Join(rationales, "; "),
			Priority:          priority,
			SourceSpecialties: specialties,
			AssignedTeam:      contributions[0].specialty,
			Conflicts:         detectConflicts(category, contributions),
		})
	}
	return treatments
}

// detectConflicts flags a category where contributors disagree on frequency
// or duration. The conflict is emitted unresolved; the team settles it at
// review.
func detectConflicts(category string, contributions []treatmentContribution) []models.TreatmentConflict {
	if len(contributions) < 2 {
		return nil
	}

	frequencies := distinctNonEmpty(contributions, func(r models.TreatmentRecommendation) string { return r.Frequency })
	durations := distinctNonEmpty(contributions, func(r models.TreatmentRecommendation) string { return r.Duration })
	if len(frequencies) < 2 && len(durations) < 2 {
		return nil
	}

	specialties := make([]string, 0, len(contributions))
	seen := make(map[string]bool)
	variants := make([]string, 0, len(contributions))
	for _, contribution := range contributions {
		if !seen[contribution.specialty] {
			seen[contribution.specialty] = true
			specialties = append(specialties, contribution.specialty)
		}
		variant := fmt.Sprintf("%s: frequency=%s duration=%s",
			contribution.specialty,
			orUnspecified(contribution.recommendation.Frequency),
			orUnspecified(contribution.recommendation.Duration),
		)
		variants = append(variants, variant)
	}

	return []models.TreatmentConflict{{
		Category:    category,
		Specialties: specialties,
		Description: fmt.Sprintf("specialties disagree on %s schedule: %s", category, strings.Join(variants, "; ")),
		Resolved:    false,
	}}
}

func distinctNonEmpty(contributions []treatmentContribution, pick func(models.TreatmentRecommendation) string) map[string]bool {
	values := make(map[string]bool)
	for _, contribution := range contributions {
		value := strings.TrimSpace(pick(contribution.recommendation))
		if value != "" {
			values[strings.ToLower(value)] = true
		}
	}
	return values
}

func orUnspecified(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unspecified"
	}
	return value
}

type medicationContribution struct {
	specialty  string
	medication models.MedicationRecommendation
}

// reconcileMedications groups by medication name, resolves the final action
// by precedence (discontinue > modify > add > continue), and checks each
// drug against every other drug name in the merge, not only its own group.
func reconcileMedications(plans []models.SpecialtyTreatmentPlan, decider models.TeamMember, rules contracts.InteractionRuleProvider) []models.ReconciledMedication {
	groups := make(map[string][]medicationContribution)
	orderedNames := make([]string, 0)
	displayNames := make(map[string]string)

	for _, plan := range plans {
		for _, medication := range plan.Medications {
			key := strings.ToLower(strings.TrimSpace(medication.MedicationName))
			if key == "" {
				continue
			}
			if _, exists := groups[key]; !exists {
				orderedNames = append(orderedNames, key)
				displayNames[key] = medication.MedicationName
			}
			groups[key] = append(groups[key], medicationContribution{
				specialty:  plan.Specialty,
				medication: medication,
			})
		}
	}

	reconciled := make([]models.ReconciledMedication, 0, len(orderedNames))
	for _, name := range orderedNames {
		contributions := groups[name]

		otherNames := make([]string, 0, len(orderedNames)-1)
		for _, other := range orderedNames {
			if other != name {
				otherNames = append(otherNames, displayNames[other])
			}
		}

		interactions := rules.CheckInteractions(displayNames[name], otherNames)
		checked := models.CheckNotChecked
		if rules.HasRuleFor(displayNames[name]) {
			checked = models.CheckClear
			if len(interactions) > 0 {
				checked = models.CheckFlagged
			}
		}

		finalDecision := contributions[0].medication.Action
		originals := make([]models.OriginalMedicationOrder, 0, len(contributions))
		rationales := make([]string, 0, len(contributions))
		var dose, route, frequency string
		for _, contribution := range contributions {
			medication := contribution.medication
			originals = append(originals, models.OriginalMedicationOrder{
				Specialty: contribution.specialty,
				Action:    medication.Action,
				Dose:      medication.Dose,
				Route:     medication.Route,
				Frequency: medication.Frequency,
				Reason:    medication.Reason,
			})
			if medication.Action.Rank() > finalDecision.Rank() {
				finalDecision = medication.Action
			}
			if medication.Reason != "" {
				rationales = append(rationales, medication.Reason)
			}
			if dose == "" {
				dose = medication.Dose
			}
			if route == "" {
				route = medication.Route
			}
			if frequency == "" {
				frequency = medication.Frequency
			}
		}

		status := models.MedicationActive
		if finalDecision == models.ActionDiscontinue {
			status = models.MedicationDiscontinued
		}

		reconciled = append(reconciled, models.ReconciledMedication{
			MedicationName:           displayNames[name],
			Dose:                     dose,
			Route:                    route,
			Frequency:                frequency,
			OriginalRecommendations:  originals,
			Interactions:             interactions,
			ContraindicationsChecked: checked,
			FinalDecision:            finalDecision,
			Rationale:                strings.Join(rationales, "; "),
			DecidedBy:                decider.ID,
			Status:                   status,
		})
	}
	return reconciled
}

// mergeInvestigations deduplicates by test name (first occurrence wins) and
// orders the result most urgent first.
func mergeInvestigations(plans []models.SpecialtyTreatmentPlan) []models.InvestigationRecommendation {
	seen := make(map[string]bool)
	merged := make([]models.InvestigationRecommendation, 0)
	for _, plan := range plans {
		for _, investigation := range plan.Investigations {
			key := strings.ToLower(strings.TrimSpace(investigation.TestName))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, investigation)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Urgency.Rank() > merged[j].Urgency.Rank()
	})
	return merged
}

func mergeProcedures(plans []models.SpecialtyTreatmentPlan) []models.PlannedProcedure {
	merged := make([]models.PlannedProcedure, 0)
	for _, plan := range plans {
		for _, procedure := range plan.Procedures {
			specialty := strings.ToLower(plan.Specialty)
			merged = append(merged, models.PlannedProcedure{
				Name:               procedure.Name,
				Indication:         procedure.Indication,
				Timing:             procedure.Timing,
				SourceSpecialty:    plan.Specialty,
				AnesthesiaRequired: specialty == constvars.SpecialtySurgery || specialty == constvars.SpecialtyRadiology,
			})
		}
	}
	return merged
}

func mergeGoals(plans []models.SpecialtyTreatmentPlan) []models.Goal {
	merged := make([]models.Goal, 0)
	for _, plan := range plans {
		merged = append(merged, plan.Goals...)
	}
	return merged
}

func assignResponsibilities(plans []models.SpecialtyTreatmentPlan) []models.TeamResponsibility {
	responsibilities := make([]models.TeamResponsibility, 0, len(plans))
	for i := range plans {
		plan := &plans[i]
		responsibilities = append(responsibilities, models.TeamResponsibility{
			Specialty:        plan.Specialty,
			TeamLead:         plan.SubmittedBy.Name,
			Responsibilities: plan.TreatmentDescriptions(),
		})
	}
	return responsibilities
}
