package contracts

import "mdtcare-service/internal/app/models"

// InteractionRuleProvider answers "what does drugName interact with, among
// these other drugs". Implementations fail open: a drug without a rule entry
// yields no interactions and HasRuleFor reports false, so callers can mark
// the medication "not checked" rather than "clear".
type InteractionRuleProvider interface {
	CheckInteractions(drugName string, otherDrugNames []string) []models.DrugInteraction
	HasRuleFor(drugName string) bool
}
