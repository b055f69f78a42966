package interactions

import (
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/app/models"
	"strings"
	"sync"
)

type interactionRule struct {
	MatchPatterns  []string
	Severity       models.InteractionSeverity
	ManagementText string
}

// ruleTable maps a canonical lower-cased drug name to its known interaction
// rules. This is a deliberately small hardcoded table; a formulary service
// can replace it behind contracts.InteractionRuleProvider.
var ruleTable = map[string][]interactionRule{
	"warfarin": {
		{
			MatchPatterns:  []string{"aspirin", "ibuprofen", "naproxen"},
			Severity:       models.SeverityMajor,
			ManagementText: "Increased bleeding risk. Monitor INR closely and review antiplatelet indication.",
		},
		{
			MatchPatterns:  []string{"metronidazole", "fluconazole"},
			Severity:       models.SeverityModerate,
			ManagementText: "Potentiates anticoagulant effect. Consider dose reduction and repeat INR within 3 days.",
		},
	},
	"aspirin": {
		{
			MatchPatterns:  []string{"warfarin", "apixaban", "rivaroxaban"},
			Severity:       models.SeverityMajor,
			ManagementText: "Combined anticoagulant and antiplatelet therapy. Confirm dual indication with cardiology.",
		},
		{
			MatchPatterns:  []string{"ibuprofen"},
			Severity:       models.SeverityModerate,
			ManagementText: "NSAID may blunt antiplatelet effect. Separate dosing or switch analgesic.",
		},
	},
	"metformin": {
		{
			MatchPatterns:  []string{"contrast"},
			Severity:       models.SeverityModerate,
			ManagementText: "Withhold around iodinated contrast administration and recheck renal function at 48 hours.",
		},
	},
	"simvastatin": {
		{
			MatchPatterns:  []string{"clarithromycin", "erythromycin"},
			Severity:       models.SeverityMajor,
			ManagementText: "Myopathy risk from CYP3A4 inhibition. Suspend statin for the antibiotic course.",
		},
	},
	"spironolactone": {
		{
			MatchPatterns:  []string{"lisinopril", "ramipril", "enalapril"},
			Severity:       models.SeverityModerate,
			ManagementText: "Hyperkalaemia risk. Check potassium within one week of co-prescription.",
		},
	},
	"tramadol": {
		{
			MatchPatterns:  []string{"sertraline", "fluoxetine", "citalopram"},
			Severity:       models.SeverityModerate,
			ManagementText: "Serotonin syndrome risk. Use lowest effective dose and counsel on warning symptoms.",
		},
	},
}

var (
	ruleEngineInstance contracts.InteractionRuleProvider
	onceRuleEngine     sync.Once
)

type ruleEngine struct {
	rules map[string][]interactionRule
}

func NewRuleEngine() contracts.InteractionRuleProvider {
	onceRuleEngine.Do(func() {
		ruleEngineInstance = &ruleEngine{rules: ruleTable}
	})
	return ruleEngineInstance
}

func (e *ruleEngine) HasRuleFor(drugName string) bool {
	_, ok := e.rules[strings.ToLower(strings.TrimSpace(drugName))]
	return ok
}

// CheckInteractions fails open: a drug without a table entry returns nil.
// Callers must report that as "not checked", never as "clear".
func (e *ruleEngine) CheckInteractions(drugName string, otherDrugNames []string) []models.DrugInteraction {
	rules, ok := e.rules[strings.ToLower(strings.TrimSpace(drugName))]
	if !ok {
		return nil
	}

	var interactions []models.DrugInteraction
	for _, other := range otherDrugNames {
		loweredOther := strings.ToLower(strings.TrimSpace(other))
		if loweredOther == "" {
			continue
		}
		for _, rule := range rules {
			if matchAny(loweredOther, rule.MatchPatterns) {
				interactions = append(interactions, models.DrugInteraction{
					WithDrug:   other,
					Severity:   rule.Severity,
					Management: rule.ManagementText,
				})
				break
			}
		}
	}
	return interactions
}

func matchAny(loweredDrugName string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(loweredDrugName, pattern) {
			return true
		}
	}
	return false
}
