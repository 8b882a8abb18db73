package graph

import (
	"fmt"
	"strings"

	"intervention-graph/backend/internal/catalog"
	"intervention-graph/backend/internal/ontology"
)

// Confirmation is a practitioner's fidelity rating for one protocol
// technique
type Confirmation struct {
	Fidelity string
	Notes    string
}

// BuildBCTInstances resolves an encounter's technique set: the protocol's
// catalog filtered to confirmed entries, in catalog order, plus the
// synthesized referral technique when a referral was made.
//
// Slot indexes are assigned only to instantiated techniques, starting at 1,
// so instance identifiers stay dense and deterministic for a given
// (protocol, confirmations, referral) input.
func BuildBCTInstances(protocol catalog.Protocol, confirmed map[string]Confirmation, referral *Referral) []BCTInstance {
	var instances []BCTInstance
	slot := 0

	for _, technique := range protocol.Techniques {
		conf, ok := confirmed[technique.ID]
		if !ok {
			continue
		}
		slot++
		fidelity := conf.Fidelity
		if fidelity == "" {
			fidelity = ontology.FidelityNotAssessed
		}
		instances = append(instances, BCTInstance{
			Slot:              slot,
			TechniqueID:       technique.ID,
			ClassRef:          technique.ClassRef,
			PractitionerLabel: technique.PractitionerLabel,
			FormalLabel:       technique.Label,
			Fidelity:          fidelity,
			Notes:             conf.Notes,
			AutoTagged:        technique.Auto,
		})
	}

	if referral != nil && referral.WasMade && !containsReferralTechnique(instances) {
		slot++
		instances = append(instances, BCTInstance{
			Slot:              slot,
			TechniqueID:       catalog.ReferralTechniqueID,
			ClassRef:          catalog.ReferralTechniqueClassRef,
			PractitionerLabel: "Provide referral information or connection",
			FormalLabel:       "Adding objects to the environment",
			Fidelity:          ontology.FidelityDelivered,
			Notes:             referralNote(*referral),
			AutoTagged:        true,
		})
	}

	return instances
}

// containsReferralTechnique matches on the technique id as a substring,
// not exact equality, so variants like "BCT_12.5a" also suppress the
// injection
func containsReferralTechnique(instances []BCTInstance) bool {
	for _, b := range instances {
		if strings.Contains(b.TechniqueID, catalog.ReferralTechniqueID) {
			return true
		}
	}
	return false
}

func referralNote(r Referral) string {
	category := r.Category
	if category == "" {
		category = "unspecified"
	}
	return fmt.Sprintf("Referral to %s: %s", category, r.Destination)
}
