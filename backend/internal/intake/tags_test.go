package intake

import (
	"testing"

	"intervention-graph/backend/internal/graph"
)

func hasTag(tags []graph.AttributeTag, name string) bool {
	for _, t := range tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

func TestDeriveTags_AgeBands(t *testing.T) {
	// 19 falls in both the teenager and young adult bands
	tags := DeriveTags(ParticipantIntake{Age: 19, DaysSinceRelease: 200})
	for _, want := range []string{"teenager", "young_adult", "adult"} {
		if !hasTag(tags, want) {
			t.Errorf("missing %s tag for age 19", want)
		}
	}

	tags = DeriveTags(ParticipantIntake{Age: 40, DaysSinceRelease: 200})
	if hasTag(tags, "teenager") || hasTag(tags, "young_adult") {
		t.Error("age 40 should only be adult")
	}
	if !hasTag(tags, "adult") {
		t.Error("missing adult tag for age 40")
	}
}

func TestDeriveTags_ReentryFlags(t *testing.T) {
	tags := DeriveTags(ParticipantIntake{Age: 30, DaysSinceRelease: 20, SupervisionStatus: "parole"})

	if !hasTag(tags, "ex_offender_population") {
		t.Error("ex_offender_population is unconditional")
	}
	if !hasTag(tags, "recently_released") || !hasTag(tags, "first_month_post_release") {
		t.Error("20 days since release should carry both recency tags")
	}
	if !hasTag(tags, "under_supervision") || !hasTag(tags, "parole") {
		t.Error("missing supervision tags")
	}

	tags = DeriveTags(ParticipantIntake{Age: 30, DaysSinceRelease: 60, SupervisionStatus: "none"})
	if hasTag(tags, "first_month_post_release") {
		t.Error("60 days is past the first month")
	}
	if !hasTag(tags, "recently_released") {
		t.Error("60 days is still recent")
	}
	if hasTag(tags, "under_supervision") {
		t.Error("supervision none must not tag")
	}
}

func TestDeriveTags_HousingTypeOnlyWhenStable(t *testing.T) {
	tags := DeriveTags(ParticipantIntake{Age: 30, HousingStatus: "stable", HousingType: "rents_social"})
	if !hasTag(tags, "housed_population") || !hasTag(tags, "renter_from_social_provider") {
		t.Errorf("missing housing tags: %+v", tags)
	}

	tags = DeriveTags(ParticipantIntake{Age: 30, HousingStatus: "homeless", HousingType: "rents_social"})
	if !hasTag(tags, "homeless_population") {
		t.Error("missing homeless tag")
	}
	if hasTag(tags, "renter_from_social_provider") {
		t.Error("housing type tags only apply to stable housing")
	}
}

func TestDeriveTags_Substances(t *testing.T) {
	tags := DeriveTags(ParticipantIntake{
		Age:                 30,
		Substances:          []string{"alcohol", "opioids"},
		CurrentSubstanceUse: "recovery",
	})
	for _, want := range []string{"substance_use_history_population", "alcohol_use_history", "opioid_use_history", "substance_use_recovery"} {
		if !hasTag(tags, want) {
			t.Errorf("missing %s", want)
		}
	}

	tags = DeriveTags(ParticipantIntake{Age: 30, Substances: []string{"none"}})
	if hasTag(tags, "substance_use_history_population") {
		t.Error("substances [none] must not tag")
	}
}

func TestDeriveTags_EducationEmploymentRelationship(t *testing.T) {
	tags := DeriveTags(ParticipantIntake{
		Age:                30,
		EducationLevel:     "upper_secondary",
		RelationshipStatus: "divorced",
		EmploymentStatus:   "unemployed_seeking",
	})
	for _, want := range []string{"achieved_upper_secondary_education", "divorced_or_separated", "unemployed", "job_seeking"} {
		if !hasTag(tags, want) {
			t.Errorf("missing %s", want)
		}
	}

	tags = DeriveTags(ParticipantIntake{Age: 30, EmploymentStatus: "part_time"})
	if !hasTag(tags, "employed") {
		t.Error("part_time should tag employed")
	}
}
