package intake

import (
	"intervention-graph/backend/internal/graph"
)

// DeriveTags maps enrollment demographics to ontology attribute tags.
// Rules fire independently; one form can yield several tags in the same
// category (a 19 year old is both teenager and young_adult).
func DeriveTags(p ParticipantIntake) []graph.AttributeTag {
	var tags []graph.AttributeTag
	add := func(name, category, classID string) {
		tags = append(tags, graph.AttributeTag{Name: name, Category: category, ClassID: classID})
	}

	if p.Age >= 13 && p.Age <= 19 {
		add("teenager", "age", "ADDICTO:0001050")
	}
	if p.Age >= 18 && p.Age <= 25 {
		add("young_adult", "age", "BCIO:0000201")
	}
	if p.Age >= 18 {
		add("adult", "age", "ADDICTO:0000352")
	}

	if p.Gender != "" && p.Gender != "prefer_not_say" {
		add(p.Gender+"_gender", "gender", "PATO:"+p.Gender+"_sex")
	}

	add("ex_offender_population", "reentry", "BCIO:0000202")
	if p.DaysSinceRelease <= 90 {
		add("recently_released", "reentry", "BCIO:0000203")
	}
	if p.DaysSinceRelease <= 30 {
		add("first_month_post_release", "reentry", "BCIO:0000204")
	}
	if p.SupervisionStatus != "" && p.SupervisionStatus != "none" {
		add("under_supervision", "reentry", "BCIO:0000205")
		add(p.SupervisionStatus, "reentry", "BCIO:supervision_"+p.SupervisionStatus)
	}

	switch p.HousingStatus {
	case "homeless":
		add("homeless_population", "housing", "BCIO:0000206")
	case "stable":
		add("housed_population", "housing", "BCIO:0000207")
	case "transitional":
		add("transitional_housing_population", "housing", "BCIO:0000208")
	case "institutional":
		add("institutional_setting_occupant", "housing", "BCIO:0000209")
	}
	if p.HousingStatus == "stable" {
		switch p.HousingType {
		case "owns":
			add("owner_occupier", "housing", "BCIO:015029")
		case "rents_private":
			add("renter", "housing", "BCIO:015030")
		case "rents_social":
			add("renter_from_social_provider", "housing", "BCIO:015031")
		case "family":
			add("family_household_member", "housing", "BCIO:0000210")
		case "employer":
			add("employer_provided_housing", "housing", "BCIO:015035")
		}
	}

	if len(p.Substances) > 0 && !contains(p.Substances, "none") {
		add("substance_use_history_population", "health", "BCIO:0000211")
		for _, substance := range p.Substances {
			switch substance {
			case "alcohol":
				add("alcohol_use_history", "health", "BCIO:0000212")
			case "opioids":
				add("opioid_use_history", "health", "BCIO:0000213")
			case "stimulants":
				add("stimulant_use_history", "health", "BCIO:0000214")
			case "cannabis":
				add("cannabis_use_history", "health", "BCIO:0000215")
			}
		}
		switch p.CurrentSubstanceUse {
		case "recovery":
			add("substance_use_recovery", "health", "BCIO:0000216")
		case "currently_using":
			add("active_substance_use", "health", "BCIO:0000217")
		}
	}

	for _, condition := range p.MentalHealth {
		if condition != "none" {
			add("disclosed_"+condition, "health", "DOID:"+condition)
		}
	}

	if p.DisabilityStatus == "has_disability" {
		add("disabled", "health", "BCIO:050474")
		if p.DisabilityDuration == "long_term" {
			add("long_term_disabled", "health", "BCIO:050479")
		}
	}

	if p.MedicationUse == "yes" {
		add("medication_use_status", "health", "BCIO:015093")
		for _, medType := range p.MedicationTypes {
			add(medType+"_medication", "health", "BCIO:med_"+medType)
		}
	}

	switch p.EducationLevel {
	case "primary":
		add("achieved_primary_education", "education", "BCIO:015046")
	case "lower_secondary":
		add("achieved_lower_secondary_education", "education", "BCIO:015047")
	case "upper_secondary":
		add("achieved_upper_secondary_education", "education", "BCIO:015048")
	case "bachelors":
		add("achieved_bachelors_degree", "education", "BCIO:015049")
	case "masters":
		add("achieved_masters_level", "education", "BCIO:015050")
	case "doctoral":
		add("achieved_doctoral_level", "education", "BCIO:015051")
	}

	switch p.RelationshipStatus {
	case "single":
		add("single", "relationship", "BCIO:015072")
	case "married":
		add("in_legal_marriage", "relationship", "BCIO:015074")
	case "relationship":
		add("in_stable_relationship", "relationship", "BCIO:015073")
	case "divorced":
		add("divorced_or_separated", "relationship", "BCIO:015075")
	case "widowed":
		add("widowed", "relationship", "BCIO:015076")
	}

	switch p.EmploymentStatus {
	case "full_time", "part_time":
		add("employed", "employment", "BCIO:0000220")
	case "unemployed_seeking":
		add("unemployed", "employment", "BCIO:0000221")
		add("job_seeking", "employment", "BCIO:0000222")
	case "unable":
		add("unable_to_work", "employment", "BCIO:0000223")
	}

	return tags
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
