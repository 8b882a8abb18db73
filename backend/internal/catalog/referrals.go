package catalog

// ReferralCategory groups the destinations a practitioner can refer a
// participant to
type ReferralCategory struct {
	ID           string   `json:"id"`
	Destinations []string `json:"destinations"`
}

// ReferralCategories lists the referral catalog in display order
func ReferralCategories() []ReferralCategory {
	return referralCategories
}

// ReferralCategoryByID returns the category with the given id
func ReferralCategoryByID(id string) (ReferralCategory, bool) {
	for _, c := range referralCategories {
		if c.ID == id {
			return c, true
		}
	}
	return ReferralCategory{}, false
}

var referralCategories = []ReferralCategory{
	{ID: "housing", Destinations: []string{"Emergency shelter", "Transitional housing", "Permanent supportive housing", "Affordable housing", "Housing navigation service"}},
	{ID: "mental_health", Destinations: []string{"Outpatient MH clinic", "Crisis stabilization", "Psychiatric hospitalization", "Peer support group", "Counseling"}},
	{ID: "substance_use", Destinations: []string{"Detox program", "Residential treatment", "Outpatient counseling", "MAT program", "Recovery support", "Self-help group"}},
	{ID: "medical", Destinations: []string{"Primary care clinic", "Urgent care", "Emergency department", "Specialist referral", "Pharmacy"}},
	{ID: "legal", Destinations: []string{"Legal aid", "Public defender", "Immigration attorney", "Expungement services"}},
	{ID: "employment", Destinations: []string{"Job training", "Job placement", "Vocational rehab", "Supported employment", "Resume assistance"}},
	{ID: "education", Destinations: []string{"GED program", "Adult education", "College access", "Literacy program"}},
	{ID: "benefits", Destinations: []string{"SNAP application", "Medicaid enrollment", "SSI/SSDI application", "Benefits counseling"}},
}
