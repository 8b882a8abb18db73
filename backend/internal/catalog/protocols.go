// Package catalog holds the static configuration the core consumes: the
// per-protocol technique catalogs and the referral destination lists.
// Nothing here is computed; the service reads a protocol's ordered
// technique list and each technique's auto flag and class code.
package catalog

// Technique is one catalog-defined behaviour change technique within a
// protocol
type Technique struct {
	ID                string `json:"bct_id"`
	Label             string `json:"label"`
	PractitionerLabel string `json:"practitioner_label"`
	Definition        string `json:"definition"`
	Auto              bool   `json:"auto"`
	ClassRef          string `json:"bct_class"`
}

// Protocol is a named intervention protocol with its technique catalog
type Protocol struct {
	ID              string      `json:"id"`
	Label           string      `json:"label"`
	Description     string      `json:"description"`
	Techniques      []Technique `json:"bcts"`
	TypicalMode     string      `json:"typical_mode"`
	TypicalDuration string      `json:"typical_duration"`
}

// ReferralTechniqueID is the technique injected when an encounter records
// a referral ("adding objects to the environment")
const ReferralTechniqueID = "BCT_12.5"

// ReferralTechniqueClassRef is the class code of the injected referral
// technique
const ReferralTechniqueClassRef = "BCIO:007156"

// Protocols lists every protocol in catalog order
func Protocols() []Protocol {
	return protocols
}

// ProtocolByID returns the protocol with the given id
func ProtocolByID(id string) (Protocol, bool) {
	for _, p := range protocols {
		if p.ID == id {
			return p, true
		}
	}
	return Protocol{}, false
}

var protocols = []Protocol{
	{
		ID:          "employment_support_v1",
		Label:       "Employment Support Protocol v1.0",
		Description: "Evidence-based intervention for employment barriers",
		Techniques: []Technique{
			{
				ID:                "BCT_1.1",
				Label:             "Goal setting (behaviour)",
				PractitionerLabel: "Help participant set specific employment goals",
				Definition:        "Set or agree a goal defined in terms of the behavior to be achieved.",
				Auto:              true,
				ClassRef:          "bcio:0000001",
			},
			{
				ID:                "BCT_1.4",
				Label:             "Action planning",
				PractitionerLabel: "Create concrete action plan for job search",
				Definition:        "Prompt detailed planning of performance of the behavior.",
				Auto:              true,
				ClassRef:          "bcio:0000002",
			},
			{
				ID:                "BCT_1.2",
				Label:             "Problem solving",
				PractitionerLabel: "Work through barriers and solutions",
				Definition:        "Analyse, or prompt the person to analyse, factors influencing the behavior.",
				Auto:              false,
				ClassRef:          "bcio:0000003",
			},
			{
				ID:                "BCT_3.1",
				Label:             "Social support (practical)",
				PractitionerLabel: "Arrange practical job search support",
				Definition:        "Advise on, arrange, or provide practical help for performance of the behavior.",
				Auto:              false,
				ClassRef:          "bcio:0000004",
			},
		},
		TypicalMode:     "face_to_face",
		TypicalDuration: "45-60 minutes",
	},
	{
		ID:          "housing_action_planning",
		Label:       "Housing Action Planning Session",
		Description: "Structured session to develop concrete housing stability plan",
		Techniques: []Technique{
			{
				ID:                "BCT_1.1",
				Label:             "Goal setting (behavior)",
				PractitionerLabel: "Help participant set specific housing goals",
				Definition:        "Set or agree a goal defined in terms of the behavior to be achieved.",
				Auto:              true,
				ClassRef:          "BCIO:007004",
			},
			{
				ID:                "BCT_1.4",
				Label:             "Action planning",
				PractitionerLabel: "Create action plan together",
				Definition:        "Prompt detailed planning of performance of the behavior.",
				Auto:              true,
				ClassRef:          "BCIO:007010",
			},
			{
				ID:                "BCT_3.2",
				Label:             "Social support (practical)",
				PractitionerLabel: "Arrange practical support from others",
				Definition:        "Advise on, arrange, or provide practical help for performance of the behavior.",
				Auto:              false,
				ClassRef:          "BCIO:007030",
			},
			{
				ID:                "BCT_12.5",
				Label:             "Adding objects to the environment",
				PractitionerLabel: "Provide resources or materials",
				Definition:        "Add objects to the environment in order to facilitate performance of the behavior.",
				Auto:              false,
				ClassRef:          "BCIO:007156",
			},
		},
		TypicalMode:     "face_to_face",
		TypicalDuration: "30-45 minutes",
	},
	{
		ID:          "substance_use_brief_intervention",
		Label:       "Substance Use Brief Intervention",
		Description: "Motivational interviewing-based brief intervention",
		Techniques: []Technique{
			{
				ID:                "BCT_5.1",
				Label:             "Information about health consequences",
				PractitionerLabel: "Discuss health impacts of substance use",
				Definition:        "Provide information about health consequences of performing the behavior.",
				Auto:              true,
				ClassRef:          "BCIO:007054",
			},
			{
				ID:                "BCT_5.3",
				Label:             "Information about social/environmental consequences",
				PractitionerLabel: "Discuss how substance use affects life circumstances",
				Definition:        "Provide information about social and environmental consequences.",
				Auto:              true,
				ClassRef:          "BCIO:007056",
			},
			{
				ID:                "BCT_13.2",
				Label:             "Framing/reframing",
				PractitionerLabel: "Help see situation from different perspective",
				Definition:        "Suggest the deliberate adoption of a perspective or new perspective.",
				Auto:              false,
				ClassRef:          "BCIO:007174",
			},
			{
				ID:                "BCT_9.2",
				Label:             "Pros and cons",
				PractitionerLabel: "Explore benefits and drawbacks together",
				Definition:        "Advise the person to identify and compare reasons for wanting and not wanting to change.",
				Auto:              true,
				ClassRef:          "BCIO:007100",
			},
		},
		TypicalMode:     "face_to_face",
		TypicalDuration: "15-30 minutes",
	},
	{
		ID:          "benefits_navigation",
		Label:       "Benefits Navigation Support",
		Description: "Assistance with accessing public benefits and entitlements",
		Techniques: []Technique{
			{
				ID:                "BCT_4.1",
				Label:             "Instruction on how to perform behavior",
				PractitionerLabel: "Give step-by-step instructions",
				Definition:        "Advise or agree on how to perform the behavior.",
				Auto:              true,
				ClassRef:          "BCIO:007037",
			},
			{
				ID:                "BCT_3.2",
				Label:             "Social support (practical)",
				PractitionerLabel: "Provide hands-on assistance",
				Definition:        "Advise on, arrange, or provide practical help.",
				Auto:              true,
				ClassRef:          "BCIO:007030",
			},
			{
				ID:                "BCT_12.5",
				Label:             "Adding objects to the environment",
				PractitionerLabel: "Provide forms, documents, contact info",
				Definition:        "Add objects to the environment to facilitate performance.",
				Auto:              true,
				ClassRef:          "BCIO:007156",
			},
		},
		TypicalMode:     "face_to_face",
		TypicalDuration: "20-40 minutes",
	},
	{
		ID:          "check_in",
		Label:       "Progress Check-in Session",
		Description: "Brief session to review progress and provide support",
		Techniques: []Technique{
			{
				ID:                "BCT_1.5",
				Label:             "Review behavior goals",
				PractitionerLabel: "Check progress on previous goals",
				Definition:        "Review behavior goal(s) jointly with the person.",
				Auto:              true,
				ClassRef:          "BCIO:007013",
			},
			{
				ID:                "BCT_3.3",
				Label:             "Social support (emotional)",
				PractitionerLabel: "Provide encouragement and emotional support",
				Definition:        "Advise on, arrange or provide emotional social support.",
				Auto:              true,
				ClassRef:          "BCIO:007031",
			},
		},
		TypicalMode:     "face_to_face",
		TypicalDuration: "10-20 minutes",
	},
}
