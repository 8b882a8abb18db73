// Package ontology pins the upper-level schema every statement in the
// graph conforms to: the BCIO/BFO/PATO/IAO namespaces, the relation
// vocabulary, and the controlled values for fidelity and mode of delivery.
package ontology

import (
	"strings"
	"unicode"

	"intervention-graph/backend/internal/rdf"
)

// Namespace prefixes
const (
	NSBCIO         = "http://purl.obolibrary.org/obo/BCIO_"
	NSBFO          = "http://purl.obolibrary.org/obo/BFO_"
	NSPATO         = "http://purl.obolibrary.org/obo/PATO_"
	NSIAO          = "http://purl.obolibrary.org/obo/IAO_"
	NSRDF          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS         = "http://www.w3.org/2000/01/rdf-schema#"
	NSIntervention = "http://interventions.org/"
	NSBarrier      = "http://interventions.org/barrier/"
)

// BCIO returns an IRI in the behaviour-change ontology namespace
func BCIO(local string) rdf.Term { return rdf.IRI(NSBCIO + local) }

// BFO returns an IRI in the basic formal ontology namespace
func BFO(local string) rdf.Term { return rdf.IRI(NSBFO + local) }

// PATO returns an IRI in the phenotype quality ontology namespace
func PATO(local string) rdf.Term { return rdf.IRI(NSPATO + local) }

// IAO returns an IRI in the information artifact ontology namespace
func IAO(local string) rdf.Term { return rdf.IRI(NSIAO + local) }

// Intervention returns an IRI under the deployment's own namespace
func Intervention(local string) rdf.Term { return rdf.IRI(NSIntervention + local) }

// Barrier returns an IRI in the COM-B barrier extension namespace
func Barrier(local string) rdf.Term { return rdf.IRI(NSBarrier + local) }

// Core RDF/RDFS predicates
var (
	RDFType     = rdf.IRI(NSRDF + "type")
	RDFSLabel   = rdf.IRI(NSRDFS + "label")
	RDFSComment = rdf.IRI(NSRDFS + "comment")
)

// Entity classes
var (
	ClassEncounterProcess = BCIO("000001") // behaviour-change intervention encounter
	ClassProcess          = BFO("0000015")
	ClassMaterialEntity   = BFO("0000040")
	ClassQuality          = BFO("0000020")
	ClassPATOQuality      = PATO("0000001")
	ClassAge              = PATO("0000011")
	ClassDuration         = PATO("0001309")

	ClassInterventionRecipient = BCIO("intervention_recipient")
	ClassModeOfDelivery        = BCIO("mode_of_delivery")
	ClassFidelityQuality       = BCIO("fidelity_quality")
	ClassAssessmentProcess     = BCIO("0000001")
)

// Relations
var (
	HasPart   = BFO("0000051")
	PartOf    = BFO("0000050")
	InheresIn = BFO("0000052")
	Realizes  = BFO("0000055")

	HasSpecifiedInput = BCIO("has_specified_input")
	HasSpecifiedAgent = BCIO("has_specified_agent")
	HasTemporalValue  = BCIO("has_temporal_value")
	HasQualityValue   = BCIO("has_quality_value")
	AutoTagged        = BCIO("auto_tagged")
	AttributeCategory = BCIO("attribute_category")

	AssessedAtTimepoint    = BCIO("assessed_at_timepoint")
	ConcernsDomain         = BCIO("concerns_domain")
	HasSeverityScore       = BCIO("has_severity_score")
	HasAssessmentDate      = BCIO("has_assessment_date")
	AddressableByMechanism = BCIO("addressable_by_mechanism")
	IsReassessmentOf       = BCIO("is_reassessment_of")
	HasChangeFromBaseline  = BCIO("has_change_from_baseline")

	HasMeasurementValue = IAO("0000004")
	HasMeasurementUnit  = IAO("0000039")
	AlternativeLabel    = IAO("0000118")
	Identifier          = IAO("0000578")
	CreationTime        = IAO("0000579")
)

// Measurement units
var (
	UnitMinutes = BCIO("minutes")
	UnitYears   = BCIO("years")
)

// Fidelity ratings for a delivered technique
const (
	FidelityDelivered    = "delivered"
	FidelityPartial      = "partial"
	FidelityNotDelivered = "not_delivered"
	FidelityNotAssessed  = "not_assessed"
)

// ValidFidelity reports whether v is a recognised fidelity rating
func ValidFidelity(v string) bool {
	switch v {
	case FidelityDelivered, FidelityPartial, FidelityNotDelivered, FidelityNotAssessed:
		return true
	}
	return false
}

// FidelityClass returns the quality class IRI for a fidelity rating
func FidelityClass(v string) rdf.Term {
	return BCIO("Fidelity_" + v)
}

// Modes of delivery
const (
	ModeFaceToFace = "face_to_face"
	ModePhone      = "phone"
	ModeVideo      = "video"
	ModeWritten    = "written"
)

// ValidMode reports whether v is a recognised mode of delivery
func ValidMode(v string) bool {
	switch v {
	case ModeFaceToFace, ModePhone, ModeVideo, ModeWritten:
		return true
	}
	return false
}

// ParseClassRef resolves a technique class reference into a class IRI.
// Accepted forms, matching the catalog data the original system shipped
// with: "bcio:0000001", "BCIO:007156" (digits zero-padded to seven), a full
// IRI, or a bare local id.
func ParseClassRef(ref string) rdf.Term {
	switch {
	case ref == "":
		return BCIO("unknown")
	case strings.HasPrefix(ref, "bcio:"):
		return BCIO(strings.TrimPrefix(ref, "bcio:"))
	case strings.HasPrefix(ref, "BCIO:"):
		local := strings.ReplaceAll(strings.TrimPrefix(ref, "BCIO:"), "_", "")
		if isDigits(local) && len(local) < 7 {
			local = strings.Repeat("0", 7-len(local)) + local
		}
		return BCIO(local)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return rdf.IRI(ref)
	default:
		return BCIO(strings.ReplaceAll(ref, ":", "_"))
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
