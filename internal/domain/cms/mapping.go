package cms

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/honeycarbs/jobsync/internal/domain"
)

// Field slugs of the destination "Jobs" collection.
const (
	FieldReferenceID        = "reference-id"
	FieldJobTitle           = "titre-du-poste"
	FieldName               = "name"
	FieldSlug               = "slug"
	FieldCompany            = "responsable"
	FieldContactEmail       = "email-du-reponsable"
	FieldJobDescription     = "description-du-poste"
	FieldCompanyDescription = "aboutcompany"
	FieldProfile            = "searchedprofile"
	FieldLocation           = "localisation"
	FieldSector             = "sector"
	FieldContractType       = "contracttype"
	FieldSalary             = "salary"
	FieldWeeklyHours        = "timeperweek"
	FieldSchedules          = "schedules"
	FieldApplyURL           = "project-id"
)

// MaxSlugLength bounds generated slugs.
const MaxSlugLength = 50

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
	slugInvalid   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify lower-cases title, turns whitespace runs into hyphens, strips
// everything outside [a-z0-9-] and truncates to MaxSlugLength.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	if len(s) > MaxSlugLength {
		s = s[:MaxSlugLength]
	}
	return s
}

// SalaryRange renders "<min> - <max>", leaving an absent bound blank.
func SalaryRange(lo, hi *float64) string {
	return formatAmount(lo) + " - " + formatAmount(hi)
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FieldData maps a job record onto the collection's flat field schema.
// Values are not escaped or length-checked.
func FieldData(j domain.Job) map[string]any {
	return map[string]any{
		FieldReferenceID:        j.OfferID,
		FieldJobTitle:           j.Title,
		FieldName:               j.Title,
		FieldSlug:               Slugify(j.Title),
		FieldCompany:            j.CompanyName,
		FieldContactEmail:       j.ContactEmail,
		FieldJobDescription:     j.JobDescription,
		FieldCompanyDescription: j.CompanyDescription,
		FieldProfile:            j.ProfileDescription,
		FieldLocation:           j.City,
		FieldSector:             j.Occupation,
		FieldContractType:       j.ContractType,
		FieldSalary:             SalaryRange(j.SalaryMin, j.SalaryMax),
		FieldWeeklyHours:        j.WeeklyHours,
		FieldSchedules:          j.RemoteType,
		FieldApplyURL:           j.ApplyURL,
	}
}
