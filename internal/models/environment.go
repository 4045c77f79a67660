package models

// SupportEnvironment is the preferred locus of intervention delivery.
type SupportEnvironment string

// Support environment identifiers
const (
	EnvironmentNone        SupportEnvironment = "" // Not chosen yet
	EnvironmentHome        SupportEnvironment = "home"
	EnvironmentExpert      SupportEnvironment = "expert"
	EnvironmentInstitution SupportEnvironment = "institution"
)

// Environments lists every selectable support environment in presentation order.
var Environments = []SupportEnvironment{
	EnvironmentHome,
	EnvironmentExpert,
	EnvironmentInstitution,
}

// IsValid reports whether e is one of the selectable environments.
// EnvironmentNone is not valid.
func (e SupportEnvironment) IsValid() bool {
	for _, known := range Environments {
		if e == known {
			return true
		}
	}
	return false
}

// Environment is the reference record for a SupportEnvironment.
type Environment struct {
	ID       SupportEnvironment
	Title    string
	Subtitle string
}

// Label returns "Title (Subtitle)", or just the title when there is no subtitle.
func (e Environment) Label() string {
	if e.Subtitle == "" {
		return e.Title
	}
	return e.Title + " (" + e.Subtitle + ")"
}
