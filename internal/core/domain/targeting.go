package domain

// TargetingGender constrains which clients may see a campaign. An unset
// gender means no constraint, same as GenderAll.
type TargetingGender string

const (
	GenderMale   TargetingGender = "MALE"
	GenderFemale TargetingGender = "FEMALE"
	GenderAll    TargetingGender = "ALL"
)

// Targeting describes who should see a campaign. Nil fields mean the
// dimension is unconstrained.
type Targeting struct {
	Gender   *TargetingGender
	AgeFrom  *int
	AgeTo    *int
	Location *string
}

// Matches reports whether the client satisfies every set targeting
// dimension.
func (t Targeting) Matches(client Client) bool {
	if t.Location != nil && *t.Location != client.Location {
		return false
	}
	if t.AgeFrom != nil && *t.AgeFrom > client.Age {
		return false
	}
	if t.AgeTo != nil && *t.AgeTo < client.Age {
		return false
	}
	if t.Gender != nil && *t.Gender != GenderAll && string(*t.Gender) != string(client.Gender) {
		return false
	}
	return true
}
