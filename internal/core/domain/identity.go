package domain

import "strings"

// Identity is the structured form of the generation tag carried by a
// profile's user_id.
type Identity struct {
	IsGenerated bool
	Gender      Gender
}

// ParseIdentity extracts the trailing gender/generation tag from a user id.
// Historically two separator styles leaked into the data ("-m-g" and
// "_m_g"); both are accepted here, newly minted ids use hyphens. An id that
// matches neither pattern fails with IdentityFormatError.
func ParseIdentity(userID string) (Identity, error) {
	for _, suffix := range []string{"-m-g", "_m_g"} {
		if strings.HasSuffix(userID, suffix) {
			return Identity{IsGenerated: true, Gender: GenderMale}, nil
		}
	}
	for _, suffix := range []string{"-f-g", "_f_g"} {
		if strings.HasSuffix(userID, suffix) {
			return Identity{IsGenerated: true, Gender: GenderFemale}, nil
		}
	}
	return Identity{}, &IdentityFormatError{UserID: userID}
}

// IsGeneratedUser reports whether a user id carries a valid generation tag.
// Unlike ParseIdentity, a malformed id is simply "not generated" here; the
// reply workflow uses this to treat unparseable commenters as human.
func IsGeneratedUser(userID string) bool {
	id, err := ParseIdentity(userID)
	return err == nil && id.IsGenerated
}

// GenerationSuffix returns the canonical (hyphen) tag for newly minted ids.
func GenerationSuffix(gender Gender) string {
	if gender == GenderFemale {
		return "-f-g"
	}
	return "-m-g"
}
