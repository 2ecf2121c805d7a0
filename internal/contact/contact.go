// Package contact maps parsed form-export rows onto the 23-column contacts
// import schema.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Header is the fixed header line of the contacts import format.
const Header = "First Name,Middle Name,Last Name,Phonetic First Name,Phonetic Middle Name,Phonetic Last Name,Name Prefix,Name Suffix,Nickname,File As,Organization Name,Organization Title,Organization Department,Birthday,Notes,Photo,Labels,E-mail 1 - Label,E-mail 1 - Value,E-mail 2 - Label,E-mail 2 - Value,Phone 1 - Label,Phone 1 - Value"

// NumColumns is the column count of the contacts import schema.
const NumColumns = 23

// Input column indexes. The form export is positional: a timestamp, the
// person's role, first name, a combined "group surname" token, the cabinet
// login email, the created email, and a phone number. Timestamp and role are
// carried by the export but never mapped.
const (
	InTimestamp = iota
	InRole
	InFirstName
	InGroupSurname
	InLoginEmail
	InCreatedEmail
	InPhone

	// MinInputColumns is the minimum field count for a mappable row.
	MinInputColumns = 7
)

// Output column indexes for the populated positions. Every other column in
// the 23-wide row stays empty.
const (
	OutFirstName   = 0
	OutLastName    = 2
	OutLabels      = 16
	OutEmail1Value = 18
	OutEmail2Value = 20
	OutPhone1Value = 22
)

// ErrTooFewColumns reports a row with fewer fields than the export schema
// guarantees. Callers skip such rows and continue.
var ErrTooFewColumns = errors.New("contact: too few columns")

// SplitGroupSurname splits a combined "group surname" token on its first
// space. The group is the part before the space with trailing spaces trimmed;
// the surname is the remainder with leading spaces trimmed. Without a space
// the whole token is the surname; an empty token yields two empty strings.
func SplitGroupSurname(combined string) (group, surname string) {
	if combined == "" {
		return "", ""
	}

	idx := strings.IndexByte(combined, ' ')
	if idx < 0 {
		return "", combined
	}

	group = strings.TrimRight(combined[:idx], " ")
	surname = strings.TrimLeft(combined[idx:], " ")
	return group, surname
}

// Mapper builds contacts import rows from form-export rows. The Label is
// applied verbatim to every mapped row's Labels column and may be empty.
type Mapper struct {
	Label string
}

// Map converts one parsed export row into a 23-field import row.
// Rows with fewer than MinInputColumns fields return ErrTooFewColumns.
func (m *Mapper) Map(inputFields []string) ([]string, error) {
	if len(inputFields) < MinInputColumns {
		return nil, fmt.Errorf("%w: %d found, want at least %d",
			ErrTooFewColumns, len(inputFields), MinInputColumns)
	}

	out := make([]string, NumColumns)
	out[OutFirstName] = inputFields[InFirstName]

	group, surname := SplitGroupSurname(inputFields[InGroupSurname])
	if group != "" {
		out[OutLastName] = group + " " + surname
	} else {
		out[OutLastName] = surname
	}

	out[OutLabels] = m.Label
	out[OutEmail1Value] = inputFields[InCreatedEmail]
	out[OutEmail2Value] = inputFields[InLoginEmail]
	out[OutPhone1Value] = inputFields[InPhone]

	return out, nil
}
