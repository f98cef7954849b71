package domain

import (
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// ApprovalMode identifies how a share request selects the shared data.
type ApprovalMode string

const (
	// ModeResourceBased shares a single named table (or every table of a database).
	ModeResourceBased ApprovalMode = "RESOURCE_BASED"
	// ModeTagBased shares every resource matching a classification tag set.
	ModeTagBased ApprovalMode = "TAG_BASED"
)

func (m ApprovalMode) String() string { return string(m) }

func (m ApprovalMode) IsValid() bool {
	switch m {
	case ModeResourceBased, ModeTagBased:
		return true
	}
	return false
}

// WildcardTable selects every table of a database.
const WildcardTable = "*"

// Tag is a single classification tag attached to a catalog resource.
type Tag struct {
	Key   string `cbor:"1,keyasint"`
	Value string `cbor:"2,keyasint"`
}

func (t Tag) String() string { return t.Key + "=" + t.Value }

// Selector is the closed set of ways a share request can address data.
// Implemented only by ResourceSelector and TagSelector.
type Selector interface {
	Mode() ApprovalMode
	// ResourceKey is the source resource key stored on approval requests:
	// "db.table" for resource mode, the tag-set fingerprint for tag mode.
	ResourceKey() string
	Validate() error
	isSelector()
}

// ResourceSelector addresses one table, or every table of Database when
// Table is WildcardTable.
type ResourceSelector struct {
	Database string
	Table    string
}

func (ResourceSelector) Mode() ApprovalMode { return ModeResourceBased }
func (ResourceSelector) isSelector()        {}

func (s ResourceSelector) ResourceKey() string { return s.Database + "." + s.Table }

// IsWildcard reports whether the selector covers a whole database.
func (s ResourceSelector) IsWildcard() bool { return s.Table == WildcardTable }

func (s ResourceSelector) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(s.Database) == "" {
		errs = append(errs, FieldError{Field: "resource.database", Message: "required"})
	}
	if strings.ContainsAny(s.Database, "#./") {
		errs = append(errs, FieldError{Field: "resource.database", Message: "must not contain '#', '.' or '/'"})
	}
	if strings.TrimSpace(s.Table) == "" {
		errs = append(errs, FieldError{Field: "resource.table", Message: "required"})
	}
	if strings.ContainsAny(s.Table, "#/") {
		errs = append(errs, FieldError{Field: "resource.table", Message: "must not contain '#' or '/'"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// TagSelector addresses every resource carrying all of Tags.
type TagSelector struct {
	Tags []Tag
}

func (TagSelector) Mode() ApprovalMode { return ModeTagBased }
func (TagSelector) isSelector()        {}

func (s TagSelector) ResourceKey() string { return TagFingerprint(s.Tags) }

func (s TagSelector) Validate() error {
	if len(s.Tags) == 0 {
		return NewValidationError("tags", "at least one tag required")
	}
	var errs []FieldError
	for i, t := range s.Tags {
		if strings.TrimSpace(t.Key) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("tags[%d].key", i), Message: "required"})
		}
		if strings.TrimSpace(t.Value) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("tags[%d].value", i), Message: "required"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// canonicalTags returns a sorted, de-duplicated copy of tags.
func canonicalTags(tags []Tag) []Tag {
	out := slices.Clone(tags)
	slices.SortFunc(out, func(a, b Tag) int {
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return strings.Compare(a.Value, b.Value)
	})
	return slices.Compact(out)
}

var fingerprintEnc cbor.EncMode

func init() {
	var err error
	fingerprintEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("domain: CBOR encoder initialization failed: " + err.Error())
	}
}

// TagFingerprint returns "tags-" followed by the base64 encoding of the
// canonical tag set. Order and duplicates in the input do not change it.
func TagFingerprint(tags []Tag) string {
	b, err := fingerprintEnc.Marshal(canonicalTags(tags))
	if err != nil {
		// Only strings are encoded; a failure here is a programming error.
		panic("domain: encode tag set: " + err.Error())
	}
	return "tags-" + base64.RawURLEncoding.EncodeToString(b)
}

// MappingKey builds the share-mapping sort key for a selector and target
// domain: "{resource}#{target}" or "tags-{fingerprint}#{target}".
func MappingKey(sel Selector, targetDomainID string) string {
	return sel.ResourceKey() + "#" + targetDomainID
}
