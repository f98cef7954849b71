package domain

const (
	// ConfidentialityTagKey is the tag key inspected by RequiresApproval.
	ConfidentialityTagKey = "confidentiality"
	// SensitiveTagValue marks a resource whose sharing needs owner approval.
	SensitiveTagValue = "sensitive"
)

// Classification is the catalog metadata relevant to sharing decisions.
type Classification struct {
	Tags          []Tag  `cbor:"1,keyasint"`
	PII           bool   `cbor:"2,keyasint"`
	OwnerDomainID string `cbor:"3,keyasint"`
}

// RequiresApproval reports whether any tag is confidentiality=sensitive.
func RequiresApproval(tags []Tag) bool {
	for _, t := range tags {
		if t.Key == ConfidentialityTagKey && t.Value == SensitiveTagValue {
			return true
		}
	}
	return false
}
