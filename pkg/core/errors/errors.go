package errors

import "errors"

// Resolution failure kinds. Collaborators wrap exactly one of these so that
// resolvers can classify a failure with errors.Is before downgrading it to
// "no candidate from this step".
var (
	ErrConfigurationMissing = errors.New("streailer: metadata service credential not configured")
	ErrUpstreamUnavailable  = errors.New("streailer: upstream unavailable (network error or non-2xx status)")
	ErrUpstreamEmpty        = errors.New("streailer: upstream returned no usable results")
	ErrExtractionFailed     = errors.New("streailer: response did not match the expected structure")
	ErrValidationRejected   = errors.New("streailer: candidate failed the acceptance check")
)

// Kind returns a short label for the taxonomy member wrapped by err, for use
// in log fields and metric labels. Unclassified errors map to "other".
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrConfigurationMissing):
		return "configuration_missing"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrUpstreamEmpty):
		return "upstream_empty"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, ErrValidationRejected):
		return "validation_rejected"
	default:
		return "other"
	}
}
