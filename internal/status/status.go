// Package status defines the status code vocabulary threaded through the
// harvest pipeline. Codes travel as ordinary return values, never as errors.
package status

// Codes surfaced to operators via the run log.
const (
	// OK indicates the operation completed with nothing left to do.
	OK = 200
	// Created indicates a file or row was generated upstream.
	Created = 201
	// Accepted is an intermediate code used between chained store steps.
	Accepted = 202
	// NoContent indicates the window or record set had nothing to process.
	NoContent = 204
	// CorruptRemoved indicates a corrupt input was detected and removed.
	CorruptRemoved = 403
	// FileMissing indicates a precondition file was never generated.
	FileMissing = 404
	// Conflict indicates partial success across a record set.
	Conflict = 409
	// TooFewResults indicates the portal returned fewer rows than expected.
	TooFewResults = 429
	// ExtractionFailed indicates an upstream extraction failure.
	ExtractionFailed = 500
	// PersistenceFailed indicates a database write failed.
	PersistenceFailed = 503
)

// IsSuccess reports whether a code is in the 2xx range. Store-chain steps
// forward non-success codes unchanged without attempting writes.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// Text returns a short operator-facing description of a code.
func Text(code int) string {
	switch code {
	case OK:
		return "ok"
	case Created:
		return "created"
	case Accepted:
		return "accepted"
	case NoContent:
		return "no content"
	case CorruptRemoved:
		return "corrupt input removed"
	case FileMissing:
		return "file missing"
	case Conflict:
		return "conflict (partial success)"
	case TooFewResults:
		return "too few results"
	case ExtractionFailed:
		return "extraction failure"
	case PersistenceFailed:
		return "persistence failure"
	}
	return "unknown"
}
