package forecast

// ErrorKind is a stable label for per-city fetch failures, used both as the
// metric status label and to pick the report line wording.
type ErrorKind string

const (
	ErrorKindTransport ErrorKind = "transport_error"
	ErrorKindMalformed ErrorKind = "malformed_response"
	ErrorKindNotFound  ErrorKind = "not_found"
	ErrorKindNoData    ErrorKind = "no_data"
	ErrorKindTimeout   ErrorKind = "timeout"
)

// FetchError describes why a single city's forecast could not be produced.
// It deliberately is not a Go error: one city failing must never abort its
// siblings, so callers branch on the Result instead of unwinding.
type FetchError struct {
	Kind    ErrorKind
	Message string
}

// Result is the outcome of fetching one city's forecast: either a rendered
// multi-line report or a FetchError, never both.
type Result struct {
	City   string
	Report string
	Err    *FetchError
}

// Line renders the result for inclusion in an aggregated report. Successful
// fetches contribute their full report; failures contribute one inline line.
func (r Result) Line() string {
	if r.Err != nil {
		return "Weather for " + r.City + ": " + r.Err.Message
	}
	return r.Report
}

func errorResult(city string, kind ErrorKind, message string) Result {
	return Result{City: city, Err: &FetchError{Kind: kind, Message: message}}
}
