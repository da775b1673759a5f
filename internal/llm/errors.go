package llm

import "fmt"

// ValidationError indicates a flow input was rejected before any provider
// call was made. Schema violations must never reach the provider.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ProviderUnavailable indicates the generation call itself failed (transport,
// auth, quota). Distinct from CompletionError, which means the provider
// answered but produced unusable output.
type ProviderUnavailable struct {
	Err error
}

func (e *ProviderUnavailable) Error() string {
	return fmt.Sprintf("completion provider unavailable: %v", e.Err)
}

func (e *ProviderUnavailable) Unwrap() error { return e.Err }

// CompletionError indicates the provider returned no parseable output, or
// output that failed schema validation.
type CompletionError struct {
	Reason string
	Err    error
}

func (e *CompletionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unusable completion: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unusable completion: %s", e.Reason)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// GenerationFailed wraps a flow-level failure: the provider yielded no usable
// output for a single-turn generation flow.
type GenerationFailed struct {
	Flow string
	Err  error
}

func (e *GenerationFailed) Error() string {
	return fmt.Sprintf("%s flow failed: %v", e.Flow, e.Err)
}

func (e *GenerationFailed) Unwrap() error { return e.Err }
