package shopify

import "fmt"

// ConfigurationError indicates missing Shopify credentials. It is raised on
// first use rather than at process start, and is not recoverable within a
// session: every subsequent catalog call fails identically until the
// environment is fixed.
type ConfigurationError struct {
	Var string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("shopify is not configured: %s environment variable is not set", e.Var)
}

// ToolExecutionError wraps a catalog data-source failure raised from a tool
// invocation. The agent is expected to surface it to the end user rather
// than crash the conversation.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }
