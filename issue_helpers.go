package geoconform

// IssueAt creates an error Issue at the given path with provided code, message and params map.
// This is a convenience helper to improve readability at call sites with many parameters.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Severity: Error, Params: params}
}

// WarningAt is IssueAt with Warn severity.
func WarningAt(p PathRef, code, msg string, params map[string]any) Issue {
	it := IssueAt(p, code, msg, params)
	it.Severity = Warn
	return it
}
