package tools

// Argument extraction from the tools/call arguments object. Required
// arguments that are absent or of the wrong type classify as
// MissingArgument; everything stricter belongs in validation.

func requiredString(tool string, args map[string]interface{}, name string) (string, *Error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", newError(tool, KindMissingArgument, "missing required argument: %s", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", newError(tool, KindMissingArgument, "argument %s must be a string", name)
	}
	return s, nil
}

func optionalString(tool string, args map[string]interface{}, name string) (string, *Error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", newError(tool, KindInvalidInput, "argument %s must be a string", name)
	}
	return s, nil
}

// optionalNumber returns the raw JSON number and whether it was
// present. JSON numbers always decode as float64.
func optionalNumber(tool string, args map[string]interface{}, name string) (float64, bool, *Error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	n, ok := raw.(float64)
	if !ok {
		return 0, false, newError(tool, KindInvalidInput, "argument %s must be a number", name)
	}
	return n, true, nil
}

func optionalStringMap(tool string, args map[string]interface{}, name string) (map[string]string, *Error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, newError(tool, KindInvalidInput, "argument %s must be an object", name)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, newError(tool, KindInvalidInput, "argument %s values must be strings", name)
		}
		out[k] = s
	}
	return out, nil
}
