package lib

// Settings map of configuration parameters for allocator components.
type Settings map[string]interface{}

// Mixin override settings with one or more maps of parameters, later
// arguments win.
func (setts Settings) Mixin(args ...interface{}) Settings {
	update := func(arg map[string]interface{}) {
		for key, value := range arg {
			setts[key] = value
		}
	}
	for _, arg := range args {
		switch m := arg.(type) {
		case Settings:
			update(map[string]interface{}(m))
		case map[string]interface{}:
			update(m)
		}
	}
	return setts
}

// Bool return the boolean value for key.
func (setts Settings) Bool(key string) bool {
	value, ok := setts[key]
	if !ok {
		panicerr("missing settings %q", key)
	}
	val, ok := value.(bool)
	if !ok {
		panicerr("settings %q not a bool: %T", key, value)
	}
	return val
}

// Int64 return the int64 value for key, accepting any integral type.
func (setts Settings) Int64(key string) int64 {
	value, ok := setts[key]
	if !ok {
		panicerr("missing settings %q", key)
	}
	switch val := value.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint64:
		return int64(val)
	case float64:
		return int64(val)
	}
	panicerr("settings %q not a number: %T", key, value)
	return 0
}

// String return the string value for key.
func (setts Settings) String(key string) string {
	value, ok := setts[key]
	if !ok {
		panicerr("missing settings %q", key)
	}
	val, ok := value.(string)
	if !ok {
		panicerr("settings %q not a string: %T", key, value)
	}
	return val
}
