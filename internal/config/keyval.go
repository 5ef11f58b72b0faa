package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyValue represents a config key and its value
type KeyValue struct {
	Key   string
	Value string
}

// sensitiveKeys is populated at init time by scanning Config struct tags
// for `sensitive:"true"`, so new sensitive fields are automatically
// detected without maintaining a separate list.
var sensitiveKeys map[string]bool

func init() {
	sensitiveKeys = make(map[string]bool)
	collectSensitiveKeys(reflect.TypeOf(Config{}), "", sensitiveKeys)
}

// getTOMLKey extracts the TOML key name from a struct field's tag.
// Returns "" if the field has no toml tag.
func getTOMLKey(field reflect.StructField) string {
	tag := field.Tag.Get("toml")
	if tag == "" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

// collectSensitiveKeys walks struct fields and records TOML keys tagged sensitive:"true".
func collectSensitiveKeys(t reflect.Type, prefix string, out map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tagKey := getTOMLKey(field)
		if tagKey == "" {
			continue
		}
		fullKey := tagKey
		if prefix != "" {
			fullKey = prefix + "." + tagKey
		}
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			collectSensitiveKeys(ft, fullKey, out)
			continue
		}
		if field.Tag.Get("sensitive") == "true" {
			out[fullKey] = true
		}
	}
}

// IsValidKey returns true if the key is recognized by Config.
func IsValidKey(key string) bool {
	_, err := FindFieldByTOMLKey(reflect.ValueOf(Config{}), key)
	return err == nil
}

// IsSensitiveKey returns true if the key holds a secret that should be masked.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[key]
}

// MaskValue returns a masked version of a sensitive value, showing only the last 4 chars.
func MaskValue(val string) string {
	if len(val) <= 4 {
		return "****"
	}
	return "****" + val[len(val)-4:]
}

// KeyValueOrigin represents a config key, its value, and where it came from
type KeyValueOrigin struct {
	Key    string
	Value  string
	Origin string // "global", "default"
}

// LoadRawGlobal loads the global config file as a raw TOML map.
func LoadRawGlobal() (map[string]interface{}, error) {
	return LoadRawTOML(GlobalConfigPath())
}

// LoadRawTOML loads a TOML file as a raw map.
func LoadRawTOML(path string) (map[string]interface{}, error) {
	raw := make(map[string]interface{})
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// IsKeyInTOMLFile checks whether a dot-separated key was explicitly present
// in a raw TOML map (as returned by toml.Decode into map[string]interface{}).
// This correctly detects explicit false/0 values that IsZero would miss.
func IsKeyInTOMLFile(raw map[string]interface{}, key string) bool {
	parts := strings.SplitN(key, ".", 2)
	val, ok := raw[parts[0]]
	if !ok {
		return false
	}
	if len(parts) == 1 {
		return true
	}
	sub, ok := val.(map[string]interface{})
	if !ok {
		return false
	}
	return IsKeyInTOMLFile(sub, parts[1])
}

// GetConfigValue retrieves a value from a config struct by its TOML key.
func GetConfigValue(cfg interface{}, key string) (string, error) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("expected struct, got %s", v.Kind())
	}

	field, err := FindFieldByTOMLKey(v, key)
	if err != nil {
		return "", err
	}

	return formatValue(field), nil
}

// SetConfigValue sets a value on a config struct by its TOML key.
// Converts the string value to the appropriate Go type.
func SetConfigValue(cfg interface{}, key string, value string) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected pointer to struct, got %s", v.Kind())
	}

	field, err := FindFieldByTOMLKey(v, key)
	if err != nil {
		return err
	}

	if !field.CanSet() {
		return fmt.Errorf("cannot set field for key %q", key)
	}

	return setFieldValue(field, value)
}

// ListConfigKeys returns all non-zero values from a config struct as key-value pairs.
func ListConfigKeys(cfg interface{}) []KeyValue {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	return flattenStruct(v, "", false)
}

// determineOrigin decides the origin label for a config key.
// It returns ("", false) if the key should be omitted from output.
func determineOrigin(key, value, defaultValue string, rawGlobal map[string]interface{}) (string, bool) {
	isDefault := defaultValue == value
	isEmptyDefault := value == "" || value == "0" || value == "false"
	explicitInGlobal := IsKeyInTOMLFile(rawGlobal, key)

	if isEmptyDefault && !explicitInGlobal {
		return "", false
	}
	if isDefault {
		return "default", true
	}
	return "global", true
}

// ConfigWithOrigin returns all effective config values with their origin.
// cfg is the loaded config (already has defaults applied by LoadGlobal).
// rawGlobal is the raw TOML map for detecting explicit presence of
// false/0 values. Pass nil if not available.
func ConfigWithOrigin(cfg *Config, rawGlobal map[string]interface{}) []KeyValueOrigin {
	if rawGlobal == nil {
		rawGlobal = make(map[string]interface{})
	}

	defaultMap := make(map[string]string)
	for _, kv := range flattenStruct(reflect.ValueOf(DefaultConfig()).Elem(), "", true) {
		defaultMap[kv.Key] = kv.Value
	}

	var result []KeyValueOrigin
	for _, kv := range flattenStruct(reflect.ValueOf(cfg).Elem(), "", true) {
		if origin, ok := determineOrigin(kv.Key, kv.Value, defaultMap[kv.Key], rawGlobal); ok {
			result = append(result, KeyValueOrigin{Key: kv.Key, Value: kv.Value, Origin: origin})
		}
	}

	return result
}

// FindFieldByTOMLKey locates a struct field by its TOML tag, supporting dot notation.
func FindFieldByTOMLKey(v reflect.Value, key string) (reflect.Value, error) {
	parts := strings.SplitN(key, ".", 2)
	tagName := parts[0]

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tagKey := getTOMLKey(field)
		if tagKey == "" || tagKey != tagName {
			continue
		}

		fieldVal := v.Field(i)

		if len(parts) == 2 {
			if fieldVal.Kind() == reflect.Struct {
				return FindFieldByTOMLKey(fieldVal, parts[1])
			}
			return reflect.Value{}, fmt.Errorf("key %q: %q is not a nested struct", key, tagName)
		}

		return fieldVal, nil
	}

	return reflect.Value{}, fmt.Errorf("unknown config key: %q", key)
}

// formatValue converts a reflect.Value to its string representation
func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Ptr:
		if v.IsNil() {
			return ""
		}
		return formatValue(v.Elem())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// setFieldValue sets a reflect.Value from a string, handling type conversion
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value: %q", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// flattenStruct walks a struct's fields recursively, building dot-separated keys
// from TOML tags. When includeZero is false, zero-valued leaf fields are skipped.
func flattenStruct(v reflect.Value, prefix string, includeZero bool) []KeyValue {
	var result []KeyValue
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		tagKey := getTOMLKey(t.Field(i))
		if tagKey == "" {
			continue
		}

		fullKey := tagKey
		if prefix != "" {
			fullKey = prefix + "." + tagKey
		}

		fieldVal := v.Field(i)

		if fieldVal.Kind() == reflect.Struct {
			result = append(result, flattenStruct(fieldVal, fullKey, includeZero)...)
			continue
		}

		if !includeZero && fieldVal.IsZero() {
			continue
		}

		result = append(result, KeyValue{Key: fullKey, Value: formatValue(fieldVal)})
	}

	return result
}
