package config

import "testing"

func TestIsValidKey(t *testing.T) {
	for _, key := range []string{"server_addr", "github_token", "list_poll_seconds", "detail_poll_seconds"} {
		if !IsValidKey(key) {
			t.Errorf("%q should be a valid key", key)
		}
	}
	if IsValidKey("no_such_key") {
		t.Error("unknown key should be invalid")
	}
}

func TestSensitiveKeyMasking(t *testing.T) {
	if !IsSensitiveKey("github_token") {
		t.Error("github_token should be sensitive")
	}
	if IsSensitiveKey("server_addr") {
		t.Error("server_addr should not be sensitive")
	}

	if got := MaskValue("ghp_abcdef1234"); got != "****1234" {
		t.Errorf("MaskValue = %q", got)
	}
	if got := MaskValue("abc"); got != "****" {
		t.Errorf("short values should be fully masked, got %q", got)
	}
}

func TestGetSetConfigValue(t *testing.T) {
	cfg := DefaultConfig()

	if err := SetConfigValue(cfg, "server_addr", "http://example:9"); err != nil {
		t.Fatalf("SetConfigValue: %v", err)
	}
	got, err := GetConfigValue(cfg, "server_addr")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if got != "http://example:9" {
		t.Errorf("value = %q", got)
	}

	if err := SetConfigValue(cfg, "list_poll_seconds", "7"); err != nil {
		t.Fatalf("SetConfigValue int: %v", err)
	}
	if cfg.ListPollSeconds != 7 {
		t.Errorf("list poll = %d", cfg.ListPollSeconds)
	}

	if err := SetConfigValue(cfg, "list_poll_seconds", "not-a-number"); err == nil {
		t.Error("expected error for bad integer")
	}
	if err := SetConfigValue(cfg, "bogus", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestListConfigKeys(t *testing.T) {
	cfg := &Config{ServerAddr: "http://x:1", ListPollSeconds: 2}
	kvs := ListConfigKeys(cfg)

	keys := make(map[string]string)
	for _, kv := range kvs {
		keys[kv.Key] = kv.Value
	}
	if keys["server_addr"] != "http://x:1" {
		t.Errorf("server_addr = %q", keys["server_addr"])
	}
	// Zero-valued fields are omitted.
	if _, ok := keys["github_token"]; ok {
		t.Error("zero github_token should be omitted")
	}
}

func TestConfigWithOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServerAddr = "http://custom:1"

	raw := map[string]interface{}{"server_addr": "http://custom:1"}
	kvs := ConfigWithOrigin(cfg, raw)

	origins := make(map[string]string)
	for _, kv := range kvs {
		origins[kv.Key] = kv.Origin
	}
	if origins["server_addr"] != "global" {
		t.Errorf("server_addr origin = %q, want global", origins["server_addr"])
	}
	if origins["list_poll_seconds"] != "default" {
		t.Errorf("list_poll_seconds origin = %q, want default", origins["list_poll_seconds"])
	}
	// Empty defaults not present in the file are omitted entirely.
	if _, ok := origins["github_token"]; ok {
		t.Error("unset github_token should be omitted")
	}
}

func TestIsKeyInTOMLFile(t *testing.T) {
	raw := map[string]interface{}{
		"server_addr": "http://x",
		"nested":      map[string]interface{}{"inner": false},
	}
	if !IsKeyInTOMLFile(raw, "server_addr") {
		t.Error("top-level key should be found")
	}
	if !IsKeyInTOMLFile(raw, "nested.inner") {
		t.Error("nested key should be found")
	}
	if IsKeyInTOMLFile(raw, "missing") {
		t.Error("missing key should not be found")
	}
}
